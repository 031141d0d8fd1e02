package proxy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

const (
	imageReferer      = "https://mangadex.org/"
	imageCacheControl = "public, max-age=86400"
	maxImageBytes     = 20 << 20
	maxRedirects      = 5
)

// ImageProxy relays images from allowlisted hosts so browsers can load
// hotlink-protected covers and pages.
type ImageProxy struct {
	client    *http.Client
	prefixes  []string
	userAgent string
	maxBytes  int64
}

// NewImageProxy creates an image proxy that only fetches URLs starting with
// one of prefixes.
func NewImageProxy(prefixes []string, userAgent string, timeout time.Duration) *ImageProxy {
	p := &ImageProxy{
		prefixes:  prefixes,
		userAgent: userAgent,
		maxBytes:  maxImageBytes,
	}
	p.client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("too many redirects")
			}
			if !p.Allowed(req.URL.String()) {
				return fmt.Errorf("redirect to %s outside allowlist", req.URL.Redacted())
			}
			return nil
		},
	}
	return p
}

// Allowed reports whether target starts with an allowlisted prefix.
func (p *ImageProxy) Allowed(target string) bool {
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

// Handler serves GET ?url=<image url>.
func (p *ImageProxy) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		target := c.Query("url")
		if target == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "URL parameter required",
			})
		}
		if !p.Allowed(target) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid image URL",
			})
		}

		req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, target, nil)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid image URL",
			})
		}
		req.Header.Set("Referer", imageReferer)
		if p.userAgent != "" {
			req.Header.Set("User-Agent", p.userAgent)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			slog.Error("image proxy request failed", "url", target, "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to fetch image",
			})
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			slog.Warn("image proxy upstream status", "url", target, "status", resp.StatusCode)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": fmt.Sprintf("Failed to fetch image: upstream status %d", resp.StatusCode),
			})
		}

		if resp.ContentLength > p.maxBytes {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Image too large",
			})
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes+1))
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to read image",
			})
		}
		if int64(len(body)) > p.maxBytes {
			slog.Warn("image proxy body over limit", "url", target)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Image too large",
			})
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		c.Set("Content-Type", contentType)
		c.Set("Cache-Control", imageCacheControl)
		return c.Status(fiber.StatusOK).Send(body)
	}
}
