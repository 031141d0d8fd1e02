package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"animix-api/internal/apperr"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. summary is the short
// client-facing description of what failed.
func respondError(c fiber.Ctx, summary string, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error(summary, "path", c.Path(), "status", status, "error", err)
	} else {
		slog.Debug(summary, "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(ErrorResponse{Error: summary, Message: err.Error()})
}

// badRequest reports an unparsable request parameter.
func badRequest(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request", Message: message})
}

// ErrorHandler is the fallback for errors returned by handlers and
// middleware.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	slog.Error("unhandled error", "error", err, "status", code)
	return c.Status(code).JSON(ErrorResponse{Error: "Something went wrong!", Message: err.Error()})
}
