package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"animix-api/internal/config"
)

// Cfg is the configuration loaded before any command runs.
var Cfg *config.Config

// machineOutput marks commands that print JSON on stdout; their logs go to
// stderr.
const machineOutput = "machine-output"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "animix",
	Short: "Anime and manga aggregation API",
	Long: `
 Serves a unified anime and manga catalog built from AniList, Jikan and
 MangaDex.

 Without a subcommand the HTTP server is started, same as
  ./animix serve

 Single operations can be run from the shell and print JSON:
  ./animix fetch schedule --day monday
  ./animix fetch weekly-top
  ./animix fetch manga-latest --limit 5
`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runServe,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setup(c *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	Cfg = cfg

	var out io.Writer = os.Stdout
	if _, ok := c.Annotations[machineOutput]; ok {
		out = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return nil
}

// MachineOutput returns annotations that route logs away from stdout.
func MachineOutput() map[string]string {
	return map[string]string{machineOutput: "true"}
}
