package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight/config"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

var (
	settingsPath string
	verbose      bool

	rootCmd = &cobra.Command{
		Use:   "preflight",
		Short: "Python dependency checker and application launcher",
		Long: `preflight verifies that a Python environment satisfies the
requirements a project declares before the application starts.

It checks installed packages against requirements.txt, reports
per-package diagnostics, installs what is missing, and can launch the
application inside the verified environment.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", config.DefaultPath, "settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command with fang's styling and signal handling.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Warnings and up unless --verbose.
func newLogger() *slog.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "preflight",
		Level:  level,
	})
	return slog.New(handler)
}

// loadSettings reads the settings file, logging a decode failure and
// continuing with defaults the way the rest of the CLI expects.
func loadSettings(logger *slog.Logger) *config.Settings {
	settings, err := config.Load(settingsPath)
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
	}
	return settings
}
