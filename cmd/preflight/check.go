package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight"
	"github.com/preflightpy/preflight/config"
	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/report"
	"github.com/preflightpy/preflight/requirements"
)

var (
	requirementsPath string

	errChecksFailed = errors.New("dependency check failed")
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check installed packages against declared requirements",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		settings := loadSettings(logger)

		reqs, err := requirements.ParseFile(requirementsFile(settings))
		if err != nil {
			return err
		}

		checker, err := newChecker(settings, logger)
		if err != nil {
			return err
		}

		ok, results := checker.CheckAll(cmd.Context(), reqs)
		for _, r := range results {
			fmt.Println(report.StatusLine(r))
		}
		if !ok {
			return errChecksFailed
		}
		fmt.Println("\nAll dependencies satisfied.")
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&requirementsPath, "requirements", "r", "", "requirements file (default from settings)")
}

// requirementsFile resolves the requirements path: flag first, settings
// second.
func requirementsFile(settings *config.Settings) string {
	if requirementsPath != "" {
		return requirementsPath
	}
	return settings.Dependencies.RequirementsFile
}

// newChecker builds a checker against the interpreter the settings select.
func newChecker(settings *config.Settings, logger *slog.Logger) (*preflight.Checker, error) {
	interp, err := pyenv.SelectInterpreter(
		settings.Environment.UseVenv,
		settings.Environment.VenvPath,
		settings.Environment.PythonPath,
		pyenv.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return preflight.NewChecker(
		preflight.WithInterpreter(interp),
		preflight.WithLogger(logger),
	)
}
