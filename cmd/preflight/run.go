package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight"
	"github.com/preflightpy/preflight/installer"
	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/report"
	"github.com/preflightpy/preflight/requirements"
)

var skipCheck bool

var runCmd = &cobra.Command{
	Use:   "run <app.py> [args...]",
	Short: "Check dependencies, then launch the application",
	Long: `Run checks the declared requirements first, installs anything
missing when auto-install is enabled, and then launches the given
Python application in the selected environment with the caller's
standard streams attached.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		settings := loadSettings(logger)

		interp, err := pyenv.SelectInterpreter(
			settings.Environment.UseVenv,
			settings.Environment.VenvPath,
			settings.Environment.PythonPath,
			pyenv.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		if settings.Dependencies.CheckOnStartup && !skipCheck {
			reqs, err := requirements.ParseFile(requirementsFile(settings))
			if err != nil {
				return err
			}

			checker, err := newChecker(settings, logger)
			if err != nil {
				return err
			}

			missing := checker.MissingPackages(ctx, reqs)
			if len(missing) > 0 && settings.Dependencies.AutoInstall {
				pip := installer.New(interp.Path(), settings.Dependencies, settings.Installer,
					installer.WithLogger(logger))
				var installErr error
				for _, r := range pip.InstallPackages(ctx, missing) {
					switch r.Status {
					case preflight.StatusFailed:
						fmt.Printf("Failed to install %s: %s\n", r.Name, r.ErrorMessage)
						installErr = errChecksFailed
					case preflight.StatusSkipped:
						fmt.Printf("Skipped %s\n", r.Name)
					default:
						fmt.Printf("Installed %s\n", r.Name)
					}
				}
				if installErr != nil {
					return installErr
				}
				// The package inventory is scanned once per checker, so
				// re-verify with a fresh one after installing.
				checker, err = newChecker(settings, logger)
				if err != nil {
					return err
				}
				missing = checker.MissingPackages(ctx, reqs)
			}
			if len(missing) > 0 {
				_, results := checker.CheckAll(ctx, reqs)
				for _, r := range results {
					fmt.Println(report.StatusLine(r))
				}
				return errChecksFailed
			}
		}

		return interp.Launch(ctx, args[0], args[1:]...)
	},
}

func init() {
	runCmd.Flags().BoolVar(&skipCheck, "skip-check", false, "launch without checking dependencies")
}
