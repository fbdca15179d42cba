package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight/installer"
	"github.com/preflightpy/preflight/pyenv"
)

var upgradePip bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the environment and install declared requirements",
	Long: `Setup creates the virtual environment when the settings ask for
one, optionally upgrades pip, and installs the declared requirements
into the selected environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		settings := loadSettings(logger)

		interp, err := pyenv.SelectInterpreter(
			false, "",
			settings.Environment.PythonPath,
			pyenv.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		if settings.Environment.UseVenv {
			interp, err = interp.EnsureVenv(ctx, settings.Environment.VenvPath)
			if err != nil {
				return err
			}
		}

		pip := installer.New(interp.Path(), settings.Dependencies, settings.Installer,
			installer.WithLogger(logger))

		if upgradePip || settings.Installer.UpgradeDependencies {
			if err := pip.UpgradePip(ctx); err != nil {
				logger.Warn("pip self-upgrade failed", "error", err)
			}
		}

		reqFile := requirementsFile(settings)
		fmt.Printf("Installing requirements from %s...\n", reqFile)
		if err := pip.InstallRequirements(ctx, reqFile); err != nil {
			return err
		}
		fmt.Println("Environment ready.")
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVar(&upgradePip, "upgrade-pip", false, "upgrade pip before installing")
}
