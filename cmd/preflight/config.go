package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage preflight settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		settings := loadSettings(logger)

		out, err := json.MarshalIndent(settings, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.Default(), settingsPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default settings to %s\n", settingsPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
