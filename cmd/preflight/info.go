package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight/depgraph"
	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/registry"
)

var (
	showTree    bool
	showHistory bool
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show registry metadata, compatibility and size for a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		name := args[0]

		client := registry.NewClient(registry.WithLogger(logger))

		health, err := client.GetHealth(ctx, name)
		if err != nil {
			return fmt.Errorf("fetch package info: %w", err)
		}

		fmt.Printf("%s %s\n", health.Name, health.Version)
		if health.License != "" {
			fmt.Printf("  License:  %s\n", health.License)
		}
		if health.Author != "" {
			fmt.Printf("  Author:   %s\n", health.Author)
		}
		if health.HomePage != "" {
			fmt.Printf("  Homepage: %s\n", health.HomePage)
		}
		if health.RequiresPython != "" {
			fmt.Printf("  Requires: Python %s\n", health.RequiresPython)
		}
		fmt.Printf("  Wheel:    %v\n", health.HasWheel)
		if len(health.DevelopmentStatus) > 0 {
			fmt.Printf("  Status:   %s\n", health.DevelopmentStatus[0])
		}

		if pyVersion := localPythonVersion(ctx, logger); pyVersion != "" {
			pyOK, pyDetail := client.CheckPythonCompatibility(ctx, name, pyVersion)
			fmt.Printf("  Python %s compatible: %v (%s)\n", pyVersion, pyOK, pyDetail)
		}
		platOK, platDetail := client.CheckPlatformCompatibility(ctx, name, "")
		fmt.Printf("  Platform compatible: %v (%s)\n", platOK, platDetail)

		impact := client.ComputeSizeImpact(ctx, name)
		fmt.Printf("  Size: %s (package %s, dependencies %s)\n",
			formatSize(impact.TotalSize), formatSize(impact.PackageSize), formatSize(impact.DependenciesSize))

		if showHistory {
			history, err := client.GetReleaseHistory(ctx, name)
			if err != nil {
				return err
			}
			fmt.Println("\nReleases:")
			for i, rel := range history {
				if i >= 10 {
					fmt.Printf("  ... and %d more\n", len(history)-i)
					break
				}
				fmt.Printf("  %-12s %s\n", rel.Version, rel.UploadTime)
			}
		}

		if showTree {
			fmt.Println()
			fmt.Print(depgraph.Build(ctx, client, name).ToText())
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&showTree, "tree", false, "print the dependency tree")
	infoCmd.Flags().BoolVar(&showHistory, "history", false, "print release history")
}

// localPythonVersion probes the interpreter on PATH for its "major.minor"
// version, returning "" when no interpreter is available.
func localPythonVersion(ctx context.Context, logger *slog.Logger) string {
	interp, err := pyenv.FindInterpreter(pyenv.WithLogger(logger))
	if err != nil {
		logger.Warn("no python interpreter found", "error", err)
		return ""
	}
	info, err := interp.Snapshot(ctx)
	if err != nil {
		logger.Warn("interpreter probe failed", "error", err)
		return ""
	}
	return info.PythonMajorMinor()
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
