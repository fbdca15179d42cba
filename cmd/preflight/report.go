package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/preflightpy/preflight/report"
	"github.com/preflightpy/preflight/requirements"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an environment and dependency report",
	Long: `Report captures the Python environment, evaluates every declared
requirement, and renders the result as a Markdown setup guide. With
--output the document is written to a file; otherwise it is rendered
to the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
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
		rep, err := checker.Report(ctx, reqs)
		if err != nil {
			return err
		}

		markdown := report.Markdown(rep)
		if reportOutput != "" {
			if err := os.WriteFile(reportOutput, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", reportOutput)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			// Fall back to raw markdown when the terminal renderer
			// cannot be built.
			fmt.Print(markdown)
			return nil
		}
		out, err := renderer.Render(markdown)
		if err != nil {
			fmt.Print(markdown)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the Markdown report to a file")
}
