// Package report renders preflight check results for terminals and
// documentation.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preflightpy/preflight"
)

var (
	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

// StatusLine renders one dependency result as a glyph-prefixed line:
//
//	✓ requests (required: >=2.25.0, found: 2.31.0)
//	✗ flask (required: ==3.0.2, found: not installed)
func StatusLine(r preflight.DependencyResult) string {
	glyph := failStyle.Render("✗")
	if r.Satisfied() {
		glyph = passStyle.Render("✓")
	}

	found := r.Version
	switch {
	case !r.IsInstalled:
		found = "not installed"
	case found == "":
		found = "version unknown"
	}

	detail := "found: " + found
	if r.RequiredVersion != "" {
		detail = "required: " + r.RequiredVersion + ", " + detail
	}
	if r.ErrorMessage != "" {
		detail += ", " + r.ErrorMessage
	}

	return fmt.Sprintf("%s %s %s", glyph, nameStyle.Render(r.Name), detailStyle.Render("("+detail+")"))
}

// Summary renders the whole report as a styled terminal block.
func Summary(rep *preflight.Report) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Environment"))
	sb.WriteString("\n")
	if env := rep.Environment; env != nil {
		sb.WriteString(detailStyle.Render(fmt.Sprintf("  Python %s (%s) on %s\n",
			env.PythonVersion, env.Implementation, env.Platform)))
		if env.IsVenv {
			sb.WriteString(detailStyle.Render("  virtualenv: " + env.VenvPath + "\n"))
		} else {
			sb.WriteString(detailStyle.Render("  virtualenv: not active\n"))
		}
		if env.PipVersion != "" {
			sb.WriteString(detailStyle.Render("  pip " + env.PipVersion + "\n"))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(headerStyle.Render("Dependencies"))
	sb.WriteString("\n")
	for _, r := range rep.Dependencies.Results {
		sb.WriteString("  " + StatusLine(r) + "\n")
	}
	sb.WriteString("\n")

	if rep.Dependencies.Status == "ok" {
		sb.WriteString(passStyle.Render("✓ All dependencies satisfied"))
	} else {
		sb.WriteString(failStyle.Render("✗ Some dependencies are missing or outdated"))
	}
	sb.WriteString("\n")

	return sb.String()
}
