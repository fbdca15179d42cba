package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/preflightpy/preflight"
)

// Markdown generates a setup-guide document from the report, suitable for
// committing next to the project or rendering in a terminal.
func Markdown(rep *preflight.Report) string {
	var sb strings.Builder

	sb.WriteString("# Python Environment Setup Guide\n\n")

	if env := rep.Environment; env != nil {
		sb.WriteString("## Python Installation\n\n")
		sb.WriteString("- Python Version: " + env.PythonVersion + "\n")
		if env.Implementation != "" {
			sb.WriteString("- Implementation: " + env.Implementation + "\n")
		}
		if env.Executable != "" {
			sb.WriteString("- Location: " + env.Executable + "\n")
		}
		if env.PipVersion != "" {
			sb.WriteString("- pip: " + env.PipVersion + "\n")
		}
		sb.WriteString("\n## Virtual Environment\n\n")
		if env.IsVenv {
			sb.WriteString("✅ Running in a virtual environment\n\n")
			sb.WriteString("- Location: " + env.VenvPath + "\n")
		} else {
			sb.WriteString("⚠️ Not running in a virtual environment\n\n")
			sb.WriteString("Consider creating one:\n\n")
			sb.WriteString("```bash\n")
			sb.WriteString("python -m venv .venv\n")
			sb.WriteString("# On Windows:\n")
			sb.WriteString(".venv\\Scripts\\activate\n")
			sb.WriteString("# On Unix:\n")
			sb.WriteString("source .venv/bin/activate\n")
			sb.WriteString("```\n")
		}
	}

	sb.WriteString("\n## Dependencies\n\n")
	sb.WriteString("| Package | Required | Found | Status |\n")
	sb.WriteString("|---------|----------|-------|--------|\n")
	for _, r := range rep.Dependencies.Results {
		glyph := "❌"
		if r.Satisfied() {
			glyph = "✅"
		}
		required := r.RequiredVersion
		if required == "" {
			required = "any"
		}
		found := r.Version
		switch {
		case !r.IsInstalled:
			found = "not installed"
		case found == "":
			found = "unknown"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", r.Name, required, found, glyph))
	}

	if len(rep.Requirements) > 0 {
		sb.WriteString("\n## Declared Requirements\n\n")
		names := make([]string, 0, len(rep.Requirements))
		for name := range rep.Requirements {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if constraint := rep.Requirements[name]; constraint != "" {
				sb.WriteString("- `" + name + constraint + "`\n")
			} else {
				sb.WriteString("- `" + name + "`\n")
			}
		}
	}

	sb.WriteString("\n## Setup Instructions\n\n")
	sb.WriteString("1. Create a virtual environment: `python -m venv .venv`\n")
	sb.WriteString("2. Activate it: `source .venv/bin/activate` (Unix) or `.venv\\Scripts\\activate` (Windows)\n")
	sb.WriteString("3. Install dependencies: `pip install -r requirements.txt`\n")
	sb.WriteString("4. Verify: `preflight check`\n")

	return sb.String()
}
