package depgraph

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

const separatorWidth = 60

// ToText renders the graph as a human-readable tree with a statistics
// header. Output is deterministic: children print in sorted order.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Dependency Graph (root: %s)\n", g.Root))
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	buf.WriteString(fmt.Sprintf("Total packages: %d\n", stats.TotalPackages))
	buf.WriteString(fmt.Sprintf("Direct dependencies: %d\n", stats.DirectDependencies))
	buf.WriteString(fmt.Sprintf("Transitive dependencies: %d\n", stats.TransitiveDependencies))
	buf.WriteString(fmt.Sprintf("Max depth: %d\n", stats.MaxDepth))
	if stats.Unresolved > 0 {
		buf.WriteString(fmt.Sprintf("Unresolved: %d\n", stats.Unresolved))
	}
	buf.WriteString("\n")

	buf.WriteString("Dependency Tree:\n")
	visited := make(map[string]bool)
	g.printTree(&buf, g.Root, "", true, visited)

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, key, prefix string, isLast bool, visited map[string]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		buf.WriteString(g.nodeLabel(key))
	} else {
		buf.WriteString(prefix + connector + g.nodeLabel(key))
	}

	if visited[key] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[key] = true
	defer func() { visited[key] = false }()

	node := g.Packages[key]
	if node == nil {
		return
	}

	deps := make([]string, len(node.Dependencies))
	copy(deps, node.Dependencies)
	sort.Strings(deps)

	for i, dep := range deps {
		isLastChild := i == len(deps)-1
		childPrefix := prefix
		if prefix != "" {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		g.printTree(buf, dep, childPrefix, isLastChild, visited)
	}
}

func (g *Graph) nodeLabel(key string) string {
	node := g.Packages[key]
	switch {
	case node == nil:
		return key
	case node.Unresolved:
		return key + " (unresolved)"
	case node.Version != "":
		return key + "@" + node.Version
	default:
		return key
	}
}

// ToDOT renders the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	keys := make([]string, 0, len(g.Packages))
	for key := range g.Packages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		node := g.Packages[key]
		label := fmt.Sprintf("%s\\n%s", key, node.Version)
		attrs := fmt.Sprintf(`label="%s"`, label)
		if key == g.Root {
			attrs += ", style=bold"
		}
		if node.Unresolved {
			attrs += ", style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q [%s];\n", key, attrs))
	}

	buf.WriteString("\n")
	for _, key := range keys {
		for _, dep := range g.Packages[key].Dependencies {
			buf.WriteString(fmt.Sprintf("  %q -> %q;\n", key, dep))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
