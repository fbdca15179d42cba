// Package depgraph builds and inspects the declared dependency graph of a
// PyPI package, as reported by index metadata.
//
// The graph is name-keyed: the index serves one (latest) version per
// package, so unlike a version-resolution graph there is never more than
// one node per package name. Cyclic dependency declarations do occur in
// the wild and every traversal here tolerates them.
package depgraph

import (
	"context"

	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/registry"
)

// Node is one package in the dependency graph.
type Node struct {
	// Name is the package name as first encountered.
	Name string

	// Version is the latest published version, empty when unresolved.
	Version string

	// Size is the distribution size of the latest release in bytes.
	Size int64

	// Dependencies are the declared direct dependencies (normalized names).
	Dependencies []string

	// Dependents are the packages in this graph that declare a dependency
	// on this one (reverse edges, normalized names).
	Dependents []string

	// Unresolved is true when the index had no usable metadata for the
	// package. Unresolved nodes have no outgoing edges.
	Unresolved bool
}

// Graph is a package dependency graph rooted at one package.
type Graph struct {
	// Root is the normalized name of the root package.
	Root string

	// Packages contains all nodes, keyed by normalized package name.
	Packages map[string]*Node
}

// Build walks the declared dependency closure of root via the index
// client and assembles the graph. A package whose metadata cannot be
// fetched becomes an Unresolved leaf; the walk continues past it.
func Build(ctx context.Context, client *registry.Client, root string) *Graph {
	g := &Graph{
		Root:     pyenv.NormalizeName(root),
		Packages: make(map[string]*Node),
	}

	queue := []string{root}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		key := pyenv.NormalizeName(name)
		if _, seen := g.Packages[key]; seen {
			continue
		}

		node := &Node{Name: name}
		g.Packages[key] = node

		pkg, err := client.GetPackage(ctx, name)
		if err != nil {
			node.Unresolved = true
			continue
		}
		node.Version = pkg.Info.Version
		node.Size = pkg.DistributionSize()

		seenDep := make(map[string]bool)
		for _, dep := range pkg.Dependencies() {
			depKey := pyenv.NormalizeName(dep)
			if depKey == key || seenDep[depKey] {
				continue
			}
			seenDep[depKey] = true
			node.Dependencies = append(node.Dependencies, depKey)
			queue = append(queue, dep)
		}
	}

	// Reverse edges.
	for key, node := range g.Packages {
		for _, depKey := range node.Dependencies {
			if depNode, ok := g.Packages[depKey]; ok {
				depNode.Dependents = append(depNode.Dependents, key)
			}
		}
	}

	return g
}

// Get returns the node for a package name, or nil if absent.
func (g *Graph) Get(name string) *Node {
	return g.Packages[pyenv.NormalizeName(name)]
}

// Contains reports whether the graph includes the package.
func (g *Graph) Contains(name string) bool {
	return g.Get(name) != nil
}

// DirectDeps returns the direct dependencies of a package.
func (g *Graph) DirectDeps(name string) []string {
	if node := g.Get(name); node != nil {
		return node.Dependencies
	}
	return nil
}

// Dependents returns the packages that directly depend on the given one.
func (g *Graph) Dependents(name string) []string {
	if node := g.Get(name); node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns every package reachable from name, in
// breadth-first order, the package itself excluded.
func (g *Graph) TransitiveDeps(name string) []string {
	start := pyenv.NormalizeName(name)
	visited := map[string]bool{start: true}
	var result []string

	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Packages[current]
		if node == nil {
			continue
		}
		for _, dep := range node.Dependencies {
			if !visited[dep] {
				visited[dep] = true
				result = append(result, dep)
				queue = append(queue, dep)
			}
		}
	}
	return result
}

// Path returns the shortest dependency path from one package to another,
// both endpoints included, or nil when no path exists.
func (g *Graph) Path(from, to string) []string {
	fromKey := pyenv.NormalizeName(from)
	toKey := pyenv.NormalizeName(to)
	if fromKey == toKey {
		return []string{fromKey}
	}

	type item struct {
		key  string
		path []string
	}
	visited := map[string]bool{fromKey: true}
	queue := []item{{key: fromKey, path: []string{fromKey}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Packages[current.key]
		if node == nil {
			continue
		}
		for _, dep := range node.Dependencies {
			if dep == toKey {
				return append(current.path, dep)
			}
			if !visited[dep] {
				visited[dep] = true
				next := make([]string, len(current.path)+1)
				copy(next, current.path)
				next[len(current.path)] = dep
				queue = append(queue, item{key: dep, path: next})
			}
		}
	}
	return nil
}

// Leaves returns the packages with no dependencies, unresolved ones
// included.
func (g *Graph) Leaves() []string {
	var leaves []string
	for key, node := range g.Packages {
		if len(node.Dependencies) == 0 {
			leaves = append(leaves, key)
		}
	}
	return leaves
}

// HasCycles reports whether any dependency declaration cycle exists.
func (g *Graph) HasCycles() bool {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var walk func(key string) bool
	walk = func(key string) bool {
		visited[key] = true
		onStack[key] = true

		if node := g.Packages[key]; node != nil {
			for _, dep := range node.Dependencies {
				if !visited[dep] {
					if walk(dep) {
						return true
					}
				} else if onStack[dep] {
					return true
				}
			}
		}

		onStack[key] = false
		return false
	}

	for key := range g.Packages {
		if !visited[key] {
			if walk(key) {
				return true
			}
		}
	}
	return false
}

// Stats summarizes the graph.
type Stats struct {
	// TotalPackages counts every node, the root included.
	TotalPackages int

	// DirectDependencies counts the root's direct dependencies.
	DirectDependencies int

	// TransitiveDependencies counts everything below the direct layer.
	TransitiveDependencies int

	// MaxDepth is the longest acyclic root-to-leaf path length.
	MaxDepth int

	// TotalSize sums every resolved node's distribution size.
	TotalSize int64

	// Unresolved counts nodes whose metadata could not be fetched.
	Unresolved int
}

// Stats computes summary statistics for the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{TotalPackages: len(g.Packages)}

	if root := g.Packages[g.Root]; root != nil {
		stats.DirectDependencies = len(root.Dependencies)
	}
	stats.TransitiveDependencies = stats.TotalPackages - stats.DirectDependencies - 1
	if stats.TransitiveDependencies < 0 {
		stats.TransitiveDependencies = 0
	}

	for _, node := range g.Packages {
		stats.TotalSize += node.Size
		if node.Unresolved {
			stats.Unresolved++
		}
	}

	stats.MaxDepth = g.maxDepth()
	return stats
}

// maxDepth walks the graph depth-first, treating an edge back onto the
// current path as a cycle back-edge rather than additional depth.
func (g *Graph) maxDepth() int {
	depths := make(map[string]int)
	onPath := make(map[string]bool)
	var maxDepth int

	var dfs func(key string, depth int)
	dfs = func(key string, depth int) {
		if onPath[key] {
			return
		}
		if existing, ok := depths[key]; ok && existing >= depth {
			return
		}
		depths[key] = depth
		if depth > maxDepth {
			maxDepth = depth
		}

		node := g.Packages[key]
		if node == nil {
			return
		}
		onPath[key] = true
		for _, dep := range node.Dependencies {
			dfs(dep, depth+1)
		}
		delete(onPath, key)
	}

	dfs(g.Root, 0)
	return maxDepth
}
