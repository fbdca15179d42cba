package registry

import "context"

// SizeImpact is the cumulative download size of a package and its declared
// dependency closure.
type SizeImpact struct {
	// TotalSize is the sum of every package's distribution size in the
	// closure, each counted once.
	TotalSize int64 `json:"total_size"`

	// PackageSize is the root package's own distribution size.
	PackageSize int64 `json:"package_size"`

	// DependenciesSize is TotalSize minus PackageSize.
	DependenciesSize int64 `json:"dependencies_size"`

	// Breakdown maps each visited package to its own distribution size.
	Breakdown map[string]int64 `json:"breakdown"`
}

// ComputeSizeImpact walks the package's declared dependency graph
// depth-first and sums distribution sizes.
//
// Each package is counted at most once: the visited set is consulted before
// recursing, which makes diamond dependencies count a single time and
// keeps cyclic dependency declarations from looping. A package whose
// metadata cannot be fetched contributes zero and does not abort the walk.
func (c *Client) ComputeSizeImpact(ctx context.Context, name string) SizeImpact {
	impact := SizeImpact{Breakdown: make(map[string]int64)}
	visited := make(map[string]bool)

	impact.TotalSize = c.sizeWalk(ctx, name, visited, impact.Breakdown)
	impact.PackageSize = impact.Breakdown[name]
	impact.DependenciesSize = impact.TotalSize - impact.PackageSize
	return impact
}

// sizeWalk returns the cumulative size of name's subtree, recording each
// newly visited package in breakdown. The visited check happens before the
// fetch and before any recursion.
func (c *Client) sizeWalk(ctx context.Context, name string, visited map[string]bool, breakdown map[string]int64) int64 {
	key := normalizeName(name)
	if visited[key] {
		return 0
	}
	visited[key] = true

	pkg, err := c.GetPackage(ctx, name)
	if err != nil {
		c.logger.Warn("skipping package in size walk", "package", name, "error", err)
		return 0
	}

	own := pkg.DistributionSize()
	breakdown[name] = own

	total := own
	for _, dep := range pkg.Dependencies() {
		total += c.sizeWalk(ctx, dep, visited, breakdown)
	}
	return total
}
