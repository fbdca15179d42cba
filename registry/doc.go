// Package registry fetches package metadata from a PyPI-compatible package
// index (the https://pypi.org/pypi/{package}/json endpoint).
//
// The Client memoizes responses for its own lifetime: a package is fetched
// from the network at most once per client, and the cache is discarded with
// the client. There is no TTL and no cross-run persistence.
//
// On top of the raw metadata the package answers two families of diagnostic
// questions, independent of local installation state:
//
//   - compatibility: whether a package's published classifiers admit a given
//     Python version or platform (compat.go);
//   - size and health: cumulative distribution size over the declared
//     dependency graph, wheel availability, release history (size.go,
//     health.go).
package registry
