package registry

import "strings"

// Distribution file types that count toward a package's published size.
const (
	PackageTypeWheel = "bdist_wheel"
	PackageTypeSdist = "sdist"
)

// Package is the JSON document published by the index for one package.
type Package struct {
	Info     Info                     `json:"info"`
	Releases map[string][]ReleaseFile `json:"releases"`
}

// Info carries the per-package metadata block.
type Info struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Summary        string            `json:"summary"`
	License        string            `json:"license"`
	Author         string            `json:"author"`
	AuthorEmail    string            `json:"author_email"`
	HomePage       string            `json:"home_page"`
	RequiresPython string            `json:"requires_python"`
	RequiresDist   []string          `json:"requires_dist"`
	Classifiers    []string          `json:"classifiers"`
	ProjectURLs    map[string]string `json:"project_urls"`
}

// ReleaseFile describes one distribution file of a release.
type ReleaseFile struct {
	Filename      string `json:"filename"`
	PackageType   string `json:"packagetype"`
	PythonVersion string `json:"python_version"`
	Size          int64  `json:"size"`
	UploadTime    string `json:"upload_time"`
	URL           string `json:"url"`
	Yanked        bool   `json:"yanked"`
}

// LatestFiles returns the distribution files of the package's latest release.
func (p *Package) LatestFiles() []ReleaseFile {
	return p.Releases[p.Info.Version]
}

// DistributionSize sums the wheel and sdist file sizes of the latest release.
func (p *Package) DistributionSize() int64 {
	var total int64
	for _, f := range p.LatestFiles() {
		if f.PackageType == PackageTypeWheel || f.PackageType == PackageTypeSdist {
			total += f.Size
		}
	}
	return total
}

// HasWheel reports whether the latest release publishes a wheel.
func (p *Package) HasWheel() bool {
	for _, f := range p.LatestFiles() {
		if f.PackageType == PackageTypeWheel {
			return true
		}
	}
	return false
}

// Dependencies returns the base names of the package's declared
// dependencies, with environment markers, version specifiers and extras
// qualifiers stripped from each requires_dist entry.
func (p *Package) Dependencies() []string {
	deps := make([]string, 0, len(p.Info.RequiresDist))
	for _, req := range p.Info.RequiresDist {
		if name := BaseDependencyName(req); name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}

// BaseDependencyName reduces a requires_dist entry to its bare package name.
// Entries look like "requests (>=2.25) ; python_version >= \"3.7\"" or
// "urllib3[socks]<3,>=1.21.1".
func BaseDependencyName(req string) string {
	// Environment marker first, then anything that starts a specifier,
	// extras list, or parenthesized constraint.
	req, _, _ = strings.Cut(req, ";")
	if i := strings.IndexAny(req, " ([<>=!~"); i >= 0 {
		req = req[:i]
	}
	return strings.TrimSpace(req)
}

// classifierLeaf returns the last "::"-separated segment of a classifier,
// trimmed: "Programming Language :: Python :: 3.11" -> "3.11".
func classifierLeaf(classifier string) string {
	parts := strings.Split(classifier, "::")
	return strings.TrimSpace(parts[len(parts)-1])
}
