package registry

import (
	"context"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Health summarizes maintenance and packaging signals for one package.
type Health struct {
	Name              string   `json:"name"`
	Version           string   `json:"version"`
	RequiresPython    string   `json:"requires_python,omitempty"`
	License           string   `json:"license,omitempty"`
	Author            string   `json:"author,omitempty"`
	AuthorEmail       string   `json:"author_email,omitempty"`
	HomePage          string   `json:"homepage,omitempty"`
	SourceURL         string   `json:"source_url,omitempty"`
	DocumentationURL  string   `json:"documentation_url,omitempty"`
	ReleaseDate       string   `json:"release_date,omitempty"`
	HasWheel          bool     `json:"has_wheel"`
	PackageSize       int64    `json:"package_size"`
	DevelopmentStatus []string `json:"development_status,omitempty"`
	Implementations   []string `json:"supported_implementations,omitempty"`
}

// GetHealth collects health metrics for a package from its index metadata.
func (c *Client) GetHealth(ctx context.Context, name string) (*Health, error) {
	pkg, err := c.GetPackage(ctx, name)
	if err != nil {
		return nil, err
	}

	h := &Health{
		Name:           name,
		Version:        pkg.Info.Version,
		RequiresPython: pkg.Info.RequiresPython,
		License:        pkg.Info.License,
		Author:         pkg.Info.Author,
		AuthorEmail:    pkg.Info.AuthorEmail,
		HomePage:       pkg.Info.HomePage,
		HasWheel:       pkg.HasWheel(),
		PackageSize:    pkg.DistributionSize(),
	}

	if urls := pkg.Info.ProjectURLs; urls != nil {
		h.SourceURL = urls["Source"]
		h.DocumentationURL = urls["Documentation"]
	}
	if files := pkg.LatestFiles(); len(files) > 0 {
		h.ReleaseDate = files[0].UploadTime
	}
	for _, cls := range pkg.Info.Classifiers {
		switch {
		case strings.HasPrefix(cls, "Development Status"):
			h.DevelopmentStatus = append(h.DevelopmentStatus, cls)
		case strings.HasPrefix(cls, "Programming Language :: Python :: Implementation ::"):
			h.Implementations = append(h.Implementations, classifierLeaf(cls))
		}
	}
	return h, nil
}

// Release is one entry of a package's release history.
type Release struct {
	Version       string `json:"version"`
	UploadTime    string `json:"upload_time,omitempty"`
	PythonVersion string `json:"python_version,omitempty"`
	URL           string `json:"url,omitempty"`
	Size          int64  `json:"size"`
	HasWheel      bool   `json:"has_wheel"`
}

// GetReleaseHistory returns the package's releases, newest version first.
// Versions that do not parse sort after every parsable one, ordered by
// version string. Releases with no published files are skipped.
func (c *Client) GetReleaseHistory(ctx context.Context, name string) ([]Release, error) {
	pkg, err := c.GetPackage(ctx, name)
	if err != nil {
		return nil, err
	}

	type entry struct {
		rel    Release
		parsed *goversion.Version
	}
	entries := make([]entry, 0, len(pkg.Releases))
	for ver, files := range pkg.Releases {
		if len(files) == 0 {
			continue
		}
		rel := Release{
			Version:       ver,
			UploadTime:    files[0].UploadTime,
			PythonVersion: files[0].PythonVersion,
			URL:           files[0].URL,
			Size:          files[0].Size,
		}
		for _, f := range files {
			if f.PackageType == PackageTypeWheel {
				rel.HasWheel = true
				break
			}
		}
		parsed, err := goversion.NewVersion(ver)
		if err != nil {
			parsed = nil
		}
		entries = append(entries, entry{rel: rel, parsed: parsed})
	}

	// Map iteration order is randomized, so the sort must decide every
	// pair, the unparsable ones included.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.parsed != nil && b.parsed != nil:
			if cmp := a.parsed.Compare(b.parsed); cmp != 0 {
				return cmp > 0
			}
			return a.rel.Version < b.rel.Version
		case a.parsed != nil:
			return true
		case b.parsed != nil:
			return false
		default:
			return a.rel.Version < b.rel.Version
		}
	})

	releases := make([]Release, len(entries))
	for i, e := range entries {
		releases[i] = e.rel
	}
	return releases, nil
}
