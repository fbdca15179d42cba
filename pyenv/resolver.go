package pyenv

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Resolution errors. Callers distinguish "this package is not installed"
// (ErrModuleNotFound, a routine per-item miss) from "the inventory itself
// could not be read" (ErrInventoryUnavailable, which fails a whole batch).
var (
	ErrModuleNotFound       = errors.New("module not found")
	ErrInventoryUnavailable = errors.New("module inventory unavailable")
	ErrInterpreterNotFound  = errors.New("python interpreter not found")
)

// ModuleInfo describes one installed distribution.
type ModuleInfo struct {
	// Name is the distribution name as recorded in its metadata.
	Name string

	// Version is the recorded version, empty when the metadata declares none.
	Version string

	// Location is the metadata directory the distribution was found in.
	Location string
}

// ModuleResolver resolves an installed package by name.
//
// Resolve returns ErrModuleNotFound for packages that are simply absent and
// ErrInventoryUnavailable (possibly wrapped) when the installed-package
// inventory cannot be determined at all.
type ModuleResolver interface {
	Resolve(name string) (*ModuleInfo, error)
}

// NormalizeName canonicalizes a distribution name for lookup: lowercase,
// with runs of "-", "_" and "." collapsed to a single "-".
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevSep := false
	for _, r := range strings.ToLower(name) {
		if r == '-' || r == '_' || r == '.' {
			if !prevSep {
				b.WriteByte('-')
			}
			prevSep = true
			continue
		}
		prevSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// DistInfoResolver resolves packages by scanning site-packages directories
// for *.dist-info and *.egg-info metadata. The scan happens once, on first
// use, and holds for the resolver's lifetime.
type DistInfoResolver struct {
	dirs []string

	once      sync.Once
	inventory map[string]*ModuleInfo
	loadErr   error
}

// NewDistInfoResolver creates a resolver over the given site-packages
// directories, searched in order.
func NewDistInfoResolver(dirs ...string) *DistInfoResolver {
	return &DistInfoResolver{dirs: dirs}
}

// Resolve looks the package up in the scanned inventory.
func (r *DistInfoResolver) Resolve(name string) (*ModuleInfo, error) {
	r.once.Do(r.load)
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if info, ok := r.inventory[NormalizeName(name)]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
}

// load scans every configured directory. The inventory is unavailable only
// when no directory could be read at all; a missing directory among several
// is tolerated.
func (r *DistInfoResolver) load() {
	r.inventory = make(map[string]*ModuleInfo)

	if len(r.dirs) == 0 {
		r.loadErr = fmt.Errorf("%w: no site-packages directories configured", ErrInventoryUnavailable)
		return
	}

	readable := 0
	var lastErr error
	for _, dir := range r.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			lastErr = err
			continue
		}
		readable++
		for _, entry := range entries {
			r.addEntry(dir, entry)
		}
	}

	if readable == 0 {
		r.loadErr = fmt.Errorf("%w: %v", ErrInventoryUnavailable, lastErr)
	}
}

// addEntry records one metadata directory, if entry is one. Earlier
// directories win on duplicate names.
func (r *DistInfoResolver) addEntry(dir string, entry fs.DirEntry) {
	name := entry.Name()

	var metadataFile string
	switch {
	case strings.HasSuffix(name, ".dist-info") && entry.IsDir():
		metadataFile = filepath.Join(dir, name, "METADATA")
	case strings.HasSuffix(name, ".egg-info") && entry.IsDir():
		metadataFile = filepath.Join(dir, name, "PKG-INFO")
	case strings.HasSuffix(name, ".egg-info"):
		metadataFile = filepath.Join(dir, name)
	default:
		return
	}

	info := readDistMetadata(metadataFile)
	if info == nil {
		// Fall back to the directory name: "requests-2.31.0.dist-info".
		info = parseMetadataDirName(name)
	}
	if info == nil || info.Name == "" {
		return
	}
	info.Location = filepath.Join(dir, name)

	key := NormalizeName(info.Name)
	if _, exists := r.inventory[key]; !exists {
		r.inventory[key] = info
	}
}

// readDistMetadata extracts the Name and Version headers from a METADATA or
// PKG-INFO file. Returns nil when the file cannot be read.
func readDistMetadata(path string) *ModuleInfo {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	info := &ModuleInfo{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break // end of headers
		}
		if v, ok := strings.CutPrefix(line, "Name: "); ok {
			info.Name = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "Version: "); ok {
			info.Version = strings.TrimSpace(v)
		}
		if info.Name != "" && info.Version != "" {
			break
		}
	}
	if info.Name == "" {
		return nil
	}
	return info
}

// parseMetadataDirName recovers name and version from a metadata directory
// name such as "requests-2.31.0.dist-info" or "foo.egg-info".
func parseMetadataDirName(dirName string) *ModuleInfo {
	stem := strings.TrimSuffix(strings.TrimSuffix(dirName, ".dist-info"), ".egg-info")
	if stem == "" {
		return nil
	}
	name, ver, found := strings.Cut(stem, "-")
	if !found {
		return &ModuleInfo{Name: stem}
	}
	return &ModuleInfo{Name: name, Version: ver}
}

// StaticResolver is an in-memory ModuleResolver for tests and examples.
// Keys are package names (normalized on lookup), values are versions; an
// empty version models an installed package that declares no version.
type StaticResolver map[string]string

// Resolve implements ModuleResolver.
func (s StaticResolver) Resolve(name string) (*ModuleInfo, error) {
	key := NormalizeName(name)
	for k, v := range s {
		if NormalizeName(k) == key {
			return &ModuleInfo{Name: k, Version: v}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
}
