package registry

import (
	"context"
	"runtime"
	"strings"

	"github.com/preflightpy/preflight/version"
)

// Classifier prefixes used for compatibility checks.
const (
	pythonClassifierPrefix   = "Programming Language :: Python"
	platformClassifierPrefix = "Operating System"
)

// fetchFailureDetail is the detail string for compatibility checks that
// could not obtain metadata. Conservative fail-closed: distinct from "no
// restrictions found", which is compatible-by-default.
const fetchFailureDetail = "Could not fetch package information"

// CheckPythonCompatibility reports whether the package's published
// classifiers admit the given Python version ("major.minor").
//
// Packages that declare no Python version classifiers are assumed portable.
// When classifiers exist, the version is compatible iff it satisfies at
// least one of them under the >= / <= / exact-match rule.
func (c *Client) CheckPythonCompatibility(ctx context.Context, name, pythonVersion string) (bool, string) {
	pkg, err := c.GetPackage(ctx, name)
	if err != nil {
		return false, fetchFailureDetail
	}

	tokens := pythonVersionClassifiers(pkg.Info.Classifiers)
	if len(tokens) == 0 {
		return true, "No Python version restrictions found"
	}

	compatible := false
	for _, tok := range tokens {
		if classifierAdmitsVersion(tok, pythonVersion) {
			compatible = true
			break
		}
	}
	return compatible, "Latest version: " + pkg.Info.Version
}

// CheckPlatformCompatibility reports whether the package's "Operating
// System" classifiers admit the given platform name. An empty platformName
// defaults to the host platform (runtime.GOOS).
//
// Packages that declare no platform classifiers are assumed portable. When
// classifiers exist, a case-insensitive substring match against any of them
// counts as compatible.
func (c *Client) CheckPlatformCompatibility(ctx context.Context, name, platformName string) (bool, string) {
	if platformName == "" {
		platformName = runtime.GOOS
	}
	platformName = strings.ToLower(platformName)

	pkg, err := c.GetPackage(ctx, name)
	if err != nil {
		return false, fetchFailureDetail
	}

	var tokens []string
	for _, cls := range pkg.Info.Classifiers {
		if strings.HasPrefix(cls, platformClassifierPrefix) {
			tokens = append(tokens, strings.ToLower(classifierLeaf(cls)))
		}
	}
	if len(tokens) == 0 {
		return true, "No platform restrictions found"
	}

	compatible := false
	for _, tok := range tokens {
		if strings.Contains(tok, platformName) {
			compatible = true
			break
		}
	}
	return compatible, "Platform classifiers: " + strings.Join(tokens, ", ")
}

// pythonVersionClassifiers extracts version tokens from "Programming
// Language :: Python :: X" classifiers, skipping the "Only" and
// "Implementation" sub-markers which do not name a version.
func pythonVersionClassifiers(classifiers []string) []string {
	var tokens []string
	for _, cls := range classifiers {
		if !strings.HasPrefix(cls, pythonClassifierPrefix) {
			continue
		}
		if strings.HasSuffix(cls, "Only") || strings.Contains(cls, ":: Implementation") {
			continue
		}
		tok := strings.TrimPrefix(classifierLeaf(cls), "Python ")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// classifierAdmitsVersion evaluates one classifier version token against the
// running version, under the same operator rules as requirement constraints.
// Tokens that fail to parse are skipped (treated as not admitting).
func classifierAdmitsVersion(token, pythonVersion string) bool {
	switch {
	case strings.HasPrefix(token, ">="):
		cmp, err := version.Compare(pythonVersion, strings.TrimSpace(token[2:]))
		return err == nil && cmp >= 0
	case strings.HasPrefix(token, "<="):
		cmp, err := version.Compare(pythonVersion, strings.TrimSpace(token[2:]))
		return err == nil && cmp <= 0
	default:
		return token == pythonVersion
	}
}
