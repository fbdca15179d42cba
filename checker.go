package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/registry"
	"github.com/preflightpy/preflight/requirements"
	"github.com/preflightpy/preflight/version"
)

// Checker evaluates declared requirements against a Python environment.
type Checker struct {
	cfg    *checkerConfig
	logger *slog.Logger

	interpOnce sync.Once
	interp     *pyenv.Interpreter
	interpErr  error

	resolveOnce sync.Once
	resolver    pyenv.ModuleResolver
	resolveErr  error
}

// NewChecker builds a Checker from the given options.
func NewChecker(opts ...Option) (*Checker, error) {
	cfg, err := newCheckerConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Checker{cfg: cfg, logger: cfg.log()}, nil
}

// interpreter returns the configured interpreter, locating one on PATH the
// first time when none was pinned.
func (c *Checker) interpreter() (*pyenv.Interpreter, error) {
	c.interpOnce.Do(func() {
		if c.cfg.interpreter != nil {
			c.interp = c.cfg.interpreter
			return
		}
		c.interp, c.interpErr = pyenv.FindInterpreter(pyenv.WithLogger(c.logger))
	})
	return c.interp, c.interpErr
}

// moduleResolver returns the configured resolver, building one from the
// interpreter's site-packages on first use when none was set.
func (c *Checker) moduleResolver(ctx context.Context) (pyenv.ModuleResolver, error) {
	c.resolveOnce.Do(func() {
		if c.cfg.resolver != nil {
			c.resolver = c.cfg.resolver
			return
		}
		interp, err := c.interpreter()
		if err != nil {
			c.resolveErr = fmt.Errorf("%w: %v", pyenv.ErrInventoryUnavailable, err)
			return
		}
		c.resolver, c.resolveErr = interp.ModuleResolver(ctx)
	})
	return c.resolver, c.resolveErr
}

// registryClient returns the configured index client, or a default one.
func (c *Checker) registryClient() *registry.Client {
	if c.cfg.registry != nil {
		return c.cfg.registry
	}
	return registry.NewClient(registry.WithLogger(c.logger))
}

// Check evaluates one requirement. It never returns an error: every
// resolution or parse failure degrades to a StatusFailed result with a
// populated ErrorMessage.
//
// A bracketed extras suffix in the name ("requests[security]") is stripped
// before resolution; the extras themselves are never validated.
func (c *Checker) Check(ctx context.Context, req Requirement) DependencyResult {
	result, _ := c.check(ctx, req)
	return result
}

// check evaluates one requirement. The returned error is non-nil only
// when the installed-package inventory itself could not be read; the
// result is still populated so single-item callers can degrade while
// batch callers fail closed.
func (c *Checker) check(ctx context.Context, req Requirement) (DependencyResult, error) {
	result := DependencyResult{
		Name:            req.Name,
		RequiredVersion: req.Constraint,
	}

	resolver, err := c.moduleResolver(ctx)
	if err != nil {
		result.Status = StatusFailed
		result.ErrorMessage = err.Error()
		return result, err
	}

	base, _, _ := strings.Cut(req.Name, "[")
	info, err := resolver.Resolve(base)
	if err != nil {
		result.Status = StatusFailed
		if errors.Is(err, pyenv.ErrInventoryUnavailable) {
			// The inventory scan itself failed, not this one lookup.
			result.ErrorMessage = err.Error()
			return result, err
		}
		if !errors.Is(err, pyenv.ErrModuleNotFound) {
			result.ErrorMessage = err.Error()
		}
		return result, nil
	}

	result.IsInstalled = true
	result.Version = info.Version

	switch {
	case req.Constraint == "":
		// Presence-only requirement.
		result.Status = StatusSuccess
	case info.Version == "":
		// Constrained requirement against an unknown version cannot be
		// verified and is not assumed to pass.
		result.Status = StatusFailed
		result.ErrorMessage = "installed version unknown"
	default:
		ok, err := version.Evaluate(req.Constraint, info.Version)
		if err != nil {
			c.logger.Warn("could not evaluate version constraint",
				"package", req.Name,
				"constraint", req.Constraint,
				"installed", info.Version,
				"error", err)
			result.Status = StatusFailed
			result.ErrorMessage = err.Error()
			return result, nil
		}
		if ok {
			result.Status = StatusSuccess
		} else {
			result.Status = StatusFailed
		}
	}
	return result, nil
}

// CheckAll evaluates every requirement in declared order and reports
// whether all of them passed.
//
// Results match the input in length and order; a failing requirement never
// short-circuits the scan. The only case with no per-item diagnostics is a
// failure to read the installed-package inventory itself, which fails the
// whole batch closed with a nil result list.
func (c *Checker) CheckAll(ctx context.Context, reqs requirements.List) (bool, []DependencyResult) {
	if _, err := c.moduleResolver(ctx); err != nil {
		c.logger.Error("cannot enumerate installed packages", "error", err)
		return false, nil
	}

	allOK := true
	results := make([]DependencyResult, 0, len(reqs))
	for _, req := range reqs {
		result, err := c.check(ctx, req)
		if err != nil {
			c.logger.Error("cannot enumerate installed packages", "error", err)
			return false, nil
		}
		results = append(results, result)
		if !result.Satisfied() {
			allOK = false
			c.logger.Warn("dependency issue",
				"package", req.Name,
				"required", req.Constraint,
				"found", result.Version)
		}
	}
	return allOK, results
}

// MissingPackages returns the requirements from reqs whose evaluation did
// not succeed, in declared order. Used to drive installation of just the
// unsatisfied part of a requirement set.
func (c *Checker) MissingPackages(ctx context.Context, reqs requirements.List) requirements.List {
	var missing requirements.List
	_, results := c.CheckAll(ctx, reqs)
	for i, result := range results {
		if !result.Satisfied() {
			missing = append(missing, reqs[i])
		}
	}
	return missing
}

// PythonCompatibility checks the package's declared classifiers against
// the target Python version, defaulting to the interpreter's "major.minor"
// when no version was configured.
func (c *Checker) PythonCompatibility(ctx context.Context, name string) (bool, string) {
	pythonVersion := c.cfg.pythonVersion
	if pythonVersion == "" {
		interp, err := c.interpreter()
		if err != nil {
			return false, "could not determine Python version: " + err.Error()
		}
		info, err := interp.Snapshot(ctx)
		if err != nil {
			return false, "could not determine Python version: " + err.Error()
		}
		pythonVersion = info.PythonMajorMinor()
	}
	return c.registryClient().CheckPythonCompatibility(ctx, name, pythonVersion)
}

// PlatformCompatibility checks the package's declared classifiers against
// the host platform.
func (c *Checker) PlatformCompatibility(ctx context.Context, name string) (bool, string) {
	return c.registryClient().CheckPlatformCompatibility(ctx, name, "")
}

// SizeImpact computes the cumulative download size of the package and its
// declared dependency closure.
func (c *Checker) SizeImpact(ctx context.Context, name string) registry.SizeImpact {
	return c.registryClient().ComputeSizeImpact(ctx, name)
}
