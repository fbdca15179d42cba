// Package installer invokes the Python package manager to reconcile an
// environment with its declared requirements.
package installer

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/preflightpy/preflight"
	"github.com/preflightpy/preflight/config"
	"github.com/preflightpy/preflight/requirements"
)

// Pip runs "python -m pip" commands against a chosen interpreter.
type Pip struct {
	python  string
	deps    config.Dependencies
	timeout time.Duration
	retries int
	logger  *slog.Logger
	runner  func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Option configures a Pip installer.
type Option func(*Pip)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pip) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRunner replaces the command executor. Used by tests.
func WithRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) Option {
	return func(p *Pip) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// New builds a Pip installer for the interpreter at pythonPath, tuned by
// the dependencies and installer settings blocks.
func New(pythonPath string, deps config.Dependencies, inst config.Installer, opts ...Option) *Pip {
	p := &Pip{
		python:  pythonPath,
		deps:    deps,
		timeout: inst.Timeout(),
		retries: inst.Retries,
		logger:  slog.New(slog.DiscardHandler),
		runner:  runCommand,
	}
	if p.timeout <= 0 {
		p.timeout = 60 * time.Second
	}
	if p.retries < 1 {
		p.retries = 1
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// indexFlags appends the --pre / --trusted-host / --extra-index-url flags
// derived from the dependencies settings.
func (p *Pip) indexFlags(args []string) []string {
	if p.deps.AllowPrerelease {
		args = append(args, "--pre")
	}
	for _, host := range p.deps.TrustedHosts {
		args = append(args, "--trusted-host", host)
	}
	for _, url := range p.deps.ExtraIndexURLs {
		args = append(args, "--extra-index-url", url)
	}
	return args
}

// pip runs one pip invocation with the configured timeout, retrying on
// failure up to the configured attempt count.
func (p *Pip) pip(ctx context.Context, args ...string) error {
	full := append([]string{"-m", "pip"}, args...)

	var lastErr error
	for attempt := 1; attempt <= p.retries; attempt++ {
		runCtx, cancel := context.WithTimeout(ctx, p.timeout)
		out, err := p.runner(runCtx, p.python, full...)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = fmt.Errorf("pip %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
		p.logger.Warn("pip invocation failed",
			"attempt", attempt,
			"of", p.retries,
			"error", err)
		if ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

// InstallRequirements installs everything declared in the requirements
// file at path.
func (p *Pip) InstallRequirements(ctx context.Context, path string) error {
	p.logger.Info("installing requirements", "file", path)
	args := p.indexFlags([]string{"install", "-r", path})
	return p.pip(ctx, args...)
}

// InstallPackage installs a single package. The specifier may carry a
// version constraint ("requests>=2.25.0").
func (p *Pip) InstallPackage(ctx context.Context, spec string) error {
	p.logger.Info("installing package", "package", spec)
	args := p.indexFlags([]string{"install", spec})
	return p.pip(ctx, args...)
}

// InstallPackages installs each requirement in declared order and records
// a result per requirement. Installation stops at the first failure; the
// remaining requirements are marked skipped instead of being attempted
// against a half-installed environment.
func (p *Pip) InstallPackages(ctx context.Context, reqs requirements.List) []preflight.DependencyResult {
	results := make([]preflight.DependencyResult, 0, len(reqs))
	failed := false
	for _, req := range reqs {
		result := preflight.DependencyResult{
			Name:            req.Name,
			RequiredVersion: req.Constraint,
		}
		if failed {
			result.Status = preflight.StatusSkipped
		} else if err := p.InstallPackage(ctx, req.String()); err != nil {
			result.Status = preflight.StatusFailed
			result.ErrorMessage = err.Error()
			failed = true
		} else {
			result.Status = preflight.StatusSuccess
			result.IsInstalled = true
		}
		results = append(results, result)
	}
	return results
}

// UpgradePip upgrades pip itself before dependency installation.
func (p *Pip) UpgradePip(ctx context.Context) error {
	p.logger.Info("upgrading pip")
	return p.pip(ctx, "install", "--upgrade", "pip")
}
