package preflight

import (
	"errors"
	"log/slog"

	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/registry"
)

// Option configures checker behavior.
type Option func(*checkerConfig) error

// checkerConfig holds all checker configuration.
type checkerConfig struct {
	resolver      pyenv.ModuleResolver
	interpreter   *pyenv.Interpreter
	registry      *registry.Client
	pythonVersion string

	// logger is the structured logger for diagnostics. If nil, logging is
	// disabled (silent mode). slog keeps the backend pluggable: any
	// handler-based logger can sit behind it.
	logger *slog.Logger
}

// WithResolver sets the installed-package resolver. When unset, the
// checker builds one from the interpreter's site-packages directories on
// first use.
func WithResolver(r pyenv.ModuleResolver) Option {
	return func(c *checkerConfig) error {
		if r == nil {
			return errors.New("resolver must not be nil")
		}
		c.resolver = r
		return nil
	}
}

// WithSitePackages resolves installed packages by scanning the given
// directories instead of probing an interpreter.
func WithSitePackages(dirs ...string) Option {
	return func(c *checkerConfig) error {
		if len(dirs) == 0 {
			return errors.New("at least one site-packages directory required")
		}
		c.resolver = pyenv.NewDistInfoResolver(dirs...)
		return nil
	}
}

// WithInterpreter pins the Python interpreter used for environment
// snapshots and default module resolution. When unset, the interpreter is
// located on PATH.
func WithInterpreter(i *pyenv.Interpreter) Option {
	return func(c *checkerConfig) error {
		if i == nil {
			return errors.New("interpreter must not be nil")
		}
		c.interpreter = i
		return nil
	}
}

// WithRegistryClient sets the package-index client used for compatibility
// and size diagnostics.
func WithRegistryClient(client *registry.Client) Option {
	return func(c *checkerConfig) error {
		if client == nil {
			return errors.New("registry client must not be nil")
		}
		c.registry = client
		return nil
	}
}

// WithPythonVersion fixes the "major.minor" Python version used for
// compatibility checks instead of probing the interpreter.
func WithPythonVersion(v string) Option {
	return func(c *checkerConfig) error {
		c.pythonVersion = v
		return nil
	}
}

// WithLogger sets a structured logger for checker diagnostics.
// If not set, logging is disabled (silent mode).
func WithLogger(l *slog.Logger) Option {
	return func(c *checkerConfig) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set.
// Libraries stay silent unless the caller opts in via WithLogger.
func (c *checkerConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}

// newCheckerConfig applies the given options over zero values.
func newCheckerConfig(opts ...Option) (*checkerConfig, error) {
	c := &checkerConfig{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
