package pyenv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds each interpreter subprocess probe.
const DefaultProbeTimeout = 10 * time.Second

// Info is a point-in-time capture of a Python environment.
type Info struct {
	// PythonVersion is the interpreter version, e.g. "3.12.1".
	PythonVersion string `json:"python_version"`

	// Implementation is the interpreter implementation, e.g. "CPython".
	Implementation string `json:"implementation,omitempty"`

	// Platform is the host platform string as reported by the interpreter.
	Platform string `json:"platform"`

	// Executable is the resolved interpreter path.
	Executable string `json:"executable,omitempty"`

	// IsVenv reports whether the interpreter runs inside a virtual
	// environment (see IsIsolatedEnvironment for the detection rule).
	IsVenv bool `json:"is_venv"`

	// VenvPath is the active environment prefix when IsVenv is true.
	VenvPath string `json:"venv_path,omitempty"`

	// PipVersion is pip's self-reported version, empty when the probe fails.
	PipVersion string `json:"pip_version,omitempty"`
}

// PythonMajorMinor returns the "major.minor" part of PythonVersion,
// or the full version string if it has fewer than two components.
func (i *Info) PythonMajorMinor() string {
	parts := strings.SplitN(i.PythonVersion, ".", 3)
	if len(parts) < 2 {
		return i.PythonVersion
	}
	return parts[0] + "." + parts[1]
}

// IsIsolatedEnvironment is the virtual-environment detection rule: an
// interpreter is isolated iff it has a real prefix, or it has a base prefix
// that differs from the active prefix. Downstream venv creation and
// executable selection branch on this predicate, so the rule is kept exact.
func IsIsolatedEnvironment(realPrefix, basePrefix, prefix string) bool {
	return realPrefix != "" || (basePrefix != "" && basePrefix != prefix)
}

// Interpreter probes and drives a concrete Python executable.
type Interpreter struct {
	path         string
	probeTimeout time.Duration
	logger       *slog.Logger
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithProbeTimeout bounds each subprocess probe. Zero or negative values
// fall back to DefaultProbeTimeout.
func WithProbeTimeout(d time.Duration) InterpreterOption {
	return func(i *Interpreter) {
		if d > 0 {
			i.probeTimeout = d
		}
	}
}

// WithLogger sets a structured logger for probe diagnostics.
// If not set, logging is disabled.
func WithLogger(l *slog.Logger) InterpreterOption {
	return func(i *Interpreter) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInterpreter wraps the Python executable at path.
func NewInterpreter(path string, opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{
		path:         path,
		probeTimeout: DefaultProbeTimeout,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// FindInterpreter locates a Python executable on PATH, preferring "python3".
func FindInterpreter(opts ...InterpreterOption) (*Interpreter, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return NewInterpreter(path, opts...), nil
		}
	}
	return nil, ErrInterpreterNotFound
}

// Path returns the interpreter executable path.
func (i *Interpreter) Path() string { return i.path }

// probeScript asks the interpreter for everything Snapshot needs in a single
// subprocess round trip. real_prefix only exists under legacy virtualenv.
const probeScript = `import json, platform, sys
print(json.dumps({
    "version": platform.python_version(),
    "implementation": platform.python_implementation(),
    "platform": platform.platform(),
    "executable": sys.executable,
    "prefix": sys.prefix,
    "base_prefix": getattr(sys, "base_prefix", ""),
    "real_prefix": getattr(sys, "real_prefix", ""),
}))`

// interpreterProbe mirrors probeScript's JSON document.
type interpreterProbe struct {
	Version        string `json:"version"`
	Implementation string `json:"implementation"`
	Platform       string `json:"platform"`
	Executable     string `json:"executable"`
	Prefix         string `json:"prefix"`
	BasePrefix     string `json:"base_prefix"`
	RealPrefix     string `json:"real_prefix"`
}

// Snapshot captures the current environment state. The pip version probe is
// best-effort: its failure leaves PipVersion empty and is logged at warning
// level, never returned as an error.
func (i *Interpreter) Snapshot(ctx context.Context) (*Info, error) {
	out, err := i.run(ctx, "-c", probeScript)
	if err != nil {
		return nil, fmt.Errorf("probe interpreter %s: %w", i.path, err)
	}

	var probe interpreterProbe
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("parse interpreter probe output: %w", err)
	}

	info := &Info{
		PythonVersion:  probe.Version,
		Implementation: probe.Implementation,
		Platform:       probe.Platform,
		Executable:     probe.Executable,
		IsVenv:         IsIsolatedEnvironment(probe.RealPrefix, probe.BasePrefix, probe.Prefix),
		PipVersion:     i.pipVersion(ctx),
	}
	if info.IsVenv {
		info.VenvPath = probe.Prefix
	}
	return info, nil
}

// pipVersion parses the second field of "pip X.Y.Z from ..." output.
func (i *Interpreter) pipVersion(ctx context.Context) string {
	out, err := i.run(ctx, "-m", "pip", "--version")
	if err != nil {
		i.logger.Warn("pip version probe failed", "python", i.path, "error", err)
		return ""
	}
	fields := strings.Fields(string(out))
	if len(fields) < 2 || fields[0] != "pip" {
		i.logger.Warn("unexpected pip version output", "output", strings.TrimSpace(string(out)))
		return ""
	}
	return fields[1]
}

// run executes the interpreter with the probe timeout applied on top of the
// caller's context and returns captured stdout.
func (i *Interpreter) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, i.probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, i.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
