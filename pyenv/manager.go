package pyenv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// VenvPython returns the interpreter executable path inside a virtual
// environment directory, following the platform layout convention
// (Scripts\python.exe on Windows, bin/python elsewhere).
func VenvPython(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}

// SitePackagesDir returns the site-packages directory of an environment
// prefix. pythonVersion is the interpreter's "major.minor" (unused on
// Windows, where the layout does not embed the version).
func SitePackagesDir(prefix, pythonVersion string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(prefix, "Lib", "site-packages")
	}
	return filepath.Join(prefix, "lib", "python"+pythonVersion, "site-packages")
}

// EnsureVenv creates a virtual environment at dir using this interpreter,
// unless one already exists there. It returns the interpreter for the
// environment (the existing one when dir was already populated).
func (i *Interpreter) EnsureVenv(ctx context.Context, dir string) (*Interpreter, error) {
	venvPython := VenvPython(dir)
	if _, err := os.Stat(venvPython); err == nil {
		i.logger.Info("virtual environment already exists", "path", dir)
		return NewInterpreter(venvPython, WithProbeTimeout(i.probeTimeout), WithLogger(i.logger)), nil
	}

	i.logger.Info("creating virtual environment", "path", dir)
	cmd := exec.CommandContext(ctx, i.path, "-m", "venv", dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("create virtual environment at %s: %w: %s", dir, err, out)
	}
	return NewInterpreter(venvPython, WithProbeTimeout(i.probeTimeout), WithLogger(i.logger)), nil
}

// SelectInterpreter picks the interpreter to operate with: the venv
// interpreter at venvDir when useVenv is set and the environment exists,
// otherwise pythonPath, otherwise the first interpreter found on PATH.
func SelectInterpreter(useVenv bool, venvDir, pythonPath string, opts ...InterpreterOption) (*Interpreter, error) {
	if useVenv && venvDir != "" {
		venvPython := VenvPython(venvDir)
		if _, err := os.Stat(venvPython); err == nil {
			return NewInterpreter(venvPython, opts...), nil
		}
	}
	if pythonPath != "" {
		return NewInterpreter(pythonPath, opts...), nil
	}
	return FindInterpreter(opts...)
}

// Launch runs a Python application through this interpreter with the
// caller's standard streams attached. It blocks until the application exits
// and returns the process error, if any.
func (i *Interpreter) Launch(ctx context.Context, appPath string, args ...string) error {
	i.logger.Info("launching application", "app", appPath, "python", i.path)

	cmd := exec.CommandContext(ctx, i.path, append([]string{appPath}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("application %s: %w", appPath, err)
	}
	return nil
}
