// Package preflight verifies that a Python environment satisfies a set of
// declared package requirements before an application is launched.
//
// # Overview
//
// The package provides three main components:
//
//   - Checker: evaluates requirements against the installed-package
//     inventory of a Python interpreter
//   - registry.Client: fetches package metadata from a PyPI-compatible
//     index for compatibility, size and health diagnostics
//   - pyenv.Interpreter: probes and manages concrete Python environments,
//     virtual environments included
//
// # Quick Start
//
// The simplest way to check a requirements file against the interpreter
// found on PATH:
//
//	ok, results, err := preflight.CheckFile(ctx, "requirements.txt")
//
// Or against explicit requirements:
//
//	reqs := requirements.List{{Name: "requests", Constraint: ">=2.25.0"}}
//	ok, results, err := preflight.Check(ctx, reqs)
//
// For full control, build a Checker:
//
//	checker, err := preflight.NewChecker(
//	    preflight.WithInterpreter(interp),
//	    preflight.WithLogger(slog.Default()),
//	)
//	ok, results := checker.CheckAll(ctx, reqs)
//
// # Thread Safety
//
// A Checker is safe for concurrent use once constructed. The registry
// client memoizes metadata lookups behind a concurrent map.
package preflight
