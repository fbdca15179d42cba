package preflight

import (
	"context"
	"fmt"

	"github.com/preflightpy/preflight/requirements"
)

// Check evaluates the given requirements against the local Python
// environment.
//
// This is the recommended entry point for one-shot checks. The returned
// error covers configuration problems only; evaluation itself never
// errors, it reports per-item failures in the result list.
func Check(ctx context.Context, reqs requirements.List, opts ...Option) (bool, []DependencyResult, error) {
	checker, err := NewChecker(opts...)
	if err != nil {
		return false, nil, err
	}
	ok, results := checker.CheckAll(ctx, reqs)
	return ok, results, nil
}

// CheckFile evaluates the requirements declared in the file at path.
func CheckFile(ctx context.Context, path string, opts ...Option) (bool, []DependencyResult, error) {
	reqs, err := requirements.ParseFile(path)
	if err != nil {
		return false, nil, fmt.Errorf("parse requirements: %w", err)
	}
	return Check(ctx, reqs, opts...)
}

// ReportFile builds a full diagnostic report for the requirements declared
// in the file at path.
func ReportFile(ctx context.Context, path string, opts ...Option) (*Report, error) {
	reqs, err := requirements.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse requirements: %w", err)
	}
	checker, err := NewChecker(opts...)
	if err != nil {
		return nil, err
	}
	return checker.Report(ctx, reqs)
}
