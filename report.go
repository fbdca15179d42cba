package preflight

import (
	"context"
	"fmt"

	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/requirements"
)

// DependencyReport is the dependency section of a Report.
type DependencyReport struct {
	// Status is "ok" when every requirement passed, "failed" otherwise.
	Status string `json:"status"`

	// Results lists per-requirement outcomes in declaration order.
	Results []DependencyResult `json:"results"`
}

// Report is the full diagnostic document consumed by report renderers.
type Report struct {
	Environment  *pyenv.Info       `json:"environment"`
	Dependencies DependencyReport  `json:"dependencies"`
	Requirements map[string]string `json:"requirements"`
}

// Report captures the environment, evaluates every requirement and
// assembles the diagnostic document.
func (c *Checker) Report(ctx context.Context, reqs requirements.List) (*Report, error) {
	interp, err := c.interpreter()
	if err != nil {
		return nil, err
	}
	env, err := interp.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture environment: %w", err)
	}

	ok, results := c.CheckAll(ctx, reqs)
	status := "ok"
	if !ok {
		status = "failed"
	}

	return &Report{
		Environment: env,
		Dependencies: DependencyReport{
			Status:  status,
			Results: results,
		},
		Requirements: reqs.Map(),
	}, nil
}
