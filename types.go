package preflight

import "github.com/preflightpy/preflight/requirements"

// Status is the outcome of one requirement evaluation or installation step.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
	StatusInProgress Status = "in_progress"
)

// Requirement is re-exported from the requirements package for callers
// that only interact with the top-level API.
type Requirement = requirements.Requirement

// DependencyResult is the typed outcome of evaluating one requirement
// against the environment. It is created per evaluation and never mutated
// afterwards.
type DependencyResult struct {
	// Name is the requirement name as declared, extras suffix included.
	Name string `json:"name"`

	// Version is the detected installed version, empty when the package is
	// absent or declares no version.
	Version string `json:"version,omitempty"`

	// IsInstalled reports whether the package resolved at all.
	IsInstalled bool `json:"is_installed"`

	// RequiredVersion is the declared constraint, empty for presence-only
	// requirements.
	RequiredVersion string `json:"required_version,omitempty"`

	// Status is StatusSuccess when the requirement is satisfied.
	Status Status `json:"status"`

	// ErrorMessage explains a failure in human-readable form.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Satisfied reports whether the evaluation succeeded.
func (r DependencyResult) Satisfied() bool { return r.Status == StatusSuccess }
