// Package version implements parsing and evaluation of the version
// constraints that appear in requirements declarations.
//
// Constraint format: an optional operator prefix (">=", "==", "<=") followed
// by a version string. A constraint with no recognized operator is an exact
// string match against the installed version. Version ordering is delegated
// to hashicorp/go-version, which compares dotted-numeric components
// numerically ("2.10.0" sorts after "2.9.0").
package version

import (
	"errors"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Operator identifies how an installed version is compared against a
// constraint target.
type Operator string

// Supported constraint operators.
const (
	// OpExact matches the raw installed version string byte for byte.
	// It is the fallback when no operator prefix is recognized.
	OpExact Operator = ""

	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "=="
	OpLessEqual    Operator = "<="
)

// ErrUnsupportedOperator is returned when a constraint uses a comparison
// operator that is recognized but not supported ("<", ">", "!=", "~=", "^").
// Such constraints evaluate as unsatisfied rather than silently degrading to
// an exact string match against the raw constraint text.
var ErrUnsupportedOperator = errors.New("unsupported constraint operator")

// unsupportedPrefixes lists operator prefixes that are rejected outright.
// Order matters: two-character prefixes must be tried before "<" and ">".
var unsupportedPrefixes = []string{"!=", "~=", "<", ">", "^"}

// Constraint is an immutable parsed version constraint.
type Constraint struct {
	op     Operator
	target string
}

// ParseConstraint parses a constraint string. It never fails: malformed
// targets surface later, when the constraint is evaluated.
func ParseConstraint(s string) Constraint {
	s = strings.TrimSpace(s)
	for _, op := range []Operator{OpGreaterEqual, OpEqual, OpLessEqual} {
		if rest, ok := strings.CutPrefix(s, string(op)); ok {
			return Constraint{op: op, target: strings.TrimSpace(rest)}
		}
	}
	return Constraint{op: OpExact, target: s}
}

// Operator returns the parsed comparison operator.
func (c Constraint) Operator() Operator { return c.op }

// Target returns the version the constraint compares against.
func (c Constraint) Target() string { return c.target }

// String reassembles the constraint in its declared form.
func (c Constraint) String() string { return string(c.op) + c.target }

// Evaluate reports whether the installed version satisfies the constraint.
//
// An empty constraint is trivially satisfied (presence-only check). A version
// that fails to parse on either side yields (false, err); callers degrade
// that to "unsatisfied" and log it, per the evaluation contract.
func (c Constraint) Evaluate(installed string) (bool, error) {
	if c.target == "" && c.op == OpExact {
		return true, nil
	}

	if c.op == OpExact {
		if hasUnsupportedOperator(c.target) {
			return false, fmt.Errorf("%w: %q", ErrUnsupportedOperator, c.target)
		}
		return c.target == installed, nil
	}

	cmp, err := Compare(installed, c.target)
	if err != nil {
		return false, err
	}

	switch c.op {
	case OpGreaterEqual:
		return cmp >= 0, nil
	case OpEqual:
		return cmp == 0, nil
	case OpLessEqual:
		return cmp <= 0, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedOperator, string(c.op))
	}
}

// Evaluate parses constraint and evaluates it against installed in one step.
func Evaluate(constraint, installed string) (bool, error) {
	return ParseConstraint(constraint).Evaluate(installed)
}

// Compare orders two version strings. It returns -1, 0, or 1 when a is
// respectively lower than, equal to, or higher than b, and an error when
// either side does not parse as a version.
func Compare(a, b string) (int, error) {
	va, err := goversion.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("parse version %q: %w", a, err)
	}
	vb, err := goversion.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("parse version %q: %w", b, err)
	}
	return va.Compare(vb), nil
}

// hasUnsupportedOperator reports whether s begins with a comparison operator
// outside the supported set.
func hasUnsupportedOperator(s string) bool {
	for _, p := range unsupportedPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
