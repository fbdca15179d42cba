package version

import (
	"errors"
	"testing"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		input  string
		op     Operator
		target string
	}{
		{">=2.0.0", OpGreaterEqual, "2.0.0"},
		{"==1.4", OpEqual, "1.4"},
		{"<=3.12", OpLessEqual, "3.12"},
		{">= 2.0.0", OpGreaterEqual, "2.0.0"},
		{"1.0.0", OpExact, "1.0.0"},
		{"", OpExact, ""},
		{"~=1.4", OpExact, "~=1.4"},
	}

	for _, tt := range tests {
		c := ParseConstraint(tt.input)
		if c.Operator() != tt.op || c.Target() != tt.target {
			t.Errorf("ParseConstraint(%q) = (%q, %q), want (%q, %q)",
				tt.input, c.Operator(), c.Target(), tt.op, tt.target)
		}
	}
}

func TestCompare_NumericOrdering(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		// The load-bearing case: component-wise numeric, not lexical.
		{"2.10.0", "2.9.0", 1},
		{"2.9.0", "2.10.0", -1},
		{"1.0.0", "1.0.0", 0},
		{"1.0", "1.0.0", 0},
		{"0.9", "1.0", -1},
		{"10.0.1", "9.99.99", 1},
	}

	for _, tt := range tests {
		got, err := Compare(tt.a, tt.b)
		if err != nil {
			t.Errorf("Compare(%q, %q) unexpected error: %v", tt.a, tt.b, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare_ParseFailure(t *testing.T) {
	if _, err := Compare("not-a-version!", "1.0.0"); err == nil {
		t.Error("Compare with malformed left side should fail")
	}
	if _, err := Compare("1.0.0", ""); err == nil {
		t.Error("Compare with empty right side should fail")
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		constraint string
		installed  string
		want       bool
	}{
		{"", "1.2.3", true},     // no constraint: presence-only
		{"", "", true},          // no constraint, no version
		{">=2.0.0", "2.31.0", true},
		{">=2.0.0", "2.0.0", true},
		{">=2.0.0", "1.9.9", false},
		{">=2.9", "2.10", true}, // numeric ordering again
		{"==1.0.0", "1.0.0", true},
		{"==1.0.0", "1.0.1", false},
		{"==1.0", "1.0.0", true}, // parsed equality, not string equality
		{"<=3.11", "3.10", true},
		{"<=3.11", "3.12", false},
		{"1.0.0", "1.0.0", true},  // exact string match fallback
		{"1.0.0", "1.0", false},   // exact fallback is a string comparison
	}

	for _, tt := range tests {
		got, err := Evaluate(tt.constraint, tt.installed)
		if err != nil {
			t.Errorf("Evaluate(%q, %q) unexpected error: %v", tt.constraint, tt.installed, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q, %q) = %v, want %v", tt.constraint, tt.installed, got, tt.want)
		}
	}
}

func TestEvaluate_DegradesOnParseFailure(t *testing.T) {
	ok, err := Evaluate(">=2.0.0", "definitely not a version")
	if err == nil {
		t.Fatal("expected parse error for malformed installed version")
	}
	if ok {
		t.Error("malformed installed version must evaluate as unsatisfied")
	}

	ok, err = Evaluate(">=!!!", "1.0.0")
	if err == nil {
		t.Fatal("expected parse error for malformed constraint target")
	}
	if ok {
		t.Error("malformed constraint target must evaluate as unsatisfied")
	}
}

func TestEvaluate_UnsupportedOperator(t *testing.T) {
	for _, constraint := range []string{"~=1.4", "!=1.0", "<2.0", ">1.0", "^1.2"} {
		ok, err := Evaluate(constraint, "1.4.0")
		if !errors.Is(err, ErrUnsupportedOperator) {
			t.Errorf("Evaluate(%q) error = %v, want ErrUnsupportedOperator", constraint, err)
		}
		if ok {
			t.Errorf("Evaluate(%q) = true, want false", constraint)
		}
	}
}
