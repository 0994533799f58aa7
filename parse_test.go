package calcium_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/calciumlabs/calcium"
)

// ============================================================
// Precedence and associativity
// ============================================================

func TestParse_MulBeforeAdd(t *testing.T) {
	e := calcium.MustParse("2 + 3*4")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 14 {
		t.Errorf("want 14, got %v", v)
	}
}

func TestParse_PowRightAssociative(t *testing.T) {
	e := calcium.MustParse("2^3^2")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 512 {
		t.Errorf("2^3^2 should be 2^(3^2) = 512, got %v", v)
	}
}

func TestParse_UnaryBindsTighterThanPow(t *testing.T) {
	e := calcium.MustParse("-2^2")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 4 {
		t.Errorf("-2^2 should be (-2)^2 = 4, got %v", v)
	}
}

func TestParse_NegativeExponent(t *testing.T) {
	e := calcium.MustParse("2^-1")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0.5 {
		t.Errorf("want 0.5, got %v", v)
	}
}

func TestParse_SubLeftAssociative(t *testing.T) {
	e := calcium.MustParse("10 - 3 - 2")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 5 {
		t.Errorf("want 5, got %v", v)
	}
}

func TestParse_Parens(t *testing.T) {
	e := calcium.MustParse("(2 + 3)*4")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 20 {
		t.Errorf("want 20, got %v", v)
	}
}

// ============================================================
// Atoms
// ============================================================

func TestParse_DecimalNumber(t *testing.T) {
	e := calcium.MustParse("3.25")
	if e.String() != "3.25" {
		t.Errorf("want 3.25, got %s", e)
	}
}

func TestParse_LeadingDotNumber(t *testing.T) {
	e := calcium.MustParse(".5 + 1")
	v, err := calcium.Evaluate(e, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.5 {
		t.Errorf("want 1.5, got %v", v)
	}
}

func TestParse_Constants(t *testing.T) {
	e := calcium.MustParse("pi")
	if _, ok := e.(*calcium.ConstantRef); !ok {
		t.Errorf("pi should parse as a constant, got %T", e)
	}
}

func TestParse_ExpCallBecomesExponential(t *testing.T) {
	e := calcium.MustParse("exp(x)")
	if _, ok := e.(*calcium.Exponential); !ok {
		t.Errorf("exp(x) should parse as an exponential node, got %T", e)
	}
}

func TestParse_EPowerBecomesExponential(t *testing.T) {
	e := calcium.MustParse("e^x")
	if _, ok := e.(*calcium.Exponential); !ok {
		t.Errorf("e^x should parse as an exponential node, got %T", e)
	}
}

func TestParse_FunctionCall(t *testing.T) {
	e := calcium.MustParse("sin(x)")
	c, ok := e.(*calcium.Call)
	if !ok {
		t.Fatalf("want call node, got %T", e)
	}
	if c.Name != "sin" || len(c.Args) != 1 {
		t.Errorf("want sin with one argument, got %s", c)
	}
}

func TestParse_VariableNames(t *testing.T) {
	e := calcium.MustParse("alpha_2 + _y")
	vars := calcium.FreeVariables(e)
	if _, ok := vars["alpha_2"]; !ok {
		t.Errorf("missing variable alpha_2 in %v", vars)
	}
	if _, ok := vars["_y"]; !ok {
		t.Errorf("missing variable _y in %v", vars)
	}
}

// ============================================================
// Errors
// ============================================================

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "unexpected end of input"},
		{"2 +", "unexpected end of input"},
		{"log(", "unexpected end of input"},
		{"sin(x", "closing parenthesis"},
		{"(1 + 2", "closing parenthesis"},
		{"atan(x, y)", "exactly one argument"},
		{"frob(x)", "unknown function"},
		{"1 2", "unexpected"},
		{"2 @ 3", "unexpected character"},
		{"1 + .", "malformed number"},
	}
	for _, tc := range cases {
		_, err := calcium.Parse(tc.input)
		if err == nil {
			t.Errorf("Parse(%q) should fail", tc.input)
			continue
		}
		var perr *calcium.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) should return a ParseError, got %T", tc.input, err)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("Parse(%q) error %q should mention %q", tc.input, err, tc.want)
		}
	}
}

func TestParse_RoundTripThroughString(t *testing.T) {
	inputs := []string{
		"2 + 3*x",
		"(x + 1)/(x - 1)",
		"sin(x)^2 + cos(x)^2",
		"-2^2",
		"x^2*ln(x)",
	}
	for _, src := range inputs {
		e := calcium.MustParse(src)
		again, err := calcium.Parse(e.String())
		if err != nil {
			t.Errorf("reparse of %q (%q) failed: %v", src, e.String(), err)
			continue
		}
		if !calcium.Equal(e, again) {
			t.Errorf("round trip of %q changed tree: %s vs %s", src, e, again)
		}
	}
}
