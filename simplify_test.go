package calcium_test

import (
	"testing"

	"github.com/calciumlabs/calcium"
)

func simp(t *testing.T, src string) string {
	t.Helper()
	s, err := calcium.Simplify(calcium.MustParse(src))
	if err != nil {
		t.Fatalf("Simplify(%q) failed: %v", src, err)
	}
	return s.String()
}

// ============================================================
// Identity and annihilator laws
// ============================================================

func TestSimplify_Identities(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x + 0", "x"},
		{"0 + x", "x"},
		{"x - 0", "x"},
		{"x*1", "x"},
		{"1*x", "x"},
		{"x*0", "0"},
		{"0*x", "0"},
		{"x/1", "x"},
		{"x^1", "x"},
		{"x^0", "1"},
		{"1^x", "1"},
		{"0/x", "0"},
		{"x/x", "1"},
		{"--x", "x"},
		{"x*-1", "-x"},
	}
	for _, tc := range cases {
		if got := simp(t, tc.input); got != tc.want {
			t.Errorf("Simplify(%q): want %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestSimplify_ConstantFolding(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2 + 3", "5"},
		{"2^3 + 1", "9"},
		{"6/3", "2"},
		{"2*3*x", "6*x"},
		{"sin(0)", "0"},
		{"cos(0)", "1"},
		{"sqrt(9)", "3"},
	}
	for _, tc := range cases {
		if got := simp(t, tc.input); got != tc.want {
			t.Errorf("Simplify(%q): want %s, got %s", tc.input, tc.want, got)
		}
	}
}

// ============================================================
// Like terms
// ============================================================

func TestSimplify_CombinesLikeTerms(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x + x", "2*x"},
		{"3*x + 2*x", "5*x"},
		{"x - x", "0"},
		{"2*x + 3 - x + 1", "x + 4"},
		{"sin(x) + sin(x)", "2*sin(x)"},
	}
	for _, tc := range cases {
		if got := simp(t, tc.input); got != tc.want {
			t.Errorf("Simplify(%q): want %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestSimplify_CombinesPowers(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x*x", "x^2"},
		{"x^2*x^3", "x^5"},
		{"(x^2)^3", "x^6"},
	}
	for _, tc := range cases {
		if got := simp(t, tc.input); got != tc.want {
			t.Errorf("Simplify(%q): want %s, got %s", tc.input, tc.want, got)
		}
	}
}

// ============================================================
// Logs and exponentials
// ============================================================

func TestSimplify_LnOfE(t *testing.T) {
	if got := simp(t, "ln(e)"); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
}

func TestSimplify_ExpOfLn(t *testing.T) {
	if got := simp(t, "exp(ln(x))"); got != "x" {
		t.Errorf("want x, got %s", got)
	}
}

func TestSimplify_EToZero(t *testing.T) {
	if got := simp(t, "e^0"); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
}

// ============================================================
// Errors and symbolic leftovers
// ============================================================

func TestSimplify_ZeroToZeroIsError(t *testing.T) {
	_, err := calcium.Simplify(calcium.MustParse("0^0"))
	if err == nil {
		t.Fatal("0^0 should fail to simplify")
	}
	if _, ok := err.(*calcium.UndefinedExprError); !ok {
		t.Errorf("want UndefinedExprError, got %T", err)
	}
}

func TestSimplify_DivisionByZeroStaysSymbolic(t *testing.T) {
	if got := simp(t, "1/0"); got != "1/0" {
		t.Errorf("1/0 should be left untouched, got %s", got)
	}
}

func TestSimplify_DomainViolationStaysSymbolic(t *testing.T) {
	if got := simp(t, "ln(0)"); got != "ln(0)" {
		t.Errorf("ln(0) should be left untouched, got %s", got)
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	inputs := []string{
		"x + x + y*1 - 0",
		"3*x^2*ln(x)/x",
		"sin(x)^2 + cos(x)^2",
		"(x + 1)*(x - 1)",
	}
	for _, src := range inputs {
		once, err := calcium.Simplify(calcium.MustParse(src))
		if err != nil {
			t.Fatalf("Simplify(%q) failed: %v", src, err)
		}
		twice, err := calcium.Simplify(once)
		if err != nil {
			t.Fatalf("second Simplify of %q failed: %v", src, err)
		}
		if !calcium.Equal(once, twice) {
			t.Errorf("Simplify(%q) is not idempotent: %s vs %s", src, once, twice)
		}
	}
}
