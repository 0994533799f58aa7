package calcium_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calciumlabs/calcium"
)

func deriv(t *testing.T, src, wrt string) string {
	t.Helper()
	d, err := calcium.Differentiate(calcium.MustParse(src), wrt)
	if err != nil {
		t.Fatalf("Differentiate(%q, %q) failed: %v", src, wrt, err)
	}
	return d.String()
}

func TestDifferentiate_Basics(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"5", "0"},
		{"pi", "0"},
		{"x", "1"},
		{"y", "0"},
		{"x + x", "2"},
		{"x^3", "3*x^2"},
		{"x*x", "2*x"},
		{"sin(x)", "cos(x)"},
		{"cos(x)", "-sin(x)"},
		{"ln(x)", "1/x"},
		{"e^x", "e^x"},
	}
	for _, tc := range cases {
		if got := deriv(t, tc.input, "x"); got != tc.want {
			t.Errorf("d/dx(%s): want %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestDifferentiate_ChainRule(t *testing.T) {
	// d/dx sin(x^2) = cos(x^2) * 2x; check numerically to stay
	// independent of term ordering.
	d, err := calcium.Differentiate(calcium.MustParse("sin(x^2)"), "x")
	require.NoError(t, err)
	at := 1.3
	got, err := calcium.Evaluate(d, map[string]float64{"x": at})
	require.NoError(t, err)
	want := math.Cos(at*at) * 2 * at
	assert.InDelta(t, want, got, 1e-9)
}

func TestDifferentiate_ProductRule(t *testing.T) {
	d, err := calcium.Differentiate(calcium.MustParse("x^2*sin(x)"), "x")
	require.NoError(t, err)
	at := 0.7
	got, err := calcium.Evaluate(d, map[string]float64{"x": at})
	require.NoError(t, err)
	want := 2*at*math.Sin(at) + at*at*math.Cos(at)
	assert.InDelta(t, want, got, 1e-9)
}

func TestDifferentiate_QuotientRule(t *testing.T) {
	d, err := calcium.Differentiate(calcium.MustParse("sin(x)/x"), "x")
	require.NoError(t, err)
	at := 2.1
	got, err := calcium.Evaluate(d, map[string]float64{"x": at})
	require.NoError(t, err)
	want := (math.Cos(at)*at - math.Sin(at)) / (at * at)
	assert.InDelta(t, want, got, 1e-9)
}

func TestDifferentiate_ConstantBasePower(t *testing.T) {
	// d/dx 2^x = 2^x * ln(2)
	d, err := calcium.Differentiate(calcium.MustParse("2^x"), "x")
	require.NoError(t, err)
	at := 1.5
	got, err := calcium.Evaluate(d, map[string]float64{"x": at})
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(2, at)*math.Log(2), got, 1e-9)
}

func TestDifferentiate_InverseTrig(t *testing.T) {
	d, err := calcium.Differentiate(calcium.MustParse("atan(x)"), "x")
	require.NoError(t, err)
	got, err := calcium.Evaluate(d, map[string]float64{"x": 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/5.0, got, 1e-12)
}

func TestDifferentiate_Log10(t *testing.T) {
	d, err := calcium.Differentiate(calcium.MustParse("log(x)"), "x")
	require.NoError(t, err)
	at := 3.0
	got, err := calcium.Evaluate(d, map[string]float64{"x": at})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/(at*math.Log(10)), got, 1e-12)
}

func TestDifferentiate_Hyperbolic(t *testing.T) {
	d, err := calcium.Differentiate(calcium.MustParse("tanh(x)"), "x")
	require.NoError(t, err)
	at := 0.4
	got, err := calcium.Evaluate(d, map[string]float64{"x": at})
	require.NoError(t, err)
	c := math.Cosh(at)
	assert.InDelta(t, 1.0/(c*c), got, 1e-12)
}

func TestDifferentiate_OtherVariableIsConstant(t *testing.T) {
	if got := deriv(t, "y^2 + 3", "x"); got != "0" {
		t.Errorf("d/dx(y^2 + 3) should be 0, got %s", got)
	}
}

func TestDifferentiate_CallArity(t *testing.T) {
	// A hand-built call can bypass the Fn constructor; the rule table
	// must reject it instead of panicking.
	bad := &calcium.Call{Name: "sin"}
	_, err := calcium.Differentiate(bad, "x")
	var diffErr *calcium.DiffError
	require.ErrorAs(t, err, &diffErr)
	assert.Contains(t, err.Error(), "arguments")
}

func TestDifferentiate_Unsupported(t *testing.T) {
	cases := []string{"x^x", "abs(x)", "asec(x)"}
	for _, src := range cases {
		_, err := calcium.Differentiate(calcium.MustParse(src), "x")
		var diffErr *calcium.DiffError
		if !errors.As(err, &diffErr) {
			t.Errorf("Differentiate(%q) should return a DiffError, got %v", src, err)
		}
	}
}
