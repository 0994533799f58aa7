package tui

import (
	"strings"
	"testing"

	"github.com/calciumlabs/calcium/config"
	"github.com/calciumlabs/calcium/logging"
)

func testModel() Model {
	return New(config.Default(), logging.NoOp())
}

func TestDispatch_SimplifyByDefault(t *testing.T) {
	out, err := testModel().dispatch("x + x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2*x" {
		t.Errorf("want 2*x, got %s", out)
	}
}

func TestDispatch_Eval(t *testing.T) {
	out, err := testModel().dispatch("eval x^2 + y x=3 y=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "10" {
		t.Errorf("want 10, got %s", out)
	}
}

func TestDispatch_Diff(t *testing.T) {
	out, err := testModel().dispatch("diff x sin(x)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "cos(x)" {
		t.Errorf("want cos(x), got %s", out)
	}
}

func TestDispatch_IndefiniteIntegral(t *testing.T) {
	out, err := testModel().dispatch("int x 2*x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "x^2 + C" {
		t.Errorf("want x^2 + C, got %s", out)
	}
}

func TestDispatch_DefiniteIntegral(t *testing.T) {
	out, err := testModel().dispatch("int x 0 3 x^2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "9") {
		t.Errorf("want 9, got %s", out)
	}
}

func TestDispatch_Latex(t *testing.T) {
	out, err := testModel().dispatch("latex x/2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `\frac{x}{2}` {
		t.Errorf("want \\frac{x}{2}, got %s", out)
	}
}

func TestDispatch_Help(t *testing.T) {
	out, err := testModel().dispatch("help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "diff <var>") {
		t.Errorf("help output incomplete: %s", out)
	}
}

func TestDispatch_ParseError(t *testing.T) {
	if _, err := testModel().dispatch("2 +"); err == nil {
		t.Error("malformed input should fail")
	}
}
