package calcium

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Expr is the immutable expression tree. Every transformation in this
// package builds a new tree; no node is mutated after construction, so
// trees may be shared freely.
//
// The variant set is sealed: only the node types in this file implement
// the interface, which lets every recursive type switch in the engine be
// exhaustive.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	}
	return "?"
}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "?"
}

// Constant names understood by the engine.
const (
	ConstE  = "e"
	ConstPi = "pi"
)

// ConstantName is the variable name used for the integration constant.
const ConstantName = "C"

// Number is a finite floating-point literal.
type Number struct{ Value float64 }

// Variable is a named symbol.
type Variable struct{ Name string }

// Binary applies a binary operator to two owned operands.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Unary applies a unary operator to one owned operand.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Call is a named function application. The known function names all
// take exactly one argument; Fn enforces that at construction.
type Call struct {
	Name string
	Args []Expr
}

// ConstantRef names a mathematical constant (e or pi).
type ConstantRef struct{ Name string }

// Exponential is the natural exponential e^Exponent, kept distinct from
// Binary{OpPow} so the calculus rules for e^u never have to pattern-match
// the constant base.
type Exponential struct{ Exponent Expr }

func (*Number) isExpr()      {}
func (*Variable) isExpr()    {}
func (*Binary) isExpr()      {}
func (*Unary) isExpr()       {}
func (*Call) isExpr()        {}
func (*ConstantRef) isExpr() {}
func (*Exponential) isExpr() {}

var varNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// knownFuncs is the closed set of function names the engine understands.
var knownFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"sec": true, "csc": true, "cot": true,
	"asin": true, "acos": true, "atan": true,
	"asec": true, "acsc": true, "acot": true,
	"sinh": true, "cosh": true, "tanh": true,
	"log": true, "ln": true, "exp": true,
	"sqrt": true, "abs": true,
}

// Num builds a numeric literal. The value must be finite.
func Num(v float64) *Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("calcium: number must be finite, got %v", v))
	}
	return &Number{Value: v}
}

// Var builds a variable reference. The name must match
// [A-Za-z_][A-Za-z0-9_]*.
func Var(name string) *Variable {
	if !varNameRe.MatchString(name) {
		panic(fmt.Sprintf("calcium: invalid variable name %q", name))
	}
	return &Variable{Name: name}
}

// Add builds left + right.
func Add(left, right Expr) *Binary { return &Binary{Op: OpAdd, Left: left, Right: right} }

// Sub builds left - right.
func Sub(left, right Expr) *Binary { return &Binary{Op: OpSub, Left: left, Right: right} }

// Mul builds left * right.
func Mul(left, right Expr) *Binary { return &Binary{Op: OpMul, Left: left, Right: right} }

// Div builds left / right.
func Div(left, right Expr) *Binary { return &Binary{Op: OpDiv, Left: left, Right: right} }

// Pow builds left ^ right.
func Pow(left, right Expr) *Binary { return &Binary{Op: OpPow, Left: left, Right: right} }

// Neg builds -operand.
func Neg(operand Expr) *Unary { return &Unary{Op: OpNeg, Operand: operand} }

// Fn builds a function call. The name must be in the known set and carry
// exactly one argument.
func Fn(name string, args ...Expr) *Call {
	if !knownFuncs[name] {
		panic(fmt.Sprintf("calcium: unknown function %q", name))
	}
	if len(args) != 1 {
		panic(fmt.Sprintf("calcium: function %q takes exactly one argument, got %d", name, len(args)))
	}
	return &Call{Name: name, Args: args}
}

// Const builds a constant reference (e or pi).
func Const(name string) *ConstantRef {
	if name != ConstE && name != ConstPi {
		panic(fmt.Sprintf("calcium: unknown constant %q", name))
	}
	return &ConstantRef{Name: name}
}

// ExpOf builds the natural exponential e^exponent.
func ExpOf(exponent Expr) *Exponential { return &Exponential{Exponent: exponent} }

// Equal reports deep structural equality: same node types, same operators
// and names, equal children in order. It is the comparison the simplifier
// uses for its fixed-point test.
func Equal(a, b Expr) bool {
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *Variable:
		bv, ok := b.(*Variable)
		return ok && av.Name == bv.Name
	case *Binary:
		bv, ok := b.(*Binary)
		return ok && av.Op == bv.Op && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case *Unary:
		bv, ok := b.(*Unary)
		return ok && av.Op == bv.Op && Equal(av.Operand, bv.Operand)
	case *Call:
		bv, ok := b.(*Call)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *ConstantRef:
		bv, ok := b.(*ConstantRef)
		return ok && av.Name == bv.Name
	case *Exponential:
		bv, ok := b.(*Exponential)
		return ok && Equal(av.Exponent, bv.Exponent)
	}
	return false
}

// exprKey builds a canonical key over the tree shape. It is used to bucket
// like terms during simplification; two expressions have the same key iff
// they are structurally equal.
func exprKey(e Expr) string {
	var sb strings.Builder
	writeKey(&sb, e)
	return sb.String()
}

func writeKey(sb *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Number:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *Variable:
		sb.WriteString("v:")
		sb.WriteString(v.Name)
	case *Binary:
		sb.WriteString("b")
		sb.WriteString(v.Op.String())
		sb.WriteByte('(')
		writeKey(sb, v.Left)
		sb.WriteByte(',')
		writeKey(sb, v.Right)
		sb.WriteByte(')')
	case *Unary:
		sb.WriteString("u-(")
		writeKey(sb, v.Operand)
		sb.WriteByte(')')
	case *Call:
		sb.WriteString("f:")
		sb.WriteString(v.Name)
		sb.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeKey(sb, a)
		}
		sb.WriteByte(')')
	case *ConstantRef:
		sb.WriteString("c:")
		sb.WriteString(v.Name)
	case *Exponential:
		sb.WriteString("e^(")
		writeKey(sb, v.Exponent)
		sb.WriteByte(')')
	}
}

// FreeVariables returns the set of variable names occurring in e.
func FreeVariables(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectVars(e, out)
	return out
}

func collectVars(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Variable:
		out[v.Name] = struct{}{}
	case *Binary:
		collectVars(v.Left, out)
		collectVars(v.Right, out)
	case *Unary:
		collectVars(v.Operand, out)
	case *Call:
		for _, a := range v.Args {
			collectVars(a, out)
		}
	case *Exponential:
		collectVars(v.Exponent, out)
	}
}

// freeOf reports whether e contains no occurrence of the named variable.
func freeOf(e Expr, name string) bool {
	switch v := e.(type) {
	case *Variable:
		return v.Name != name
	case *Binary:
		return freeOf(v.Left, name) && freeOf(v.Right, name)
	case *Unary:
		return freeOf(v.Operand, name)
	case *Call:
		for _, a := range v.Args {
			if !freeOf(a, name) {
				return false
			}
		}
		return true
	case *Exponential:
		return freeOf(v.Exponent, name)
	}
	return true
}

// Substitute returns a copy of e with every occurrence of the named
// variable replaced by value.
func Substitute(e Expr, name string, value Expr) Expr {
	switch v := e.(type) {
	case *Variable:
		if v.Name == name {
			return value
		}
		return v
	case *Binary:
		return &Binary{Op: v.Op, Left: Substitute(v.Left, name, value), Right: Substitute(v.Right, name, value)}
	case *Unary:
		return &Unary{Op: v.Op, Operand: Substitute(v.Operand, name, value)}
	case *Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, name, value)
		}
		return &Call{Name: v.Name, Args: args}
	case *Exponential:
		return &Exponential{Exponent: Substitute(v.Exponent, name, value)}
	}
	return e
}

// replaceSubtree returns a copy of e with every subtree structurally equal
// to target replaced by repl. The integrator uses it to rewrite f(g(x))
// as f(u) during substitution search.
func replaceSubtree(e, target, repl Expr) Expr {
	if Equal(e, target) {
		return repl
	}
	switch v := e.(type) {
	case *Binary:
		return &Binary{Op: v.Op, Left: replaceSubtree(v.Left, target, repl), Right: replaceSubtree(v.Right, target, repl)}
	case *Unary:
		return &Unary{Op: v.Op, Operand: replaceSubtree(v.Operand, target, repl)}
	case *Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = replaceSubtree(a, target, repl)
		}
		return &Call{Name: v.Name, Args: args}
	case *Exponential:
		return &Exponential{Exponent: replaceSubtree(v.Exponent, target, repl)}
	}
	return e
}

// ============================================================
// Rendering
// ============================================================

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Number) String() string      { return formatFloat(n.Value) }
func (v *Variable) String() string    { return v.Name }
func (c *ConstantRef) String() string { return c.Name }

func (b *Binary) String() string {
	left := b.Left.String()
	right := b.Right.String()
	switch b.Op {
	case OpAdd:
		return left + " + " + right
	case OpSub:
		if isAddSub(b.Right) {
			right = "(" + right + ")"
		}
		return left + " - " + right
	case OpMul, OpDiv:
		if isAddSub(b.Left) {
			left = "(" + left + ")"
		}
		if isAddSub(b.Right) || (b.Op == OpDiv && isMulDiv(b.Right)) {
			right = "(" + right + ")"
		}
		return left + b.Op.String() + right
	case OpPow:
		if !isAtom(b.Left) {
			left = "(" + left + ")"
		}
		if isAddSub(b.Right) || isMulDiv(b.Right) {
			right = "(" + right + ")"
		}
		return left + "^" + right
	}
	return left + b.Op.String() + right
}

func (u *Unary) String() string {
	inner := u.Operand.String()
	if _, ok := u.Operand.(*Binary); ok {
		inner = "(" + inner + ")"
	}
	return "-" + inner
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (x *Exponential) String() string {
	inner := x.Exponent.String()
	if !isAtom(x.Exponent) {
		inner = "(" + inner + ")"
	}
	return "e^" + inner
}

func isAddSub(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && (b.Op == OpAdd || b.Op == OpSub)
}

func isMulDiv(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && (b.Op == OpMul || b.Op == OpDiv)
}

func isAtom(e Expr) bool {
	switch e.(type) {
	case *Number, *Variable, *ConstantRef, *Call:
		return true
	}
	return false
}
