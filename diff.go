package calcium

import (
	"fmt"
	"math"
)

// Differentiate returns the derivative of e with respect to the named
// variable, simplified. Expressions outside the rule set, such as x^x or
// abs, are reported as *DiffError.
func Differentiate(e Expr, wrt string) (Expr, error) {
	d, err := diff(e, wrt)
	if err != nil {
		return nil, err
	}
	return Simplify(d)
}

func diff(e Expr, wrt string) (Expr, error) {
	switch v := e.(type) {
	case *Number, *ConstantRef:
		return Num(0), nil
	case *Variable:
		if v.Name == wrt {
			return Num(1), nil
		}
		return Num(0), nil
	case *Unary:
		d, err := diff(v.Operand, wrt)
		if err != nil {
			return nil, err
		}
		return Neg(d), nil
	case *Binary:
		return diffBinary(v, wrt)
	case *Call:
		return diffCall(v, wrt)
	case *Exponential:
		d, err := diff(v.Exponent, wrt)
		if err != nil {
			return nil, err
		}
		if n, ok := d.(*Number); ok {
			switch n.Value {
			case 0:
				return Num(0), nil
			case 1:
				return ExpOf(v.Exponent), nil
			}
		}
		return Mul(ExpOf(v.Exponent), d), nil
	}
	return nil, &DiffError{Detail: fmt.Sprintf("unknown expression node %T", e)}
}

func diffBinary(b *Binary, wrt string) (Expr, error) {
	switch b.Op {
	case OpAdd, OpSub:
		dl, err := diff(b.Left, wrt)
		if err != nil {
			return nil, err
		}
		dr, err := diff(b.Right, wrt)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: b.Op, Left: dl, Right: dr}, nil
	case OpMul:
		// (uv)' = u'v + uv'
		du, err := diff(b.Left, wrt)
		if err != nil {
			return nil, err
		}
		dv, err := diff(b.Right, wrt)
		if err != nil {
			return nil, err
		}
		return Add(Mul(du, b.Right), Mul(b.Left, dv)), nil
	case OpDiv:
		// (u/v)' = (u'v - uv') / v^2
		du, err := diff(b.Left, wrt)
		if err != nil {
			return nil, err
		}
		dv, err := diff(b.Right, wrt)
		if err != nil {
			return nil, err
		}
		return Div(Sub(Mul(du, b.Right), Mul(b.Left, dv)), Pow(b.Right, Num(2))), nil
	case OpPow:
		return diffPow(b, wrt)
	}
	return nil, &DiffError{Detail: fmt.Sprintf("unknown binary operator %v", b.Op)}
}

func diffPow(b *Binary, wrt string) (Expr, error) {
	// u^n for a literal exponent lowers by the power rule.
	if n, ok := b.Right.(*Number); ok {
		switch b.Left.(type) {
		case *Number, *ConstantRef:
			return Num(0), nil
		}
		du, err := diff(b.Left, wrt)
		if err != nil {
			return nil, err
		}
		return Mul(Num(n.Value), Mul(Pow(b.Left, Num(n.Value-1)), du)), nil
	}
	// c^v for a constant base differentiates to c^v * ln(c) * v'.
	if cv, ok := constantValue(b.Left); ok {
		if cv == 0 || cv == 1 {
			return Num(0), nil
		}
		dv, err := diff(b.Right, wrt)
		if err != nil {
			return nil, err
		}
		return Mul(Pow(b.Left, b.Right), Mul(Fn("ln", b.Left), dv)), nil
	}
	return nil, &DiffError{Detail: fmt.Sprintf("power with non-constant base and exponent: %s", b)}
}

func constantValue(e Expr) (float64, bool) {
	switch v := e.(type) {
	case *Number:
		return v.Value, true
	case *ConstantRef:
		if v.Name == ConstPi {
			return math.Pi, true
		}
		return math.E, true
	}
	return 0, false
}

func diffCall(c *Call, wrt string) (Expr, error) {
	if len(c.Args) != 1 {
		return nil, &DiffError{Detail: fmt.Sprintf("%s called with %d arguments, want 1", c.Name, len(c.Args))}
	}
	u := c.Args[0]
	du, err := diff(u, wrt)
	if err != nil {
		return nil, err
	}
	var outer Expr
	switch c.Name {
	case "sin":
		outer = Fn("cos", u)
	case "cos":
		outer = Neg(Fn("sin", u))
	case "tan":
		outer = Pow(Fn("sec", u), Num(2))
	case "sec":
		outer = Mul(Fn("sec", u), Fn("tan", u))
	case "csc":
		outer = Neg(Mul(Fn("csc", u), Fn("cot", u)))
	case "cot":
		outer = Neg(Pow(Fn("csc", u), Num(2)))
	case "asin":
		return Div(du, Fn("sqrt", Sub(Num(1), Pow(u, Num(2))))), nil
	case "acos":
		return Neg(Div(du, Fn("sqrt", Sub(Num(1), Pow(u, Num(2)))))), nil
	case "atan":
		return Div(du, Add(Num(1), Pow(u, Num(2)))), nil
	case "sinh":
		outer = Fn("cosh", u)
	case "cosh":
		outer = Fn("sinh", u)
	case "tanh":
		outer = Sub(Num(1), Pow(Fn("tanh", u), Num(2)))
	case "ln":
		return Div(du, u), nil
	case "log":
		return Div(du, Mul(u, Fn("ln", Num(10)))), nil
	case "exp":
		return diff(ExpOf(u), wrt)
	case "sqrt":
		return Div(du, Mul(Num(2), Fn("sqrt", u))), nil
	default:
		return nil, &DiffError{Detail: fmt.Sprintf("no derivative rule for %s", c.Name)}
	}
	return Mul(outer, du), nil
}
