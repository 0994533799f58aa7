package calcium

import (
	"fmt"
	"math"
)

// Evaluate computes the numeric value of e with the given variable
// bindings. Unbound variables, division by exactly zero, 0^0 and
// out-of-domain function arguments are reported as errors rather than
// surfacing NaN or Inf.
func Evaluate(e Expr, vars map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Number:
		return v.Value, nil
	case *Variable:
		val, ok := vars[v.Name]
		if !ok {
			return 0, &EvalError{Kind: UndefinedVariable, Detail: v.Name}
		}
		return val, nil
	case *ConstantRef:
		if v.Name == ConstPi {
			return math.Pi, nil
		}
		return math.E, nil
	case *Unary:
		operand, err := Evaluate(v.Operand, vars)
		if err != nil {
			return 0, err
		}
		return -operand, nil
	case *Binary:
		left, err := Evaluate(v.Left, vars)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(v.Right, vars)
		if err != nil {
			return 0, err
		}
		return applyBinary(v.Op, left, right)
	case *Call:
		if len(v.Args) != 1 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("%s called with %d arguments, want 1", v.Name, len(v.Args))}
		}
		arg, err := Evaluate(v.Args[0], vars)
		if err != nil {
			return 0, err
		}
		return applyFunc(v.Name, arg)
	case *Exponential:
		exp, err := Evaluate(v.Exponent, vars)
		if err != nil {
			return 0, err
		}
		return math.Exp(exp), nil
	}
	return 0, fmt.Errorf("calcium: unknown expression node %T", e)
}

func applyBinary(op BinaryOp, left, right float64) (float64, error) {
	switch op {
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right == 0 {
			return 0, &EvalError{Kind: DivisionByZero}
		}
		return left / right, nil
	case OpPow:
		if left == 0 && right == 0 {
			return 0, &UndefinedExprError{Form: "0^0"}
		}
		return math.Pow(left, right), nil
	}
	return 0, fmt.Errorf("calcium: unknown binary operator %v", op)
}

func applyFunc(name string, x float64) (float64, error) {
	switch name {
	case "sin":
		return math.Sin(x), nil
	case "cos":
		return math.Cos(x), nil
	case "tan":
		return math.Tan(x), nil
	case "sec":
		return reciprocal(math.Cos(x))
	case "csc":
		return reciprocal(math.Sin(x))
	case "cot":
		return reciprocal(math.Tan(x))
	case "asin":
		if x < -1 || x > 1 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("asin argument %v outside [-1, 1]", x)}
		}
		return math.Asin(x), nil
	case "acos":
		if x < -1 || x > 1 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("acos argument %v outside [-1, 1]", x)}
		}
		return math.Acos(x), nil
	case "atan":
		return math.Atan(x), nil
	case "asec":
		if x > -1 && x < 1 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("asec argument %v inside (-1, 1)", x)}
		}
		return math.Acos(1 / x), nil
	case "acsc":
		if x > -1 && x < 1 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("acsc argument %v inside (-1, 1)", x)}
		}
		return math.Asin(1 / x), nil
	case "acot":
		if x == 0 {
			return math.Pi / 2, nil
		}
		if x > 0 {
			return math.Atan(1 / x), nil
		}
		return math.Atan(1/x) + math.Pi, nil
	case "sinh":
		return math.Sinh(x), nil
	case "cosh":
		return math.Cosh(x), nil
	case "tanh":
		return math.Tanh(x), nil
	case "log":
		if x <= 0 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("log argument %v must be positive", x)}
		}
		return math.Log10(x), nil
	case "ln":
		if x <= 0 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("ln argument %v must be positive", x)}
		}
		return math.Log(x), nil
	case "exp":
		return math.Exp(x), nil
	case "sqrt":
		if x < 0 {
			return 0, &EvalError{Kind: DomainError, Detail: fmt.Sprintf("sqrt argument %v must be non-negative", x)}
		}
		return math.Sqrt(x), nil
	case "abs":
		return math.Abs(x), nil
	}
	return 0, fmt.Errorf("calcium: unknown function %q", name)
}

func reciprocal(v float64) (float64, error) {
	if v == 0 {
		return 0, &EvalError{Kind: DivisionByZero}
	}
	return 1 / v, nil
}
