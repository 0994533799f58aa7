package calcium

import (
	"math"
	"sort"
)

// Simplify rewrites e to a reduced form by running one bottom-up rewrite
// pass at a time until a pass produces a structurally equal tree. Each
// pass folds constants, strips identity operations, cancels double
// negation and combines like terms, so every pass either shrinks the
// tree or leaves it fixed and the loop terminates.
//
// Folding can expose an indeterminate form: 0^0 is reported as
// *UndefinedExprError. Division by a literal zero is left unevaluated so
// the caller sees the offending subtree.
func Simplify(e Expr) (Expr, error) {
	cur := e
	for {
		next, err := simplifyPass(cur)
		if err != nil {
			return nil, err
		}
		if Equal(next, cur) {
			return next, nil
		}
		cur = next
	}
}

func simplifyPass(e Expr) (Expr, error) {
	switch v := e.(type) {
	case *Number, *Variable, *ConstantRef:
		return e, nil
	case *Unary:
		return simplifyNeg(v)
	case *Exponential:
		exp, err := simplifyPass(v.Exponent)
		if err != nil {
			return nil, err
		}
		if n, ok := exp.(*Number); ok && n.Value == 0 {
			return Num(1), nil
		}
		// e^ln(x) folds back to x.
		if ln, ok := exp.(*Call); ok && ln.Name == "ln" && len(ln.Args) == 1 {
			return ln.Args[0], nil
		}
		return ExpOf(exp), nil
	case *Call:
		return simplifyCall(v)
	case *Binary:
		left, err := simplifyPass(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := simplifyPass(v.Right)
		if err != nil {
			return nil, err
		}
		switch v.Op {
		case OpAdd, OpSub:
			return simplifySum(&Binary{Op: v.Op, Left: left, Right: right})
		case OpMul:
			return simplifyMul(left, right), nil
		case OpDiv:
			return simplifyDiv(left, right), nil
		case OpPow:
			return simplifyPow(left, right)
		}
	}
	return e, nil
}

func simplifyNeg(u *Unary) (Expr, error) {
	operand, err := simplifyPass(u.Operand)
	if err != nil {
		return nil, err
	}
	switch inner := operand.(type) {
	case *Number:
		if inner.Value == 0 {
			return Num(0), nil
		}
		return Num(-inner.Value), nil
	case *Unary:
		return inner.Operand, nil
	}
	return Neg(operand), nil
}

func simplifyCall(c *Call) (Expr, error) {
	if len(c.Args) != 1 {
		return c, nil
	}
	arg, err := simplifyPass(c.Args[0])
	if err != nil {
		return nil, err
	}
	// A call-form exp normalizes to the dedicated exponential node.
	if c.Name == "exp" {
		return simplifyPass(ExpOf(arg))
	}
	// ln(e) = 1.
	if c.Name == "ln" {
		if cr, ok := arg.(*ConstantRef); ok && cr.Name == ConstE {
			return Num(1), nil
		}
	}
	if n, ok := arg.(*Number); ok {
		val, err := applyFunc(c.Name, n.Value)
		// Out-of-domain or non-finite results stay symbolic.
		if err == nil && !math.IsNaN(val) && !math.IsInf(val, 0) {
			return Num(val), nil
		}
	}
	return Fn(c.Name, arg), nil
}

func simplifyPow(left, right Expr) (Expr, error) {
	if ln, ok := left.(*Number); ok {
		if rn, ok := right.(*Number); ok {
			if ln.Value == 0 && rn.Value == 0 {
				return nil, &UndefinedExprError{Form: "0^0"}
			}
			v := math.Pow(ln.Value, rn.Value)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Num(v), nil
			}
			return Pow(left, right), nil
		}
	}
	if rn, ok := right.(*Number); ok {
		if rn.Value == 0 {
			return Num(1), nil
		}
		if rn.Value == 1 {
			return left, nil
		}
	}
	if ln, ok := left.(*Number); ok && ln.Value == 1 {
		return Num(1), nil
	}
	if cr, ok := left.(*ConstantRef); ok && cr.Name == ConstE {
		return ExpOf(right), nil
	}
	// (x^a)^b combines into x^(a*b).
	if inner, ok := left.(*Binary); ok && inner.Op == OpPow {
		return Pow(inner.Left, simplifyMul(inner.Right, right)), nil
	}
	return Pow(left, right), nil
}

// term is one summand in flattened form: coeff times base, where a nil
// base marks a pure numeric contribution.
type term struct {
	coeff float64
	base  Expr
}

// simplifySum flattens a +/- spine into signed terms, merges terms with
// structurally equal bases, folds the numeric ones and rebuilds the sum
// in canonical-key order with any numeric total and the integration
// constant trailing.
func simplifySum(root *Binary) (Expr, error) {
	var terms []term
	collectSum(root, 1, &terms)

	numeric := 0.0
	constC := 0.0
	hasC := false
	buckets := map[string]*term{}
	var order []string
	for _, t := range terms {
		if t.base == nil {
			numeric += t.coeff
			continue
		}
		if v, ok := t.base.(*Variable); ok && v.Name == ConstantName {
			constC += t.coeff
			hasC = true
			continue
		}
		k := exprKey(t.base)
		if b, ok := buckets[k]; ok {
			b.coeff += t.coeff
		} else {
			buckets[k] = &term{coeff: t.coeff, base: t.base}
			order = append(order, k)
		}
	}
	sort.Strings(order)

	var parts []Expr
	for _, k := range order {
		b := buckets[k]
		if b.coeff == 0 {
			continue
		}
		parts = append(parts, buildTerm(b.coeff, b.base))
	}
	if numeric != 0 {
		parts = append(parts, Num(numeric))
	}
	if hasC && constC != 0 {
		parts = append(parts, buildTerm(constC, Var(ConstantName)))
	}
	if len(parts) == 0 {
		return Num(0), nil
	}
	return joinSum(parts), nil
}

func collectSum(e Expr, sign float64, out *[]term) {
	switch v := e.(type) {
	case *Binary:
		switch v.Op {
		case OpAdd:
			collectSum(v.Left, sign, out)
			collectSum(v.Right, sign, out)
			return
		case OpSub:
			collectSum(v.Left, sign, out)
			collectSum(v.Right, -sign, out)
			return
		}
	case *Unary:
		collectSum(v.Operand, -sign, out)
		return
	}
	c, base := coeffOf(e)
	*out = append(*out, term{coeff: sign * c, base: base})
}

// coeffOf splits e into a numeric coefficient and a residual base. A nil
// base means e was purely numeric. Recognized shapes are literal numbers,
// negation, products with a numeric factor and quotients with a numeric
// denominator; anything else is 1 times itself.
func coeffOf(e Expr) (float64, Expr) {
	switch v := e.(type) {
	case *Number:
		return v.Value, nil
	case *Unary:
		c, base := coeffOf(v.Operand)
		return -c, base
	case *Binary:
		switch v.Op {
		case OpMul:
			if n, ok := v.Left.(*Number); ok {
				c, base := coeffOf(v.Right)
				if base == nil {
					return n.Value * c, nil
				}
				return n.Value * c, base
			}
			if n, ok := v.Right.(*Number); ok {
				c, base := coeffOf(v.Left)
				if base == nil {
					return n.Value * c, nil
				}
				return n.Value * c, base
			}
		case OpDiv:
			if n, ok := v.Right.(*Number); ok && n.Value != 0 {
				c, base := coeffOf(v.Left)
				return c / n.Value, base
			}
		}
	}
	return 1, e
}

// buildTerm renders coeff*base with the small coefficients absorbed:
// 1*x is x, -1*x is -x and a zero coefficient vanishes.
func buildTerm(coeff float64, base Expr) Expr {
	switch {
	case coeff == 0:
		return Num(0)
	case base == nil:
		return Num(coeff)
	case coeff == 1:
		return base
	case coeff == -1:
		return Neg(base)
	case coeff < 0:
		return Neg(Mul(Num(-coeff), base))
	}
	return Mul(Num(coeff), base)
}

func joinSum(parts []Expr) Expr {
	acc := parts[0]
	for _, p := range parts[1:] {
		if u, ok := p.(*Unary); ok {
			acc = Sub(acc, u.Operand)
			continue
		}
		acc = Add(acc, p)
	}
	return acc
}

func simplifyMul(left, right Expr) Expr {
	lc, lbase := coeffOf(left)
	rc, rbase := coeffOf(right)
	c := lc * rc
	switch {
	case lbase == nil && rbase == nil:
		return Num(c)
	case lbase == nil:
		return buildTerm(c, rbase)
	case rbase == nil:
		return buildTerm(c, lbase)
	}
	if c == 0 {
		return Num(0)
	}
	return buildTerm(c, combinePowers(lbase, rbase))
}

// combinePowers merges x*x into x^2 and x^a * x^b into x^(a+b) when the
// bases are structurally equal.
func combinePowers(l, r Expr) Expr {
	lb, le := splitPower(l)
	rb, re := splitPower(r)
	if Equal(lb, rb) {
		if ln, ok := le.(*Number); ok {
			if rn, ok := re.(*Number); ok {
				total := ln.Value + rn.Value
				if total == 1 {
					return lb
				}
				return Pow(lb, Num(total))
			}
		}
		return Pow(lb, Add(le, re))
	}
	return Mul(l, r)
}

func splitPower(e Expr) (base, exp Expr) {
	if b, ok := e.(*Binary); ok && b.Op == OpPow {
		return b.Left, b.Right
	}
	return e, Num(1)
}

func simplifyDiv(left, right Expr) Expr {
	if n, ok := left.(*Number); ok && n.Value == 0 {
		if rn, ok := right.(*Number); ok && rn.Value == 0 {
			return Div(left, right)
		}
		return Num(0)
	}
	if rn, ok := right.(*Number); ok {
		switch rn.Value {
		case 0:
			// Left for the evaluator to report.
			return Div(left, right)
		case 1:
			return left
		case -1:
			return simplifyNegExpr(left)
		}
	}
	if Equal(left, right) {
		return Num(1)
	}
	lc, lbase := coeffOf(left)
	rc, rbase := coeffOf(right)
	if rc != 0 {
		switch {
		case lbase == nil && rbase == nil:
			return Num(lc / rc)
		case rbase == nil:
			return buildTerm(lc/rc, lbase)
		case lbase != nil && Equal(lbase, rbase):
			return Num(lc / rc)
		}
	}
	return Div(left, right)
}

func simplifyNegExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Number:
		return Num(-v.Value)
	case *Unary:
		return v.Operand
	}
	return Neg(e)
}
