package calcium

import "fmt"

// IntegrationResult carries the outcome of an indefinite integration.
// Unintegratable is a legitimate outcome, not an error: the rule set is
// pattern-based and many integrands fall outside it.
type IntegrationResult struct {
	// Unintegratable is true when no antiderivative rule applied.
	Unintegratable bool
	// Expression is the antiderivative plus the constant of integration.
	// It is nil when Unintegratable is true.
	Expression Expr
	// ConstantName names the integration constant appearing in Expression.
	ConstantName string
}

// DefiniteOptions controls IntegrateDefinite.
type DefiniteOptions struct {
	// NumRectangles, when positive, forces a midpoint Riemann sum with
	// that many rectangles instead of the symbolic path.
	NumRectangles int
}

// IntegrateIndefinite finds an antiderivative of e with respect to the
// named variable. It tries direct pattern rules first and falls back to
// u-substitution. The result, when found, is simplified and carries an
// explicit "+ C" term.
func IntegrateIndefinite(e Expr, wrt string) (IntegrationResult, error) {
	f, ok := antiderivative(e, wrt)
	if !ok {
		return IntegrationResult{Unintegratable: true}, nil
	}
	simplified, err := Simplify(f)
	if err != nil {
		return IntegrationResult{}, err
	}
	return IntegrationResult{
		Expression:   Add(simplified, Var(ConstantName)),
		ConstantName: ConstantName,
	}, nil
}

// IntegrateDefinite computes the integral of e over [lower, upper].
//
// With opts.NumRectangles set it evaluates a midpoint Riemann sum.
// Otherwise it integrates symbolically and evaluates the antiderivative
// at the bounds; an integrand with a singularity at zero inside the
// interval is rejected before evaluation, since F(upper)-F(lower) would
// silently skip the blow-up.
func IntegrateDefinite(e Expr, wrt string, lower, upper float64, opts DefiniteOptions) (float64, error) {
	if opts.NumRectangles > 0 {
		return riemannMidpoint(e, wrt, lower, upper, opts.NumRectangles)
	}

	lo, hi := lower, upper
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo <= 0 && 0 <= hi && hasZeroSingularity(e, wrt) {
		return 0, &EvalError{Kind: DivisionByZero, Detail: fmt.Sprintf("integrand %s is singular at 0 inside [%v, %v]", e, lower, upper)}
	}

	res, err := IntegrateIndefinite(e, wrt)
	if err != nil {
		return 0, err
	}
	if res.Unintegratable {
		return 0, &IntegrationError{Detail: fmt.Sprintf("no antiderivative found for %s", e)}
	}

	atUpper, err := evalAntiderivative(res.Expression, wrt, upper)
	if err != nil {
		return 0, err
	}
	atLower, err := evalAntiderivative(res.Expression, wrt, lower)
	if err != nil {
		return 0, err
	}
	return atUpper - atLower, nil
}

func evalAntiderivative(f Expr, wrt string, bound float64) (float64, error) {
	vars := map[string]float64{wrt: bound, ConstantName: 0}
	// Any remaining free symbols are parameters; bind them to zero so the
	// bound evaluation stays total.
	for name := range FreeVariables(f) {
		if _, ok := vars[name]; !ok {
			vars[name] = 0
		}
	}
	return Evaluate(f, vars)
}

func riemannMidpoint(e Expr, wrt string, lower, upper float64, n int) (float64, error) {
	width := (upper - lower) / float64(n)
	vars := map[string]float64{}
	for name := range FreeVariables(e) {
		vars[name] = 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		vars[wrt] = lower + (float64(i)+0.5)*width
		v, err := Evaluate(e, vars)
		if err != nil {
			return 0, err
		}
		sum += v * width
	}
	return sum, nil
}

// hasZeroSingularity reports whether e contains a quotient whose
// denominator vanishes at wrt=0, or a negative literal power whose base
// does. Denominators that depend on wrt but stay away from zero, like
// x^2+1, are not singular and must pass.
func hasZeroSingularity(e Expr, wrt string) bool {
	switch v := e.(type) {
	case *Binary:
		if v.Op == OpDiv && !freeOf(v.Right, wrt) && vanishesAtZero(v.Right, wrt) {
			return true
		}
		if v.Op == OpPow {
			if n, ok := v.Right.(*Number); ok && n.Value < 0 && !freeOf(v.Left, wrt) && vanishesAtZero(v.Left, wrt) {
				return true
			}
		}
		return hasZeroSingularity(v.Left, wrt) || hasZeroSingularity(v.Right, wrt)
	case *Unary:
		return hasZeroSingularity(v.Operand, wrt)
	case *Call:
		for _, a := range v.Args {
			if hasZeroSingularity(a, wrt) {
				return true
			}
		}
		return false
	case *Exponential:
		return hasZeroSingularity(v.Exponent, wrt)
	}
	return false
}

// vanishesAtZero reports whether e evaluates to exactly 0 at wrt=0, with
// every other free symbol also bound to 0. An evaluation failure at that
// point counts as singular.
func vanishesAtZero(e Expr, wrt string) bool {
	vars := map[string]float64{wrt: 0}
	for name := range FreeVariables(e) {
		vars[name] = 0
	}
	v, err := Evaluate(e, vars)
	if err != nil {
		return true
	}
	return v == 0
}

// antiderivative is the two-tier rule engine: direct pattern rules, then
// substitution search. It reports ok=false when neither tier applies.
func antiderivative(e Expr, wrt string) (Expr, bool) {
	if f, ok := directAntiderivative(e, wrt); ok {
		return f, true
	}
	return substitutionSearch(e, wrt)
}

func directAntiderivative(e Expr, wrt string) (Expr, bool) {
	x := Var(wrt)
	switch v := e.(type) {
	case *Number:
		return Mul(v, x), true
	case *ConstantRef:
		return Mul(v, x), true
	case *Variable:
		if v.Name == wrt {
			return Div(Pow(x, Num(2)), Num(2)), true
		}
		return Mul(v, x), true
	case *Unary:
		inner, ok := antiderivative(v.Operand, wrt)
		if !ok {
			return nil, false
		}
		return Neg(inner), true
	case *Binary:
		return directBinary(v, wrt)
	case *Call:
		return directCall(v, wrt)
	case *Exponential:
		if isBareVar(v.Exponent, wrt) {
			return ExpOf(x), true
		}
	}
	return nil, false
}

func directBinary(b *Binary, wrt string) (Expr, bool) {
	x := Var(wrt)
	switch b.Op {
	case OpAdd, OpSub:
		left, ok := antiderivative(b.Left, wrt)
		if !ok {
			return nil, false
		}
		right, ok := antiderivative(b.Right, wrt)
		if !ok {
			return nil, false
		}
		return &Binary{Op: b.Op, Left: left, Right: right}, true
	case OpMul:
		// A factor free of the variable pulls out of the integral.
		if freeOf(b.Left, wrt) {
			if inner, ok := antiderivative(b.Right, wrt); ok {
				return Mul(b.Left, inner), true
			}
			return nil, false
		}
		if freeOf(b.Right, wrt) {
			if inner, ok := antiderivative(b.Left, wrt); ok {
				return Mul(inner, b.Right), true
			}
			return nil, false
		}
		return nil, false
	case OpDiv:
		if freeOf(b.Right, wrt) {
			if inner, ok := antiderivative(b.Left, wrt); ok {
				return Div(inner, b.Right), true
			}
			return nil, false
		}
		// c/x integrates to c*ln|x|.
		if freeOf(b.Left, wrt) && isBareVar(b.Right, wrt) {
			return Mul(b.Left, Fn("ln", Fn("abs", x))), true
		}
		return nil, false
	case OpPow:
		// x^n by the power rule, with x^-1 as the logarithm case.
		if isBareVar(b.Left, wrt) {
			if n, ok := b.Right.(*Number); ok {
				if n.Value == -1 {
					return Fn("ln", Fn("abs", x)), true
				}
				return Div(Pow(x, Num(n.Value+1)), Num(n.Value+1)), true
			}
			return nil, false
		}
		// a^x for a constant base, with e^x as the exponential node.
		if isBareVar(b.Right, wrt) {
			if c, ok := b.Left.(*ConstantRef); ok && c.Name == ConstE {
				return ExpOf(x), true
			}
			if a, ok := constantValue(b.Left); ok && a > 0 && a != 1 {
				return Div(Pow(b.Left, x), Fn("ln", b.Left)), true
			}
		}
		return nil, false
	}
	return nil, false
}

func directCall(c *Call, wrt string) (Expr, bool) {
	if len(c.Args) != 1 || !isBareVar(c.Args[0], wrt) {
		return nil, false
	}
	x := Var(wrt)
	switch c.Name {
	case "sin":
		return Neg(Fn("cos", x)), true
	case "cos":
		return Fn("sin", x), true
	case "exp":
		return ExpOf(x), true
	case "ln":
		return Sub(Mul(x, Fn("ln", x)), x), true
	}
	return nil, false
}

func isBareVar(e Expr, name string) bool {
	v, ok := e.(*Variable)
	return ok && v.Name == name
}

// substitutionSearch tries u-substitution in two forms: a linear inner
// argument f(a*x+b), and a product or quotient whose extra factor is a
// constant multiple of the derivative of a candidate inner expression.
func substitutionSearch(e Expr, wrt string) (Expr, bool) {
	if f, ok := linearSubstitution(e, wrt); ok {
		return f, true
	}
	switch v := e.(type) {
	case *Binary:
		switch v.Op {
		case OpMul:
			if f, ok := productSubstitution(v.Left, v.Right, wrt); ok {
				return f, true
			}
			return productSubstitution(v.Right, v.Left, wrt)
		case OpDiv:
			// a/b is a * (1/b); the candidate inner expressions come
			// from the denominator.
			return quotientSubstitution(v.Left, v.Right, wrt)
		}
	}
	return nil, false
}

// linearSubstitution handles f(a*x + b): integrate f(u) and scale by 1/a.
func linearSubstitution(e Expr, wrt string) (Expr, bool) {
	var inner Expr
	rebuild := func(u Expr) Expr { return u }
	switch v := e.(type) {
	case *Call:
		if len(v.Args) != 1 {
			return nil, false
		}
		switch v.Name {
		case "sin", "cos", "exp":
			inner = v.Args[0]
			name := v.Name
			rebuild = func(u Expr) Expr { return Fn(name, u) }
		default:
			return nil, false
		}
	case *Exponential:
		inner = v.Exponent
		rebuild = func(u Expr) Expr { return ExpOf(u) }
	case *Binary:
		switch v.Op {
		case OpPow:
			n, ok := v.Right.(*Number)
			if !ok {
				return nil, false
			}
			inner = v.Left
			rebuild = func(u Expr) Expr { return Pow(u, Num(n.Value)) }
		case OpDiv:
			if !freeOf(v.Left, wrt) {
				return nil, false
			}
			inner = v.Right
			numer := v.Left
			rebuild = func(u Expr) Expr { return Div(numer, u) }
		default:
			return nil, false
		}
	default:
		return nil, false
	}
	if isBareVar(inner, wrt) {
		// Direct rules already own the trivial inner variable.
		return nil, false
	}
	a, ok := linearCoefficient(inner, wrt)
	if !ok || a == 0 {
		return nil, false
	}
	u := freshVarName(e, wrt)
	f, ok := antiderivative(rebuild(Var(u)), u)
	if !ok {
		return nil, false
	}
	return Mul(Num(1/a), Substitute(f, u, inner)), true
}

// linearCoefficient returns a when e has the form a*x + b with a and b
// free of x.
func linearCoefficient(e Expr, wrt string) (float64, bool) {
	switch v := e.(type) {
	case *Variable:
		if v.Name == wrt {
			return 1, true
		}
	case *Unary:
		a, ok := linearCoefficient(v.Operand, wrt)
		return -a, ok
	case *Binary:
		switch v.Op {
		case OpAdd:
			switch {
			case freeOf(v.Left, wrt):
				return linearCoefficient(v.Right, wrt)
			case freeOf(v.Right, wrt):
				return linearCoefficient(v.Left, wrt)
			}
		case OpSub:
			switch {
			case freeOf(v.Left, wrt):
				a, ok := linearCoefficient(v.Right, wrt)
				return -a, ok
			case freeOf(v.Right, wrt):
				return linearCoefficient(v.Left, wrt)
			}
		case OpMul:
			if n, ok := v.Left.(*Number); ok && isBareVar(v.Right, wrt) {
				return n.Value, true
			}
			if n, ok := v.Right.(*Number); ok && isBareVar(v.Left, wrt) {
				return n.Value, true
			}
		case OpDiv:
			if n, ok := v.Right.(*Number); ok && n.Value != 0 && isBareVar(v.Left, wrt) {
				return 1 / n.Value, true
			}
		}
	}
	return 0, false
}

// productSubstitution integrates f*other when other is a constant multiple
// of u' for some inner expression u of f. The ratio other/u' is checked by
// simplifying it to a literal number.
func productSubstitution(f, other Expr, wrt string) (Expr, bool) {
	for _, u := range innerCandidates(f) {
		if freeOf(u, wrt) || isBareVar(u, wrt) {
			continue
		}
		du, err := Differentiate(u, wrt)
		if err != nil {
			continue
		}
		ratio, err := Simplify(Div(other, du))
		if err != nil {
			continue
		}
		k, ok := ratio.(*Number)
		if !ok {
			continue
		}
		uname := freshVarName(f, wrt)
		fOfU := replaceSubtree(f, u, Var(uname))
		if !freeOf(fOfU, wrt) {
			continue
		}
		inner, ok := antiderivative(fOfU, uname)
		if !ok {
			continue
		}
		return Mul(Num(k.Value), Substitute(inner, uname, u)), true
	}
	return nil, false
}

// quotientSubstitution rewrites a/b as a * b^-1 and looks for an inner
// expression of the denominator whose derivative matches the numerator.
func quotientSubstitution(numer, denom Expr, wrt string) (Expr, bool) {
	candidates := append([]Expr{denom}, innerCandidates(denom)...)
	for _, u := range candidates {
		if freeOf(u, wrt) || isBareVar(u, wrt) {
			continue
		}
		du, err := Differentiate(u, wrt)
		if err != nil {
			continue
		}
		ratio, err := Simplify(Div(numer, du))
		if err != nil {
			continue
		}
		k, ok := ratio.(*Number)
		if !ok {
			continue
		}
		uname := freshVarName(denom, wrt)
		dOfU := replaceSubtree(denom, u, Var(uname))
		if !freeOf(dOfU, wrt) {
			continue
		}
		inner, ok := antiderivative(Div(Num(1), dOfU), uname)
		if !ok {
			continue
		}
		return Mul(Num(k.Value), Substitute(inner, uname, u)), true
	}
	return nil, false
}

// innerCandidates lists the immediate inner expressions of a composite
// shape: the call argument, the exponent of e^u, and the base and exponent
// of a power.
func innerCandidates(e Expr) []Expr {
	switch v := e.(type) {
	case *Call:
		if len(v.Args) != 1 {
			return nil
		}
		return []Expr{v.Args[0]}
	case *Exponential:
		return []Expr{v.Exponent}
	case *Binary:
		if v.Op == OpPow {
			return []Expr{v.Left, v.Right}
		}
	case *Unary:
		return innerCandidates(v.Operand)
	}
	return nil
}

// freshVarName picks a substitution variable that collides with neither
// the integration variable nor any free symbol of e.
func freshVarName(e Expr, wrt string) string {
	free := FreeVariables(e)
	name := "u"
	for i := 0; ; i++ {
		if i > 0 {
			name = fmt.Sprintf("u%d", i)
		}
		if name == wrt {
			continue
		}
		if _, taken := free[name]; !taken {
			return name
		}
	}
}
