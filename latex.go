package calcium

import "strings"

// LaTeX renders e as LaTeX math source. Quotients become \frac, the known
// function names get their backslash forms and e^u renders with a braced
// exponent.
func LaTeX(e Expr) string {
	switch v := e.(type) {
	case *Number:
		return formatFloat(v.Value)
	case *Variable:
		return v.Name
	case *ConstantRef:
		if v.Name == ConstPi {
			return `\pi`
		}
		return "e"
	case *Unary:
		inner := LaTeX(v.Operand)
		if _, ok := v.Operand.(*Binary); ok {
			inner = `\left(` + inner + `\right)`
		}
		return "-" + inner
	case *Binary:
		return latexBinary(v)
	case *Call:
		return latexCall(v)
	case *Exponential:
		return "e^{" + LaTeX(v.Exponent) + "}"
	}
	return ""
}

func latexBinary(b *Binary) string {
	switch b.Op {
	case OpAdd:
		return LaTeX(b.Left) + " + " + LaTeX(b.Right)
	case OpSub:
		right := LaTeX(b.Right)
		if isAddSub(b.Right) {
			right = `\left(` + right + `\right)`
		}
		return LaTeX(b.Left) + " - " + right
	case OpMul:
		left := LaTeX(b.Left)
		right := LaTeX(b.Right)
		if isAddSub(b.Left) {
			left = `\left(` + left + `\right)`
		}
		if isAddSub(b.Right) {
			right = `\left(` + right + `\right)`
		}
		return left + ` \cdot ` + right
	case OpDiv:
		return `\frac{` + LaTeX(b.Left) + `}{` + LaTeX(b.Right) + `}`
	case OpPow:
		left := LaTeX(b.Left)
		if !isAtom(b.Left) {
			left = `\left(` + left + `\right)`
		}
		return left + "^{" + LaTeX(b.Right) + "}"
	}
	return ""
}

var latexFuncs = map[string]string{
	"sin": `\sin`, "cos": `\cos`, "tan": `\tan`,
	"sec": `\sec`, "csc": `\csc`, "cot": `\cot`,
	"asin": `\arcsin`, "acos": `\arccos`, "atan": `\arctan`,
	"sinh": `\sinh`, "cosh": `\cosh`, "tanh": `\tanh`,
	"ln": `\ln`, "log": `\log`, "exp": `\exp`,
}

func latexCall(c *Call) string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = LaTeX(a)
	}
	arg := strings.Join(parts, ", ")
	switch c.Name {
	case "sqrt":
		return `\sqrt{` + arg + `}`
	case "abs":
		return `\left|` + arg + `\right|`
	}
	if name, ok := latexFuncs[c.Name]; ok {
		return name + `\left(` + arg + `\right)`
	}
	return `\operatorname{` + c.Name + `}\left(` + arg + `\right)`
}
