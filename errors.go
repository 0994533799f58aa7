package calcium

import "fmt"

// ParseError reports a syntax error with the byte offset where the
// parser gave up.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	// UndefinedVariable means evaluation reached a variable with no binding.
	UndefinedVariable EvalErrorKind = iota
	// DivisionByZero means a denominator evaluated to exactly zero.
	DivisionByZero
	// DomainError means a function received an argument outside its domain.
	DomainError
)

func (k EvalErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "undefined variable"
	case DivisionByZero:
		return "division by zero"
	case DomainError:
		return "domain error"
	}
	return "evaluation error"
}

// EvalError reports a runtime failure during numeric evaluation.
type EvalError struct {
	Kind   EvalErrorKind
	Detail string
}

func (e *EvalError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// DiffError reports an expression the differentiator has no rule for.
type DiffError struct {
	Detail string
}

func (e *DiffError) Error() string {
	return "cannot differentiate: " + e.Detail
}

// IntegrationError reports a failure while producing a definite integral,
// typically because no antiderivative could be found for the integrand.
type IntegrationError struct {
	Detail string
}

func (e *IntegrationError) Error() string {
	return "cannot integrate: " + e.Detail
}

// UndefinedExprError reports an indeterminate form such as 0^0. It is
// shared by the evaluator and the constant-folding rules of the
// simplifier.
type UndefinedExprError struct {
	Form string
}

func (e *UndefinedExprError) Error() string {
	return "undefined expression: " + e.Form
}
