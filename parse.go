package calcium

import (
	"fmt"
	"strconv"
)

// Parse turns an infix expression string into an expression tree.
//
// Grammar, lowest precedence first:
//
//	expression := term (('+' | '-') term)*
//	term       := power (('*' | '/') power)*
//	power      := unary ('^' power)?
//	unary      := '-' unary | factor
//	factor     := number | constant | function '(' expression ')'
//	            | variable | '(' expression ')'
//
// '+' '-' '*' '/' associate left, '^' associates right. Unary minus binds
// tighter than '^', so -2^2 parses as (-2)^2 = 4.
func Parse(input string) (Expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q after expression", tok.lit)}
	}
	return e, nil
}

// MustParse is Parse for known-good inputs; it panics on error.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type tokenType int

const (
	tokEOF tokenType = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	typ tokenType
	lit string
	pos int
}

func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			if i < len(input) && input[i] == '.' {
				i++
				for i < len(input) && input[i] >= '0' && input[i] <= '9' {
					i++
				}
			}
			lit := input[start:i]
			if lit == "." {
				return nil, &ParseError{Pos: start, Msg: "malformed number"}
			}
			tokens = append(tokens, token{typ: tokNumber, lit: lit, pos: start})
		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{typ: tokIdent, lit: input[start:i], pos: start})
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			tokens = append(tokens, token{typ: tokOp, lit: string(c), pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{typ: tokLParen, lit: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{typ: tokRParen, lit: ")", pos: i})
			i++
		case c == ',':
			tokens = append(tokens, token{typ: tokComma, lit: ",", pos: i})
			i++
		default:
			return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	tokens = append(tokens, token{typ: tokEOF, pos: len(input)})
	return tokens, nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) acceptOp(lit string) bool {
	tok := p.peek()
	if tok.typ == tokOp && tok.lit == lit {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.acceptOp("+"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Add(left, right)
		case p.acceptOp("-"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Sub(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.acceptOp("*"):
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = Mul(left, right)
		case p.acceptOp("/"):
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = Div(left, right)
		default:
			return left, nil
		}
	}
}

// parsePower takes its base through parseUnary, so a leading minus binds
// tighter than '^' and -2^2 means (-2)^2. Right recursion keeps '^'
// right-associative.
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.acceptOp("^") {
		return base, nil
	}
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	if c, ok := base.(*ConstantRef); ok && c.Name == ConstE {
		return ExpOf(exp), nil
	}
	return Pow(base, exp), nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.acceptOp("-") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(operand), nil
	}
	return p.parseFactor()
}

func (p *parser) parseFactor() (Expr, error) {
	tok := p.next()
	switch tok.typ {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.lit, 64)
		if err != nil {
			return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("malformed number %q", tok.lit)}
		}
		return Num(v), nil
	case tokLParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.typ != tokRParen {
			return nil, &ParseError{Pos: closing.pos, Msg: "missing closing parenthesis"}
		}
		return inner, nil
	case tokIdent:
		if tok.lit == ConstE || tok.lit == ConstPi {
			return Const(tok.lit), nil
		}
		if p.peek().typ == tokLParen {
			return p.parseCall(tok)
		}
		return Var(tok.lit), nil
	case tokEOF:
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected end of input"}
	}
	return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.lit)}
}

func (p *parser) parseCall(name token) (Expr, error) {
	if !knownFuncs[name.lit] {
		return nil, &ParseError{Pos: name.pos, Msg: fmt.Sprintf("unknown function %q", name.lit)}
	}
	p.next() // consume '('
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	closing := p.next()
	switch closing.typ {
	case tokRParen:
	case tokComma:
		return nil, &ParseError{Pos: closing.pos, Msg: fmt.Sprintf("function %q takes exactly one argument", name.lit)}
	default:
		return nil, &ParseError{Pos: closing.pos, Msg: fmt.Sprintf("missing closing parenthesis in call to %q", name.lit)}
	}
	if name.lit == "exp" {
		return ExpOf(arg), nil
	}
	return Fn(name.lit, arg), nil
}
