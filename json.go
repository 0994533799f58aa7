package calcium

import (
	"encoding/json"
	"fmt"
)

// exprJSON is the type-tagged wire form of an expression node.
type exprJSON struct {
	Type     string      `json:"type"`
	Value    *float64    `json:"value,omitempty"`
	Name     string      `json:"name,omitempty"`
	Op       string      `json:"op,omitempty"`
	Left     *exprJSON   `json:"left,omitempty"`
	Right    *exprJSON   `json:"right,omitempty"`
	Operand  *exprJSON   `json:"operand,omitempty"`
	Args     []*exprJSON `json:"args,omitempty"`
	Exponent *exprJSON   `json:"exponent,omitempty"`
}

// MarshalExpr encodes e as type-tagged JSON.
func MarshalExpr(e Expr) ([]byte, error) {
	return json.Marshal(toJSON(e))
}

// UnmarshalExpr decodes an expression previously encoded by MarshalExpr.
func UnmarshalExpr(data []byte) (Expr, error) {
	var node exprJSON
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return fromJSON(&node)
}

func toJSON(e Expr) *exprJSON {
	switch v := e.(type) {
	case *Number:
		val := v.Value
		return &exprJSON{Type: "number", Value: &val}
	case *Variable:
		return &exprJSON{Type: "variable", Name: v.Name}
	case *Binary:
		return &exprJSON{Type: "binary", Op: v.Op.String(), Left: toJSON(v.Left), Right: toJSON(v.Right)}
	case *Unary:
		return &exprJSON{Type: "unary", Op: v.Op.String(), Operand: toJSON(v.Operand)}
	case *Call:
		args := make([]*exprJSON, len(v.Args))
		for i, a := range v.Args {
			args[i] = toJSON(a)
		}
		return &exprJSON{Type: "call", Name: v.Name, Args: args}
	case *ConstantRef:
		return &exprJSON{Type: "constant", Name: v.Name}
	case *Exponential:
		return &exprJSON{Type: "exp", Exponent: toJSON(v.Exponent)}
	}
	return nil
}

func fromJSON(node *exprJSON) (Expr, error) {
	if node == nil {
		return nil, fmt.Errorf("calcium: missing expression node")
	}
	switch node.Type {
	case "number":
		if node.Value == nil {
			return nil, fmt.Errorf("calcium: number node without value")
		}
		return Num(*node.Value), nil
	case "variable":
		if !varNameRe.MatchString(node.Name) {
			return nil, fmt.Errorf("calcium: invalid variable name %q", node.Name)
		}
		return Var(node.Name), nil
	case "binary":
		op, err := binaryOpFrom(node.Op)
		if err != nil {
			return nil, err
		}
		left, err := fromJSON(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromJSON(node.Right)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil
	case "unary":
		if node.Op != "-" {
			return nil, fmt.Errorf("calcium: unknown unary operator %q", node.Op)
		}
		operand, err := fromJSON(node.Operand)
		if err != nil {
			return nil, err
		}
		return Neg(operand), nil
	case "call":
		if len(node.Args) != 1 {
			return nil, fmt.Errorf("calcium: call node %q needs exactly one argument", node.Name)
		}
		arg, err := fromJSON(node.Args[0])
		if err != nil {
			return nil, err
		}
		if !knownFuncs[node.Name] {
			return nil, fmt.Errorf("calcium: unknown function %q", node.Name)
		}
		return Fn(node.Name, arg), nil
	case "constant":
		if node.Name != ConstE && node.Name != ConstPi {
			return nil, fmt.Errorf("calcium: unknown constant %q", node.Name)
		}
		return Const(node.Name), nil
	case "exp":
		exponent, err := fromJSON(node.Exponent)
		if err != nil {
			return nil, err
		}
		return ExpOf(exponent), nil
	}
	return nil, fmt.Errorf("calcium: unknown node type %q", node.Type)
}

func binaryOpFrom(s string) (BinaryOp, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "^":
		return OpPow, nil
	}
	return 0, fmt.Errorf("calcium: unknown binary operator %q", s)
}
