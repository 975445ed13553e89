package ast

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrMalformedProgram = errors.New("malformed program")

// Decode reads a program from its YAML representation. A program is a
// sequence of statements:
//
//   - assign: {var: x, rhs: {add: [x, 1]}}
//   - if: {guard: x, then: [...], else: [...]}
//   - while: {guard: x, body: [...]}
//   - output: x
//
// Expressions are integers, the string "input", variable names, or
// single-key mappings add/mul over a two element sequence.
func Decode(data []byte) (Block, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Block{}, fmt.Errorf("decoding program: %w", err)
	}

	if doc.Kind == 0 {
		// Empty document
		return Block{}, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Block{}, nil
		}
		root = root.Content[0]
	}

	return decodeBlock(root)
}

func malformed(n *yaml.Node, format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedProgram, n.Line, fmt.Sprintf(format, args...))
}

func decodeBlock(n *yaml.Node) (Block, error) {
	switch {
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null":
		return Block{}, nil
	case n.Kind != yaml.SequenceNode:
		return Block{}, malformed(n, "expected a sequence of statements")
	}

	stmts := make([]Statement, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := decodeStatement(item)
		if err != nil {
			return Block{}, err
		}
		stmts = append(stmts, s)
	}
	return Block{Statements: stmts}, nil
}

// singleKey deconstructs a mapping with exactly one entry.
func singleKey(n *yaml.Node) (string, *yaml.Node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, false
	}
	return n.Content[0].Value, n.Content[1], true
}

// fields collects the entries of a mapping, rejecting keys outside allowed.
func fields(n *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, malformed(n, "expected a mapping")
	}

	res := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		ok := false
		for _, a := range allowed {
			if a == key {
				ok = true
				break
			}
		}
		if !ok {
			return nil, malformed(n.Content[i], "unexpected field %q", key)
		}
		res[key] = n.Content[i+1]
	}
	return res, nil
}

func required(n *yaml.Node, fs map[string]*yaml.Node, key string) (*yaml.Node, error) {
	if v, found := fs[key]; found {
		return v, nil
	}
	return nil, malformed(n, "missing field %q", key)
}

func decodeStatement(n *yaml.Node) (Statement, error) {
	kind, body, ok := singleKey(n)
	if !ok {
		return nil, malformed(n, "expected a single-key statement mapping")
	}

	switch kind {
	case "assign":
		fs, err := fields(body, "var", "rhs")
		if err != nil {
			return nil, err
		}
		v, err := required(body, fs, "var")
		if err != nil {
			return nil, err
		}
		if v.Kind != yaml.ScalarNode || v.Value == "" {
			return nil, malformed(v, "assigned variable must be a name")
		}
		rhsNode, err := required(body, fs, "rhs")
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpression(rhsNode)
		if err != nil {
			return nil, err
		}
		return Assign{Var: v.Value, Rhs: rhs}, nil

	case "output":
		e, err := decodeExpression(body)
		if err != nil {
			return nil, err
		}
		return Output{Expr: e}, nil

	case "if":
		fs, err := fields(body, "guard", "then", "else")
		if err != nil {
			return nil, err
		}
		gNode, err := required(body, fs, "guard")
		if err != nil {
			return nil, err
		}
		guard, err := decodeExpression(gNode)
		if err != nil {
			return nil, err
		}
		var thn, els Block
		if tNode, found := fs["then"]; found {
			if thn, err = decodeBlock(tNode); err != nil {
				return nil, err
			}
		}
		if eNode, found := fs["else"]; found {
			if els, err = decodeBlock(eNode); err != nil {
				return nil, err
			}
		}
		return Conditional{Guard: guard, Then: thn, Else: els}, nil

	case "while":
		fs, err := fields(body, "guard", "body")
		if err != nil {
			return nil, err
		}
		gNode, err := required(body, fs, "guard")
		if err != nil {
			return nil, err
		}
		guard, err := decodeExpression(gNode)
		if err != nil {
			return nil, err
		}
		var loopBody Block
		if bNode, found := fs["body"]; found {
			if loopBody, err = decodeBlock(bNode); err != nil {
				return nil, err
			}
		}
		return While{Guard: guard, Body: loopBody}, nil

	case "block":
		return decodeBlock(body)
	}

	return nil, malformed(n, "unknown statement %q", kind)
}

func decodeExpression(n *yaml.Node) (Expression, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!int" {
			var v int
			if err := n.Decode(&v); err != nil {
				return nil, malformed(n, "invalid integer literal %s: %v", n.Value, err)
			}
			return Literal{Value: v}, nil
		}
		if n.ShortTag() != "!!str" || n.Value == "" {
			return nil, malformed(n, "expected an integer, input or a variable name")
		}
		if n.Value == "input" {
			return Input{}, nil
		}
		return Var{Name: n.Value}, nil

	case yaml.MappingNode:
		op, operands, ok := singleKey(n)
		if !ok {
			return nil, malformed(n, "expected a single-key expression mapping")
		}
		if operands.Kind != yaml.SequenceNode || len(operands.Content) != 2 {
			return nil, malformed(operands, "%s expects exactly two operands", op)
		}
		lhs, err := decodeExpression(operands.Content[0])
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpression(operands.Content[1])
		if err != nil {
			return nil, err
		}

		switch op {
		case "add":
			return Add{Lhs: lhs, Rhs: rhs}, nil
		case "mul":
			return Multiply{Lhs: lhs, Rhs: rhs}, nil
		}
		return nil, malformed(n, "unknown operator %q", op)
	}

	return nil, malformed(n, "expected an expression")
}
