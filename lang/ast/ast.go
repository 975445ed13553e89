// Package ast defines the abstract syntax of the analysed while-language.
//
// Expressions and statements are closed sum types: every variant is declared
// in this package and consumers switch exhaustively over them.
package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errPatternMatch = func(v interface{}) error {
	return fmt.Errorf("invalid pattern match: %v %T", v, v)
}

// ErrUnsupportedStatement is raised when a statement variant reaches code
// that cannot handle it, e.g. a structural statement inside a basic block.
var ErrUnsupportedStatement = errors.New("unsupported statement")

// Node is implemented by every expression and statement.
type Node interface {
	fmt.Stringer
	node()
}

type (
	// Expression is one of Literal, Input, Var, Add or Multiply.
	// All variants are comparable values, so == is structural equality.
	Expression interface {
		Node
		Hash() uint32
		Equal(Expression) bool
		isExpression()
	}

	Literal struct {
		Value int
	}

	// Input reads an integer from the environment.
	Input struct{}

	Var struct {
		Name string
	}

	Add struct {
		Lhs, Rhs Expression
	}

	Multiply struct {
		Lhs, Rhs Expression
	}
)

type (
	// Statement is one of Assign, Output, Conditional, While or Block.
	Statement interface {
		Node
		isStatement()
	}

	// AtomicStatement is a statement without nested control flow.
	AtomicStatement interface {
		Statement
		isAtomic()
	}

	Assign struct {
		Var string
		Rhs Expression
	}

	Output struct {
		Expr Expression
	}

	Conditional struct {
		Guard Expression
		Then  Block
		Else  Block
	}

	While struct {
		Guard Expression
		Body  Block
	}

	Block struct {
		Statements []Statement
	}
)

func (Literal) node()  {}
func (Input) node()    {}
func (Var) node()      {}
func (Add) node()      {}
func (Multiply) node() {}

func (Literal) isExpression()  {}
func (Input) isExpression()    {}
func (Var) isExpression()      {}
func (Add) isExpression()      {}
func (Multiply) isExpression() {}

func (Assign) node()      {}
func (Output) node()      {}
func (Conditional) node() {}
func (While) node()       {}
func (Block) node()       {}

func (Assign) isStatement()      {}
func (Output) isStatement()      {}
func (Conditional) isStatement() {}
func (While) isStatement()       {}
func (Block) isStatement()       {}

func (Assign) isAtomic() {}
func (Output) isAtomic() {}

func (e Literal) Equal(o Expression) bool  { return Expression(e) == o }
func (e Input) Equal(o Expression) bool    { return Expression(e) == o }
func (e Var) Equal(o Expression) bool      { return Expression(e) == o }
func (e Add) Equal(o Expression) bool      { return Expression(e) == o }
func (e Multiply) Equal(o Expression) bool { return Expression(e) == o }

func (e Literal) String() string {
	return strconv.Itoa(e.Value)
}

func (Input) String() string {
	return "input"
}

func (e Var) String() string {
	return e.Name
}

func (e Add) String() string {
	return "(" + e.Lhs.String() + " + " + e.Rhs.String() + ")"
}

func (e Multiply) String() string {
	return "(" + e.Lhs.String() + " * " + e.Rhs.String() + ")"
}

func (s Assign) String() string {
	return s.Var + " := " + s.Rhs.String()
}

func (s Output) String() string {
	return "output(" + s.Expr.String() + ")"
}

func (s Conditional) String() string {
	return "if (" + s.Guard.String() + ") then {\n" +
		s.Then.String() +
		"\n} else {\n" +
		s.Else.String() +
		"\n}"
}

func (s While) String() string {
	return "while (" + s.Guard.String() + ") {\n" + s.Body.String() + "\n}"
}

func (b Block) String() string {
	strs := make([]string, 0, len(b.Statements))
	for _, s := range b.Statements {
		strs = append(strs, s.String())
	}
	return strings.Join(strs, ";\n")
}

// Seq builds a block from the given statements.
func Seq(stmts ...Statement) Block {
	return Block{Statements: stmts}
}
