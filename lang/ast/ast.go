// Package ast defines the types used to represent the named-form abstract
// syntax tree of a letpl program, as produced by lang/parser and consumed by
// lang/typecheck and lang/resolver.
package ast

import "github.com/mna/letpl/lang/token"

// Type represents a letpl type: int, bool, or a procedure type (T1 -> T2).
// It is a closed sum - Equal is structural, comparing Proc types recursively.
type Type interface {
	typeNode()
	String() string
	// Equal reports whether t and other denote the same type.
	Equal(other Type) bool
}

type (
	// IntType is the type of integer values.
	IntType struct{}

	// BoolType is the type of boolean values.
	BoolType struct{}

	// ProcType is the type of a procedure taking a Param of type Param and
	// returning a value of type Result.
	ProcType struct {
		Param  Type
		Result Type
	}
)

func (IntType) typeNode()   {}
func (BoolType) typeNode()  {}
func (*ProcType) typeNode() {}

func (IntType) String() string  { return "int" }
func (BoolType) String() string { return "bool" }
func (t *ProcType) String() string {
	return "(" + t.Param.String() + " -> " + t.Result.String() + ")"
}

func (IntType) Equal(other Type) bool {
	_, ok := other.(IntType)
	return ok
}

func (BoolType) Equal(other Type) bool {
	_, ok := other.(BoolType)
	return ok
}

func (t *ProcType) Equal(other Type) bool {
	o, ok := other.(*ProcType)
	if !ok {
		return false
	}
	return t.Param.Equal(o.Param) && t.Result.Equal(o.Result)
}

// Param is a single formal parameter of a procedure: a name and its
// declared type.
type Param struct {
	Name string
	Type Type
}

// Expr represents an expression in the named-form AST. It is a closed sum
// matching every production letpl's grammar can produce.
type Expr interface {
	exprNode()
	// Pos returns the source position most representative of the expression,
	// used for error reporting.
	Pos() token.Pos
}

type (
	// LiteralInt is an integer literal, e.g. 42.
	LiteralInt struct {
		TokPos token.Pos
		Value  int64
	}

	// LiteralBool is a boolean literal, true or false.
	LiteralBool struct {
		TokPos token.Pos
		Value  bool
	}

	// Name is a reference to a bound identifier.
	Name struct {
		TokPos token.Pos
		Ident  string
	}

	// Subtract is the binary subtraction -(e1, e2).
	Subtract struct {
		MinusPos token.Pos
		Left     Expr
		Right    Expr
	}

	// Negate is the unary negation -(e).
	Negate struct {
		MinusPos token.Pos
		Operand  Expr
	}

	// IsZero is the predicate zero?(e).
	IsZero struct {
		KwPos   token.Pos
		Operand Expr
	}

	// If is a conditional expression.
	If struct {
		KwPos       token.Pos
		Test        Expr
		Consequent  Expr
		Alternative Expr
	}

	// Let binds Name to the value of Expr in the scope of Body.
	Let struct {
		KwPos token.Pos
		Name  string
		Expr  Expr
		Body  Expr
	}

	// LetRec declares a single, possibly self-recursive, procedure and
	// evaluates Body in a scope where Name is bound to it.
	LetRec struct {
		KwPos      token.Pos
		ResultType Type
		Name       string
		Param      Param
		ProcBody   Expr
		Body       Expr
	}

	// Proc is a procedure literal (lambda) of exactly one parameter.
	Proc struct {
		KwPos token.Pos
		Param Param
		Body  Expr
	}

	// Call applies Proc to Arg.
	Call struct {
		LparenPos token.Pos
		Proc      Expr
		Arg       Expr
	}

	// Assert checks that Test evaluates to true before evaluating Body. Line
	// records the source line of the "assert" keyword, for the error message
	// letplerr produces when the assertion fails at run time.
	Assert struct {
		KwPos token.Pos
		Line  int
		Test  Expr
		Body  Expr
	}
)

func (e *LiteralInt) exprNode()  {}
func (e *LiteralBool) exprNode() {}
func (e *Name) exprNode()        {}
func (e *Subtract) exprNode()    {}
func (e *Negate) exprNode()      {}
func (e *IsZero) exprNode()      {}
func (e *If) exprNode()          {}
func (e *Let) exprNode()         {}
func (e *LetRec) exprNode()      {}
func (e *Proc) exprNode()        {}
func (e *Call) exprNode()        {}
func (e *Assert) exprNode()      {}

func (e *LiteralInt) Pos() token.Pos  { return e.TokPos }
func (e *LiteralBool) Pos() token.Pos { return e.TokPos }
func (e *Name) Pos() token.Pos        { return e.TokPos }
func (e *Subtract) Pos() token.Pos    { return e.MinusPos }
func (e *Negate) Pos() token.Pos      { return e.MinusPos }
func (e *IsZero) Pos() token.Pos      { return e.KwPos }
func (e *If) Pos() token.Pos          { return e.KwPos }
func (e *Let) Pos() token.Pos         { return e.KwPos }
func (e *LetRec) Pos() token.Pos      { return e.KwPos }
func (e *Proc) Pos() token.Pos        { return e.KwPos }
func (e *Call) Pos() token.Pos        { return e.LparenPos }
func (e *Assert) Pos() token.Pos      { return e.KwPos }
