// Package nameless defines the nameless-form AST produced by lang/resolver:
// every variable reference has been classified as a reference to the current
// procedure's local stack slot, one of its captured values, or a top-level
// global, and every procedure literal carries an explicit recipe for
// building its closure's captures at the point it is created.
package nameless

import "github.com/mna/letpl/lang/token"

// Expr is a node in the nameless-form AST.
type Expr interface {
	exprNode()
	Pos() token.Pos
}

// CaptureSpec describes where a single slot of a newly created closure's
// capture vector comes from, relative to the *enclosing* procedure's frame
// at the point the Proc expression is evaluated.
type CaptureSpec struct {
	// FromCapture is true if this slot is copied from the enclosing
	// procedure's own captures (FromLocal otherwise, copied from the
	// enclosing procedure's locals).
	FromCapture bool
	Index       int
}

type (
	// LiteralInt is an integer literal.
	LiteralInt struct {
		TokPos token.Pos
		Value  int64
	}

	// LiteralBool is a boolean literal.
	LiteralBool struct {
		TokPos token.Pos
		Value  bool
	}

	// Local refers to the slot at Offset in the current frame's stack,
	// relative to the frame's base.
	Local struct {
		TokPos token.Pos
		Offset int
	}

	// Capture refers to slot Offset of the currently executing procedure's
	// capture vector.
	Capture struct {
		TokPos token.Pos
		Offset int
	}

	// Global refers to the absolute value-stack slot Offset, where a Let at
	// the outermost scope left its bound value; there is no separate global
	// table.
	Global struct {
		TokPos token.Pos
		Offset int
	}

	// Subtract is binary subtraction.
	Subtract struct {
		MinusPos token.Pos
		Left     Expr
		Right    Expr
	}

	// Negate is unary negation.
	Negate struct {
		MinusPos token.Pos
		Operand  Expr
	}

	// IsZero is the zero? predicate.
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

	// Let evaluates Expr, binds it, then evaluates Body with that binding
	// visible. If Global is false, the binding is a local stack slot that is
	// discarded once Body has been evaluated (see lang/compiler's Slide).  If
	// Global is true, Expr was bound at the outermost scope (outside any
	// proc): its value stays on the virtual machine's stack for the
	// remainder of the program, addressed by the Global nodes that refer to
	// it, and is never discarded.
	Let struct {
		KwPos  token.Pos
		Expr   Expr
		Body   Expr
		Global bool
	}

	// Proc is a procedure literal. Captures describes how to build its
	// closure's capture vector from the enclosing frame at the point this
	// node is evaluated; Body is compiled as the entry point of a brand new
	// frame whose slot 0 is the called procedure's own value and slot 1 is
	// its argument, per the virtual machine's calling convention (see
	// lang/resolver and lang/machine).
	Proc struct {
		KwPos    token.Pos
		Captures []CaptureSpec
		Body     Expr
	}

	// Call applies Proc to Arg.
	Call struct {
		LparenPos token.Pos
		Proc      Expr
		Arg       Expr
	}

	// Assert checks Test is true before evaluating Body.
	Assert struct {
		KwPos token.Pos
		Line  int
		Test  Expr
		Body  Expr
	}
)

func (e *LiteralInt) exprNode()  {}
func (e *LiteralBool) exprNode() {}
func (e *Local) exprNode()       {}
func (e *Capture) exprNode()     {}
func (e *Global) exprNode()      {}
func (e *Subtract) exprNode()    {}
func (e *Negate) exprNode()      {}
func (e *IsZero) exprNode()      {}
func (e *If) exprNode()          {}
func (e *Let) exprNode()         {}
func (e *Proc) exprNode()        {}
func (e *Call) exprNode()        {}
func (e *Assert) exprNode()      {}

func (e *LiteralInt) Pos() token.Pos  { return e.TokPos }
func (e *LiteralBool) Pos() token.Pos { return e.TokPos }
func (e *Local) Pos() token.Pos       { return e.TokPos }
func (e *Capture) Pos() token.Pos     { return e.TokPos }
func (e *Global) Pos() token.Pos      { return e.TokPos }
func (e *Subtract) Pos() token.Pos    { return e.MinusPos }
func (e *Negate) Pos() token.Pos      { return e.MinusPos }
func (e *IsZero) Pos() token.Pos      { return e.KwPos }
func (e *If) Pos() token.Pos          { return e.KwPos }
func (e *Let) Pos() token.Pos         { return e.KwPos }
func (e *Proc) Pos() token.Pos        { return e.KwPos }
func (e *Call) Pos() token.Pos        { return e.LparenPos }
func (e *Assert) Pos() token.Pos      { return e.KwPos }
