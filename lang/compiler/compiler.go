// Package compiler lowers a nameless-form lang/nameless.Expr to a flat
// sequence of bytecode Ops that lang/machine can execute directly.
//
// Every expression, once compiled, leaves exactly one net additional value
// on the virtual machine's stack - operands are always fully consumed by the
// instruction that uses them. There are two exceptions. A Let at the
// outermost scope (a global binding) also leaves its bound value on the
// stack, permanently, below its body's value. And inside a procedure body
// compiled in tail position, control never falls back to the point
// right after the expression: it always ends in a Return or, for a call in
// tail position, a TailCall, either of which truncates the stack back to the
// enclosing frame's base and so needs no further cleanup.
package compiler

import "github.com/mna/letpl/lang/nameless"

// pos is the position-in-control-flow of the expression currently being
// compiled, mirroring the resolver's compile-time stack simulation: it
// decides whether a Call compiles to Call or TailCall, and whether a Let
// needs an explicit Slide to discard its bound slot.
type pos int

const (
	operand pos = iota // the expression's value will be consumed by its parent
	tail               // the expression's value is the result of the enclosing procedure
)

// Compile compiles a top-level, already name-resolved expression into a
// Chunk. The top-level expression is always compiled in operand position:
// there is no enclosing procedure to return from, so the virtual machine
// simply reads the final value off the top of the stack once the chunk's
// instructions are exhausted.
func Compile(e nameless.Expr) *Chunk {
	c := NewChunk()
	compileExpr(c, e, false, operand)
	return c
}

func compileExpr(c *Chunk, e nameless.Expr, inProc bool, p pos) {
	switch e := e.(type) {
	case *nameless.LiteralInt:
		c.Emit(&PushConst{Index: c.InternConst(e.Value)})
		closeLeaf(c, inProc, p)

	case *nameless.LiteralBool:
		c.Emit(&PushBool{Value: e.Value})
		closeLeaf(c, inProc, p)

	case *nameless.Local:
		c.Emit(&PushLocal{Offset: e.Offset})
		closeLeaf(c, inProc, p)

	case *nameless.Capture:
		c.Emit(&PushCapture{Offset: e.Offset})
		closeLeaf(c, inProc, p)

	case *nameless.Global:
		c.Emit(&PushGlobal{Offset: e.Offset})
		closeLeaf(c, inProc, p)

	case *nameless.Subtract:
		compileExpr(c, e.Left, inProc, operand)
		compileExpr(c, e.Right, inProc, operand)
		c.Emit(&Subtract{})
		closeLeaf(c, inProc, p)

	case *nameless.Negate:
		compileExpr(c, e.Operand, inProc, operand)
		c.Emit(&Negate{})
		closeLeaf(c, inProc, p)

	case *nameless.IsZero:
		compileExpr(c, e.Operand, inProc, operand)
		c.Emit(&IsZero{})
		closeLeaf(c, inProc, p)

	case *nameless.If:
		compileExpr(c, e.Test, inProc, operand)
		jumpToAlt := c.Emit(&JumpTrue{})
		// false branch: alternative falls through here
		compileExpr(c, e.Alternative, inProc, p)
		jumpToEnd := c.Emit(&Jump{})
		c.Patch(jumpToAlt, c.NextAddress())
		compileExpr(c, e.Consequent, inProc, p)
		c.Patch(jumpToEnd, c.NextAddress())
		// closeLeaf is not called here: each branch above already closed
		// itself according to p.

	case *nameless.Let:
		compileExpr(c, e.Expr, inProc, operand)
		compileExpr(c, e.Body, inProc, p)
		if !e.Global && p == operand {
			c.Emit(&Slide{Count: 1})
		}
		// In tail position the enclosing Return/TailCall's truncation to the
		// frame base already discards the let-bound slot. A global binding is
		// never discarded at all: it is meant to outlive this expression, so
		// Expr's pushed value stays on the stack permanently regardless of p.

	case *nameless.Proc:
		skip := c.Emit(&Jump{})
		bodyAddr := c.NextAddress()
		compileExpr(c, e.Body, true, tail)
		c.Patch(skip, c.NextAddress())
		c.Emit(&MakeProc{Address: bodyAddr, Captures: e.Captures})
		closeLeaf(c, inProc, p)

	case *nameless.Call:
		compileExpr(c, e.Proc, inProc, operand)
		compileExpr(c, e.Arg, inProc, operand)
		if inProc && p == tail {
			c.Emit(&TailCall{})
		} else {
			c.Emit(&Call{})
		}
		// Call always leaves its result for the caller; TailCall is itself
		// terminal, so neither needs closeLeaf.

	case *nameless.Assert:
		compileExpr(c, e.Test, inProc, operand)
		c.Emit(&Assert{Line: e.Line})
		compileExpr(c, e.Body, inProc, p)

	default:
		panic("compiler: unhandled nameless expression")
	}
}

// closeLeaf emits the Return instruction required when a value-producing
// leaf instruction is compiled in tail position inside a procedure body.
// Calls close themselves (with TailCall) and are never passed through here.
func closeLeaf(c *Chunk, inProc bool, p pos) {
	if inProc && p == tail {
		c.Emit(&Return{})
	}
}
