package compiler

import "github.com/mna/letpl/lang/nameless"

// Op is one instruction of a compiled Chunk. It is a closed sum modeled
// after the named-struct-per-variant style lang/ast uses for expressions,
// rather than the packed-byte/varint encoding of a CFG-based bytecode: the
// compiled program is a flat, linear sequence of Ops, with no basic blocks
// to thread together.
type Op interface {
	opNode()
}

type (
	// PushConst pushes Chunk.Constants[Index] as an integer value.
	//
	//	PushConst   //  -> n
	PushConst struct{ Index int }

	// PushBool pushes a boolean immediate.
	//
	//	PushBool   //  -> b
	PushBool struct{ Value bool }

	// PushLocal pushes the value at Offset in the current frame.
	//
	//	PushLocal   //  -> v
	PushLocal struct{ Offset int }

	// PushCapture pushes the value at Offset of the executing procedure's
	// capture vector.
	//
	//	PushCapture   //  -> v
	PushCapture struct{ Offset int }

	// PushGlobal pushes a copy of the value at the absolute stack address
	// Offset. There is no separate global table: a top-level Let leaves its
	// bound value permanently on the stack below everything else, and
	// PushGlobal is how a reference to it reaches back down for a copy.
	//
	//	PushGlobal   //  -> v
	PushGlobal struct{ Offset int }

	// MakeProc creates a procedure value whose entry point is Address,
	// building its capture vector from the current frame as described by
	// Captures.
	//
	//	MakeProc   //  -> proc
	MakeProc struct {
		Address  int
		Captures []nameless.CaptureSpec
	}

	// Subtract pops two integers and pushes their difference: the top is
	// subtracted from the second from top, which matches -(e1, e2)
	// evaluating e1 then e2.
	//
	//	Subtract   //  a b -> (a-b)
	Subtract struct{}

	// Negate pops one integer and pushes its negation.
	//
	//	Negate   //  a -> (-a)
	Negate struct{}

	// IsZero pops one integer and pushes whether it is zero.
	//
	//	IsZero   //  a -> (a==0)
	IsZero struct{}

	// Jump transfers control unconditionally to Addr.
	Jump struct{ Addr int }

	// JumpTrue pops a boolean and transfers control to Addr if it is true.
	//
	//	JumpTrue   //  b ->
	JumpTrue struct{ Addr int }

	// Slide pops the top value, discards the Count values below it, then
	// pushes the top value back. It is emitted after a Let's body when the
	// Let is compiled in operand position, to discard the Let-bound slot
	// without disturbing the result.
	Slide struct{ Count int }

	// Call leaves the procedure and its argument on the stack as slots 0 and
	// 1 of the callee's frame, pushes a new call frame, and transfers control
	// to the procedure's entry point. The callee's Return later replaces both
	// with the result.
	//
	//	Call   //  proc arg -> result
	Call struct{}

	// TailCall behaves like Call, but reuses the current call frame instead
	// of pushing a new one, truncating the stack to the current frame's base
	// first. Emitted only for a call in tail position inside a procedure
	// body, giving letpl's recursive procedures constant call-stack growth.
	//
	//	TailCall   //  proc arg ->
	TailCall struct{}

	// Return pops the result, truncates the stack to the current frame's
	// base, pushes the result back, and pops the call frame, resuming
	// execution at the caller's return address.
	//
	//	Return   //  v ->
	Return struct{}

	// Assert pops a boolean; if false, execution stops with an assertion
	// failure reporting Line.
	//
	//	Assert   //  b ->
	Assert struct{ Line int }
)

func (*PushConst) opNode()   {}
func (*PushBool) opNode()    {}
func (*PushLocal) opNode()   {}
func (*PushCapture) opNode() {}
func (*PushGlobal) opNode()  {}
func (*MakeProc) opNode()    {}
func (*Subtract) opNode()    {}
func (*Negate) opNode()      {}
func (*IsZero) opNode()      {}
func (*Jump) opNode()        {}
func (*JumpTrue) opNode()    {}
func (*Slide) opNode()       {}
func (*Call) opNode()        {}
func (*TailCall) opNode()    {}
func (*Return) opNode()      {}
func (*Assert) opNode()      {}
