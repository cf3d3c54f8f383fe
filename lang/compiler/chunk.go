package compiler

import "github.com/dolthub/swiss"

// Chunk is a compiled program: a flat, linear sequence of Ops plus the pool
// of integer constants they reference. It supports only forward patching -
// emit a Jump or JumpTrue with a placeholder target, keep emitting code, then
// Patch once the real target address is known.
type Chunk struct {
	Ops       []Op
	Constants []int64

	constIndex *swiss.Map[int64, int]
}

// NewChunk returns an empty Chunk ready for compilation.
func NewChunk() *Chunk {
	return &Chunk{constIndex: swiss.NewMap[int64, int](8)}
}

// Emit appends op to the chunk and returns its address.
func (c *Chunk) Emit(op Op) int {
	addr := len(c.Ops)
	c.Ops = append(c.Ops, op)
	return addr
}

// NextAddress returns the address the next Emit call will use.
func (c *Chunk) NextAddress() int { return len(c.Ops) }

// Patch rewrites the jump target of the Jump or JumpTrue instruction at
// addr. It panics if the instruction at addr is not a jump, since that
// indicates a compiler bug, not a user-facing error.
func (c *Chunk) Patch(addr, target int) {
	switch op := c.Ops[addr].(type) {
	case *Jump:
		op.Addr = target
	case *JumpTrue:
		op.Addr = target
	default:
		panic("compiler: Patch called on a non-jump instruction")
	}
}

// InternConst returns the index of v in the constant pool, adding it if it
// is not already present.
func (c *Chunk) InternConst(v int64) int {
	if idx, ok := c.constIndex.Get(v); ok {
		return idx
	}
	idx := len(c.Constants)
	c.Constants = append(c.Constants, v)
	c.constIndex.Put(v, idx)
	return idx
}
