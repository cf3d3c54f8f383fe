package machine

// callFrame records what Return needs to resume the caller: where to jump
// back to, and the caller's own frame base and captures, which the callee's
// execution overwrote.
type callFrame struct {
	returnAddress   int
	callerFrameBase int
	callerCaptures  []Value
}
