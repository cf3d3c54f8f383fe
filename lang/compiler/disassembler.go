package compiler

import (
	"fmt"
	"strings"
)

// Disassemble renders c as human-readable text, one instruction per line,
// for debugging and golden-file testing.
func Disassemble(c *Chunk) string {
	var b strings.Builder
	for addr, op := range c.Ops {
		fmt.Fprintf(&b, "%04d  %s\n", addr, disassembleOp(c, op))
	}
	return b.String()
}

func disassembleOp(c *Chunk, op Op) string {
	switch op := op.(type) {
	case *PushConst:
		return fmt.Sprintf("PUSH_CONST   %d (%d)", op.Index, c.Constants[op.Index])
	case *PushBool:
		return fmt.Sprintf("PUSH_BOOL    %v", op.Value)
	case *PushLocal:
		return fmt.Sprintf("PUSH_LOCAL   %d", op.Offset)
	case *PushCapture:
		return fmt.Sprintf("PUSH_CAPTURE %d", op.Offset)
	case *PushGlobal:
		return fmt.Sprintf("PUSH_GLOBAL  %d", op.Offset)
	case *MakeProc:
		return fmt.Sprintf("MAKE_PROC    addr=%d captures=%d", op.Address, len(op.Captures))
	case *Subtract:
		return "SUBTRACT"
	case *Negate:
		return "NEGATE"
	case *IsZero:
		return "IS_ZERO"
	case *Jump:
		return fmt.Sprintf("JUMP         %d", op.Addr)
	case *JumpTrue:
		return fmt.Sprintf("JUMP_TRUE    %d", op.Addr)
	case *Slide:
		return fmt.Sprintf("SLIDE        %d", op.Count)
	case *Call:
		return "CALL"
	case *TailCall:
		return "TAIL_CALL"
	case *Return:
		return "RETURN"
	case *Assert:
		return fmt.Sprintf("ASSERT       line %d", op.Line)
	default:
		return fmt.Sprintf("<unknown op %T>", op)
	}
}
