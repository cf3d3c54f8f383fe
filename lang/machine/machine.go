package machine

import (
	"fmt"

	"github.com/mna/letpl/lang/compiler"
)

// run executes chunk to completion starting at address 0 and returns the
// single value left on top of the stack. It is the core dispatch loop, and it
// enforces the step and call-stack depth limits configured on th;
// Thread.Run is its exported entry point.
func run(th *Thread, chunk *compiler.Chunk) (Value, error) {
	var (
		stack     []Value
		callStack []callFrame
		captures  []Value
		frameBase int
		pc        int
		steps     int
	)

	for pc < len(chunk.Ops) {
		if th.MaxSteps > 0 {
			steps++
			if steps > th.MaxSteps {
				return nil, fmt.Errorf("step limit of %d exceeded", th.MaxSteps)
			}
		}

		op := chunk.Ops[pc]
		pc++

		switch op := op.(type) {
		case *compiler.PushConst:
			stack = append(stack, Integer(chunk.Constants[op.Index]))

		case *compiler.PushBool:
			stack = append(stack, Boolean(op.Value))

		case *compiler.PushLocal:
			stack = append(stack, stack[frameBase+op.Offset])

		case *compiler.PushCapture:
			stack = append(stack, captures[op.Offset])

		case *compiler.PushGlobal:
			if op.Offset >= len(stack) {
				return nil, fmt.Errorf("undefined global at offset %d", op.Offset)
			}
			stack = append(stack, stack[op.Offset])

		case *compiler.MakeProc:
			caps := make([]Value, len(op.Captures))
			for i, spec := range op.Captures {
				if spec.FromCapture {
					caps[i] = captures[spec.Index]
				} else {
					caps[i] = stack[frameBase+spec.Index]
				}
			}
			stack = append(stack, &Procedure{Address: op.Address, Captures: caps})

		case *compiler.Subtract:
			right, err := AsInteger(stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			left, err := AsInteger(stack[len(stack)-2])
			if err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-2]
			stack = append(stack, Integer(left-right))

		case *compiler.Negate:
			v, err := AsInteger(stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			stack[len(stack)-1] = Integer(-v)

		case *compiler.IsZero:
			v, err := AsInteger(stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			stack[len(stack)-1] = Boolean(v == 0)

		case *compiler.Jump:
			pc = op.Addr

		case *compiler.JumpTrue:
			b, err := AsBoolean(stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-1]
			if bool(b) {
				pc = op.Addr
			}

		case *compiler.Slide:
			result := stack[len(stack)-1]
			stack = stack[:len(stack)-1-op.Count]
			stack = append(stack, result)

		case *compiler.Call:
			proc, err := AsProcedure(stack[len(stack)-2])
			if err != nil {
				return nil, err
			}
			if th.MaxCallStackDepth > 0 && len(callStack) >= th.MaxCallStackDepth {
				return nil, fmt.Errorf("call stack depth of %d exceeded", th.MaxCallStackDepth)
			}
			callStack = append(callStack, callFrame{
				returnAddress:   pc,
				callerFrameBase: frameBase,
				callerCaptures:  captures,
			})
			frameBase = len(stack) - 2
			captures = proc.Captures
			pc = proc.Address

		case *compiler.TailCall:
			proc, err := AsProcedure(stack[len(stack)-2])
			if err != nil {
				return nil, err
			}
			procVal, argVal := stack[len(stack)-2], stack[len(stack)-1]
			stack = append(stack[:frameBase], procVal, argVal)
			frameBase = len(stack) - 2
			captures = proc.Captures
			pc = proc.Address
			// callStack is untouched: the tail call reuses the current frame's
			// return address, giving letpl's recursive procedures constant
			// call-stack growth.

		case *compiler.Return:
			result := stack[len(stack)-1]
			stack = append(stack[:frameBase], result)
			if len(callStack) == 0 {
				return nil, fmt.Errorf("return with no active call frame")
			}
			top := callStack[len(callStack)-1]
			callStack = callStack[:len(callStack)-1]
			pc = top.returnAddress
			frameBase = top.callerFrameBase
			captures = top.callerCaptures

		case *compiler.Assert:
			b, err := AsBoolean(stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-1]
			if !bool(b) {
				return nil, &AssertionError{Line: op.Line}
			}

		default:
			return nil, fmt.Errorf("machine: unhandled op %T", op)
		}
	}

	if len(stack) == 0 {
		return nil, fmt.Errorf("machine: program produced no value")
	}
	return stack[len(stack)-1], nil
}

// AssertionError is returned when an Assert instruction's condition is
// false at run time.
type AssertionError struct {
	Line int
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assert at line %d", e.Line)
}
