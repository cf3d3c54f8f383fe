package machine_test

import (
	"context"
	"testing"

	"github.com/mna/letpl/lang/compiler"
	"github.com/mna/letpl/lang/machine"
	"github.com/mna/letpl/lang/parser"
	"github.com/mna/letpl/lang/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, th *machine.Thread, src string) (machine.Value, error) {
	t.Helper()
	e, err := parser.Parse("t", []byte(src))
	require.NoError(t, err)
	n, err := resolver.Resolve(e)
	require.NoError(t, err)
	chunk := compiler.Compile(n)
	return th.Run(context.Background(), chunk)
}

func TestRunSubtract(t *testing.T) {
	v, err := run(t, &machine.Thread{}, "-(10,3)")
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(7), v)
}

func TestRunNegateAndIsZero(t *testing.T) {
	v, err := run(t, &machine.Thread{}, "-(5)")
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(-5), v)

	v, err = run(t, &machine.Thread{}, "zero?(-(3,3))")
	require.NoError(t, err)
	assert.Equal(t, machine.Boolean(true), v)
}

func TestRunIfLet(t *testing.T) {
	v, err := run(t, &machine.Thread{}, "let x = 10 in if zero?(x) then 0 else -(x,1)")
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(9), v)
}

func TestRunLetRecSum(t *testing.T) {
	src := `letrec int sum(n: int)
  if zero?(n) then 0 else -(n, -(0, (sum -(n,1))))
in (sum 5)`
	v, err := run(t, &machine.Thread{}, src)
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(15), v)
}

func TestRunProcReferencingOuterGlobal(t *testing.T) {
	// x and addX are both bound at the top level, so x reaches addX's body
	// as a Global, not a captured value; PushGlobal's absolute stack address
	// must stay valid no matter how deep the call stack has grown by then.
	src := `let x = 10 in let addX = proc(y: int) -(x, -(0, y)) in (addX 5)`
	v, err := run(t, &machine.Thread{}, src)
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(15), v)
}

func TestRunProcCaptures(t *testing.T) {
	// x is bound inside the enclosing proc's body, not at the top level, so
	// it must be copied into makeAdder's closure as a genuine capture.
	src := `let makeAdder = proc(x: int) proc(y: int) -(x, -(0, y)) in ((makeAdder 10) 5)`
	v, err := run(t, &machine.Thread{}, src)
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(15), v)
}

func TestRunTailCallDoesNotGrowCallStack(t *testing.T) {
	src := `letrec int loop(n: int)
  if zero?(n) then 0 else (loop -(n,1))
in (loop 200000)`
	th := &machine.Thread{MaxCallStackDepth: 1}
	v, err := run(t, th, src)
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(0), v)
}

func TestRunNonTailCallRespectsDepthLimit(t *testing.T) {
	src := `letrec int count(n: int)
  if zero?(n) then 0 else -(1, -(0, (count -(n,1))))
in (count 10)`
	th := &machine.Thread{MaxCallStackDepth: 3}
	_, err := run(t, th, src)
	assert.Error(t, err)
}

func TestRunAssertPasses(t *testing.T) {
	v, err := run(t, &machine.Thread{}, "assert zero?(-(3,3)) then 42")
	require.NoError(t, err)
	assert.Equal(t, machine.Integer(42), v)
}

func TestRunAssertFails(t *testing.T) {
	_, err := run(t, &machine.Thread{}, "assert zero?(1) then 42")
	require.Error(t, err)
	ae, ok := err.(*machine.AssertionError)
	require.True(t, ok)
	assert.Equal(t, 1, ae.Line)
}

func TestRunStepLimit(t *testing.T) {
	src := `letrec int loop(n: int)
  if zero?(n) then 0 else (loop -(n,1))
in (loop 1000000)`
	th := &machine.Thread{MaxSteps: 10}
	_, err := run(t, th, src)
	assert.Error(t, err)
}

func TestRunTypeMismatchIsRuntimeError(t *testing.T) {
	// the typechecker would normally reject this, but the machine itself
	// must also guard against malformed chunks that reach it directly.
	c := compiler.NewChunk()
	c.Emit(&compiler.PushBool{Value: true})
	c.Emit(&compiler.PushConst{Index: c.InternConst(1)})
	c.Emit(&compiler.Subtract{})
	_, err := (&machine.Thread{}).Run(context.Background(), c)
	assert.Error(t, err)
}
