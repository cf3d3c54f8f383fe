package machine

import (
	"context"
	"fmt"

	"github.com/mna/letpl/lang/compiler"
)

// Thread configures and runs a single execution of a compiled program. A
// zero or negative value for either resource-limit field means "no limit".
type Thread struct {
	// MaxSteps bounds the number of instructions executed before Run gives up
	// and returns an error. Zero means unlimited.
	MaxSteps int

	// MaxCallStackDepth bounds the number of nested (non-tail) Call frames.
	// Zero means unlimited.
	MaxCallStackDepth int
}

// Run executes chunk and returns the value of the program, or an error if
// execution fails or ctx is already canceled when Run is called. ctx is not
// checked again once execution has started.
func (th *Thread) Run(ctx context.Context, chunk *compiler.Chunk) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}
	return run(th, chunk)
}
