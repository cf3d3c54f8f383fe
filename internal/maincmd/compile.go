package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/letpl/lang/compiler"
	"github.com/mna/mainer"
)

// Compile prints the disassembled bytecode for the given file.
func (c *Cmd) Compile(_ context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}
	chunk, _, lerr := compileChecked(args[0], b)
	if lerr != nil {
		return printError(stdio, lerr)
	}
	fmt.Fprint(stdio.Stdout, compiler.Disassemble(chunk))
	return nil
}
