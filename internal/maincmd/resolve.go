package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

// Resolve prints the nameless-form AST for the given file.
func (c *Cmd) Resolve(_ context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}
	e, _, lerr := parseChecked(args[0], b)
	if lerr != nil {
		return printError(stdio, lerr)
	}
	nl, lerr := resolveChecked(e)
	if lerr != nil {
		return printError(stdio, lerr)
	}
	fmt.Fprintf(stdio.Stdout, "%#v\n", nl)
	return nil
}
