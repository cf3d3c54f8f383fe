package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

// Parse prints the named-form AST and inferred type for the given file.
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}
	e, typ, lerr := parseChecked(args[0], b)
	if lerr != nil {
		return printError(stdio, lerr)
	}
	fmt.Fprintf(stdio.Stdout, "%#v\n", e)
	fmt.Fprintf(stdio.Stdout, "type: %s\n", typ)
	return nil
}
