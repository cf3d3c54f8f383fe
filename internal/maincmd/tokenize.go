package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/letpl/lang/scanner"
	"github.com/mna/mainer"
)

// Tokenize prints the tokens the scanner produces for the given file.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}
	toks, err := scanner.ScanAll(args[0], b)
	if err != nil {
		return printError(stdio, err)
	}
	for _, tv := range toks {
		line, col := tv.Pos.LineCol()
		fmt.Fprintf(stdio.Stdout, "%d:%d\t%s\t%q\n", line, col, tv.Tok, tv.Lit)
	}
	return nil
}
