package maincmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/letpl/internal/config"
	"github.com/mna/letpl/internal/letplerr"
	"github.com/mna/letpl/lang/machine"
	"github.com/mna/mainer"
)

// Run compiles and executes a single file, or starts a REPL if no file is
// given.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	limits, err := config.Load(c.Config)
	if err != nil {
		return printError(stdio, err)
	}
	th := &machine.Thread{MaxSteps: limits.MaxSteps, MaxCallStackDepth: limits.MaxCallStackDepth}

	if len(args) == 0 {
		return c.repl(ctx, stdio, th)
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}
	return c.runSource(ctx, stdio, th, args[0], b)
}

func (c *Cmd) runSource(ctx context.Context, stdio mainer.Stdio, th *machine.Thread, filename string, src []byte) error {
	chunk, typ, lerr := compileChecked(filename, src)
	if lerr != nil {
		return printError(stdio, lerr)
	}
	v, err := th.Run(ctx, chunk)
	if err != nil {
		var assertErr *machine.AssertionError
		if errors.As(err, &assertErr) {
			return printError(stdio, letplerr.NewAssertError(assertErr.Line))
		}
		return printError(stdio, letplerr.NewRuntimeError(err))
	}
	if c.WithType {
		fmt.Fprintf(stdio.Stdout, "%s : %s\n", v, typ)
	} else {
		fmt.Fprintf(stdio.Stdout, "%s\n", v)
	}
	return nil
}

// repl reads one expression per line from stdin, evaluating and printing
// each as it is read, until EOF.
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio, th *machine.Thread) error {
	sc := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		// errors in the REPL do not end the session; runSource has already
		// printed them.
		_ = c.runSource(ctx, stdio, th, "<stdin>", []byte(line))
	}
}
