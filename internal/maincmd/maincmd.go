// Package maincmd implements the letpl command-line driver: a REPL and
// single-file runner, plus a handful of pipeline-stage debugging commands,
// built on the github.com/mna/mainer argument-parsing and process lifecycle
// library.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/letpl/internal/letplerr"
	"github.com/mna/mainer"
)

const binName = "letpl"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and runtime for the letpl programming language.

With no <command>, runs <path> if given, or starts an interactive REPL
reading expressions from standard input.

The <command> can be one of:
       run                       Compile and execute <path> (the default).
       tokenize                  Print the tokens produced by the scanner.
       parse                     Print the named-form AST.
       resolve                   Print the nameless-form AST.
       compile                   Print the compiled bytecode.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -c --config <path>        Load run-time resource limits from a TOML
                                 file.
       -t --with-type            Also print the result's type after running.

More information on the %[1]s repository:
       https://github.com/mna/letpl
`, binName)
)

// Cmd is the letpl command-line entry point.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help     bool   `flag:"h,help"`
	Version  bool   `flag:"v,version"`
	Config   string `flag:"c,config"`
	WithType bool   `flag:"t,with-type"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	cmdName := "run"
	rest := c.args
	if len(c.args) > 0 {
		if _, isCmd := buildCmds(c)[c.args[0]]; isCmd {
			cmdName = c.args[0]
			rest = c.args[1:]
		}
	}

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	c.args = rest

	if cmdName != "run" && len(rest) == 0 {
		return errors.New(cmdName + ": a file path is required")
	}
	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %s\n", err)
	}
	return err
}

// Main parses args, dispatches to the selected command, and returns the
// process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		var lerr letplerr.Error
		if errors.As(err, &lerr) {
			return mainer.ExitCode(lerr.ExitCode())
		}
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds reflects over v's methods to find the subcommands: those taking
// a context.Context, a mainer.Stdio and a []string, and returning an error.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
