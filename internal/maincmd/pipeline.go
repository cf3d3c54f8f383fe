package maincmd

import (
	"github.com/mna/letpl/internal/letplerr"
	"github.com/mna/letpl/lang/ast"
	"github.com/mna/letpl/lang/compiler"
	"github.com/mna/letpl/lang/nameless"
	"github.com/mna/letpl/lang/parser"
	"github.com/mna/letpl/lang/resolver"
	"github.com/mna/letpl/lang/typecheck"
)

// parseChecked runs the scanner, parser and type checker over src, the
// three external collaborators a resolved, compiled program depends on. A
// program the type checker rejects is reported as a name error if it
// references an undefined name, and as a type error otherwise.
func parseChecked(filename string, src []byte) (ast.Expr, ast.Type, letplerr.Error) {
	e, err := parser.Parse(filename, src)
	if err != nil {
		return nil, nil, letplerr.NewNameError(err)
	}
	t, err := typecheck.Check(e)
	if err != nil {
		if _, rerr := resolver.Resolve(e); rerr != nil {
			return nil, nil, letplerr.NewNameError(rerr)
		}
		return nil, nil, letplerr.NewTypeError(err)
	}
	return e, t, nil
}

// compileChecked runs the full pipeline (scan, parse, type check, resolve,
// compile) over src, returning the compiled chunk and the program's static
// type.
func compileChecked(filename string, src []byte) (*compiler.Chunk, ast.Type, letplerr.Error) {
	e, t, lerr := parseChecked(filename, src)
	if lerr != nil {
		return nil, nil, lerr
	}
	nl, err := resolveChecked(e)
	if err != nil {
		return nil, nil, err
	}
	return compiler.Compile(nl), t, nil
}

func resolveChecked(e ast.Expr) (nameless.Expr, letplerr.Error) {
	nl, err := resolver.Resolve(e)
	if err != nil {
		return nil, letplerr.NewNameError(err)
	}
	return nl, nil
}
