// Package typecheck implements the static type checker for letpl's named
// AST. It is the last external collaborator before name resolution: the
// driver compiles an expression only after it passes Check.
package typecheck

import (
	"fmt"

	"github.com/mna/letpl/lang/ast"
)

// env is a simple association-list typing environment, independent of and
// discarded after Check returns - it has no relationship to the resolver's
// compile-time stack environment.
type env struct {
	name string
	typ  ast.Type
	next *env
}

func (e *env) lookup(name string) (ast.Type, bool) {
	for cur := e; cur != nil; cur = cur.next {
		if cur.name == name {
			return cur.typ, true
		}
	}
	return nil, false
}

func (e *env) extend(name string, typ ast.Type) *env {
	return &env{name: name, typ: typ, next: e}
}

// Check verifies that e is well-typed and returns its type.
func Check(e ast.Expr) (ast.Type, error) {
	return check(e, nil)
}

func check(e ast.Expr, en *env) (ast.Type, error) {
	switch e := e.(type) {
	case *ast.LiteralInt:
		return ast.IntType{}, nil

	case *ast.LiteralBool:
		return ast.BoolType{}, nil

	case *ast.Name:
		t, ok := en.lookup(e.Ident)
		if !ok {
			return nil, fmt.Errorf("unbound variable %q", e.Ident)
		}
		return t, nil

	case *ast.Subtract:
		if err := expect(e.Left, en, ast.IntType{}); err != nil {
			return nil, err
		}
		if err := expect(e.Right, en, ast.IntType{}); err != nil {
			return nil, err
		}
		return ast.IntType{}, nil

	case *ast.Negate:
		if err := expect(e.Operand, en, ast.IntType{}); err != nil {
			return nil, err
		}
		return ast.IntType{}, nil

	case *ast.IsZero:
		if err := expect(e.Operand, en, ast.IntType{}); err != nil {
			return nil, err
		}
		return ast.BoolType{}, nil

	case *ast.If:
		if err := expect(e.Test, en, ast.BoolType{}); err != nil {
			return nil, err
		}
		ct, err := check(e.Consequent, en)
		if err != nil {
			return nil, err
		}
		at, err := check(e.Alternative, en)
		if err != nil {
			return nil, err
		}
		if !ct.Equal(at) {
			return nil, fmt.Errorf("if branches have different types: %s vs %s", ct, at)
		}
		return ct, nil

	case *ast.Let:
		t1, err := check(e.Expr, en)
		if err != nil {
			return nil, err
		}
		return check(e.Body, en.extend(e.Name, t1))

	case *ast.LetRec:
		procType := &ast.ProcType{Param: e.Param.Type, Result: e.ResultType}
		bodyEnv := en.extend(e.Name, procType).extend(e.Param.Name, e.Param.Type)
		bt, err := check(e.ProcBody, bodyEnv)
		if err != nil {
			return nil, err
		}
		if !bt.Equal(e.ResultType) {
			return nil, fmt.Errorf("letrec %s: declared return type %s does not match body type %s", e.Name, e.ResultType, bt)
		}
		return check(e.Body, en.extend(e.Name, procType))

	case *ast.Proc:
		bt, err := check(e.Body, en.extend(e.Param.Name, e.Param.Type))
		if err != nil {
			return nil, err
		}
		return &ast.ProcType{Param: e.Param.Type, Result: bt}, nil

	case *ast.Call:
		pt, err := check(e.Proc, en)
		if err != nil {
			return nil, err
		}
		proc, ok := pt.(*ast.ProcType)
		if !ok {
			return nil, fmt.Errorf("cannot call value of type %s", pt)
		}
		if err := expect(e.Arg, en, proc.Param); err != nil {
			return nil, err
		}
		return proc.Result, nil

	case *ast.Assert:
		if err := expect(e.Test, en, ast.BoolType{}); err != nil {
			return nil, err
		}
		return check(e.Body, en)

	default:
		return nil, fmt.Errorf("typecheck: unhandled expression %T", e)
	}
}

func expect(e ast.Expr, en *env, want ast.Type) error {
	got, err := check(e, en)
	if err != nil {
		return err
	}
	if !got.Equal(want) {
		return fmt.Errorf("expected type %s, got %s", want, got)
	}
	return nil
}
