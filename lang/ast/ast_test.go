package ast_test

import (
	"testing"

	"github.com/mna/letpl/lang/ast"
	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "int", ast.IntType{}.String())
	assert.Equal(t, "bool", ast.BoolType{}.String())
	pt := &ast.ProcType{Param: ast.IntType{}, Result: ast.BoolType{}}
	assert.Equal(t, "(int -> bool)", pt.String())
}

func TestTypeEqual(t *testing.T) {
	assert.True(t, ast.IntType{}.Equal(ast.IntType{}))
	assert.False(t, ast.IntType{}.Equal(ast.BoolType{}))

	a := &ast.ProcType{Param: ast.IntType{}, Result: ast.IntType{}}
	b := &ast.ProcType{Param: ast.IntType{}, Result: ast.IntType{}}
	c := &ast.ProcType{Param: ast.BoolType{}, Result: ast.IntType{}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(ast.IntType{}))
}

func TestExprPos(t *testing.T) {
	li := &ast.LiteralInt{TokPos: 5, Value: 1}
	assert.Equal(t, li.TokPos, li.Pos())

	call := &ast.Call{LparenPos: 9}
	assert.Equal(t, call.LparenPos, call.Pos())
}
