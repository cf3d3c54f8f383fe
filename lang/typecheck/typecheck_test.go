package typecheck_test

import (
	"testing"

	"github.com/mna/letpl/lang/parser"
	"github.com/mna/letpl/lang/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) (string, error) {
	t.Helper()
	e, err := parser.Parse("t", []byte(src))
	require.NoError(t, err)
	ty, err := typecheck.Check(e)
	if err != nil {
		return "", err
	}
	return ty.String(), nil
}

func TestCheckValidPrograms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"42", "int"},
		{"true", "bool"},
		{"-(10,3)", "int"},
		{"-(10)", "int"},
		{"zero?(0)", "bool"},
		{"if zero?(0) then 1 else 2", "int"},
		{"let x = 1 in -(x, 1)", "int"},
		{"proc(x: int) -(x,1)", "(int -> int)"},
		{"let f = proc(x: int) -(x,1) in (f 10)", "int"},
		{"letrec int sum(n: int) if zero?(n) then 0 else -(n, -(0, (sum -(n,1)))) in (sum 5)", "int"},
		{"assert zero?(0) then 1", "int"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := check(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	cases := []string{
		"x",
		"-(true,1)",
		"zero?(true)",
		"if 1 then 1 else 2",
		"if zero?(0) then 1 else true",
		"let f = proc(x: int) x in (f true)",
		"letrec bool f(n: int) n in 1",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := check(t, src)
			assert.Error(t, err)
		})
	}
}
