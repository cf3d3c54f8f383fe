package token_test

import (
	"testing"

	"github.com/mna/letpl/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		ident string
		want  token.Token
	}{
		{"letrec", token.LETREC},
		{"zero?", token.ZERO},
		{"int", token.INT_TYPE},
		{"bool", token.BOOL_TYPE},
		{"x", token.IDENT},
		{"sum", token.IDENT},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, token.Lookup(c.ident), c.ident)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "letrec", token.LETREC.String())
	assert.Equal(t, "<invalid token>", token.Token(127).String())
}

func TestPosLineCol(t *testing.T) {
	p := token.MakePos(3, 7)
	line, col := p.LineCol()
	assert.Equal(t, 3, line)
	assert.Equal(t, 7, col)
	assert.False(t, p.Unknown())
	assert.True(t, token.Pos(0).Unknown())
}
