package scanner_test

import (
	"testing"

	"github.com/mna/letpl/lang/scanner"
	"github.com/mna/letpl/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAll(t *testing.T) {
	src := `letrec int sum(n: int)
  if zero?(n) then 0 else -(n, -(0, (sum -(n,1)))) # trailing comment
in (sum 5)`

	toks, err := scanner.ScanAll("test.letpl", []byte(src))
	require.NoError(t, err)

	var kinds []token.Token
	for _, tv := range toks {
		kinds = append(kinds, tv.Tok)
	}
	assert.Equal(t, token.LETREC, kinds[0])
	assert.Equal(t, token.INT_TYPE, kinds[1])
	assert.Equal(t, token.IDENT, kinds[2])
	assert.Equal(t, token.LPAREN, kinds[3])
	assert.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestScanZeroPredicate(t *testing.T) {
	toks, err := scanner.ScanAll("t", []byte("zero?(0)"))
	require.NoError(t, err)
	assert.Equal(t, token.ZERO, toks[0].Tok)
	assert.Equal(t, "zero?", toks[0].Lit)
}

func TestScanIntLiteral(t *testing.T) {
	toks, err := scanner.ScanAll("t", []byte("42"))
	require.NoError(t, err)
	require.Equal(t, token.INT, toks[0].Tok)
	assert.EqualValues(t, 42, toks[0].Value)
}

func TestScanArrow(t *testing.T) {
	toks, err := scanner.ScanAll("t", []byte("(int -> bool)"))
	require.NoError(t, err)
	var kinds []token.Token
	for _, tv := range toks {
		kinds = append(kinds, tv.Tok)
	}
	assert.Contains(t, kinds, token.ARROW)
}

func TestScanIllegalCharacter(t *testing.T) {
	_, err := scanner.ScanAll("t", []byte("@"))
	require.Error(t, err)
}
