// Package parser implements a recursive-descent parser producing a
// lang/ast.Expr from letpl source text.
package parser

import (
	"fmt"
	goscanner "go/scanner"

	"github.com/mna/letpl/lang/ast"
	"github.com/mna/letpl/lang/scanner"
	"github.com/mna/letpl/lang/token"
)

// Parse parses a complete letpl program (a single expression) from src.
// filename is used only in error messages.
func Parse(filename string, src []byte) (ast.Expr, error) {
	toks, err := scanner.ScanAll(filename, src)
	if err != nil {
		return nil, err
	}
	p := &parser{filename: filename, toks: toks}
	e := p.parseExpr()
	if len(p.errs) == 0 {
		p.expect(token.EOF)
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return e, nil
}

type parser struct {
	filename string
	toks     []scanner.TokenAndValue
	idx      int
	errs     goscanner.ErrorList
}

func (p *parser) cur() scanner.TokenAndValue { return p.toks[p.idx] }

func (p *parser) advance() scanner.TokenAndValue {
	t := p.toks[p.idx]
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	return t
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	line, col := pos.LineCol()
	p.errs.Add(goscanner.Position{Filename: p.filename, Line: line, Column: col}, fmt.Sprintf(format, args...))
}

func (p *parser) expect(tok token.Token) scanner.TokenAndValue {
	t := p.cur()
	if t.Tok != tok {
		p.errorf(t.Pos, "expected %s, got %s", tok, t.Tok)
		return t
	}
	return p.advance()
}

// parseExpr parses a single expression, the top-level production of the
// grammar.
func (p *parser) parseExpr() ast.Expr {
	tv := p.cur()
	switch tv.Tok {
	case token.INT:
		p.advance()
		return &ast.LiteralInt{TokPos: tv.Pos, Value: tv.Value}

	case token.TRUE:
		p.advance()
		return &ast.LiteralBool{TokPos: tv.Pos, Value: true}

	case token.FALSE:
		p.advance()
		return &ast.LiteralBool{TokPos: tv.Pos, Value: false}

	case token.IDENT:
		p.advance()
		return &ast.Name{TokPos: tv.Pos, Ident: tv.Lit}

	case token.MINUS:
		return p.parseSubtractOrNegate()

	case token.ZERO:
		p.advance()
		p.expect(token.LPAREN)
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.IsZero{KwPos: tv.Pos, Operand: e}

	case token.IF:
		p.advance()
		test := p.parseExpr()
		p.expect(token.THEN)
		cons := p.parseExpr()
		p.expect(token.ELSE)
		alt := p.parseExpr()
		return &ast.If{KwPos: tv.Pos, Test: test, Consequent: cons, Alternative: alt}

	case token.LET:
		p.advance()
		name := p.expect(token.IDENT)
		p.expect(token.EQ)
		e := p.parseExpr()
		p.expect(token.IN)
		body := p.parseExpr()
		return &ast.Let{KwPos: tv.Pos, Name: name.Lit, Expr: e, Body: body}

	case token.LETREC:
		return p.parseLetRec(tv)

	case token.PROC:
		p.advance()
		p.expect(token.LPAREN)
		pname := p.expect(token.IDENT)
		p.expect(token.COLON)
		pt := p.parseType()
		p.expect(token.RPAREN)
		body := p.parseExpr()
		return &ast.Proc{KwPos: tv.Pos, Param: ast.Param{Name: pname.Lit, Type: pt}, Body: body}

	case token.ASSERT:
		p.advance()
		line, _ := tv.Pos.LineCol()
		test := p.parseExpr()
		p.expect(token.THEN)
		body := p.parseExpr()
		return &ast.Assert{KwPos: tv.Pos, Line: line, Test: test, Body: body}

	case token.LPAREN:
		p.advance()
		proc := p.parseExpr()
		arg := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.Call{LparenPos: tv.Pos, Proc: proc, Arg: arg}

	default:
		p.errorf(tv.Pos, "unexpected token %s", tv.Tok)
		p.advance()
		return &ast.LiteralBool{TokPos: tv.Pos, Value: false}
	}
}

// parseSubtractOrNegate disambiguates -(e1,e2) from -(e), both starting with
// MINUS LPAREN; it parses the first operand then checks for a following
// comma.
func (p *parser) parseSubtractOrNegate() ast.Expr {
	minusPos := p.cur().Pos
	p.advance()
	p.expect(token.LPAREN)
	first := p.parseExpr()
	if p.cur().Tok == token.COMMA {
		p.advance()
		second := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.Subtract{MinusPos: minusPos, Left: first, Right: second}
	}
	p.expect(token.RPAREN)
	return &ast.Negate{MinusPos: minusPos, Operand: first}
}

func (p *parser) parseLetRec(tv scanner.TokenAndValue) ast.Expr {
	p.advance()
	resultType := p.parseType()
	name := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	pname := p.expect(token.IDENT)
	p.expect(token.COLON)
	ptype := p.parseType()
	p.expect(token.RPAREN)
	procBody := p.parseExpr()
	p.expect(token.IN)
	body := p.parseExpr()
	return &ast.LetRec{
		KwPos:      tv.Pos,
		ResultType: resultType,
		Name:       name.Lit,
		Param:      ast.Param{Name: pname.Lit, Type: ptype},
		ProcBody:   procBody,
		Body:       body,
	}
}

// parseType parses a type: int | bool | ( type -> type ).
func (p *parser) parseType() ast.Type {
	tv := p.cur()
	switch tv.Tok {
	case token.INT_TYPE:
		p.advance()
		return ast.IntType{}
	case token.BOOL_TYPE:
		p.advance()
		return ast.BoolType{}
	case token.LPAREN:
		p.advance()
		param := p.parseType()
		p.expect(token.ARROW)
		result := p.parseType()
		p.expect(token.RPAREN)
		return &ast.ProcType{Param: param, Result: result}
	default:
		p.errorf(tv.Pos, "expected type, got %s", tv.Tok)
		p.advance()
		return ast.IntType{}
	}
}
