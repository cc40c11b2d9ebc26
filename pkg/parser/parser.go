package parser

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
	"github.com/leftmike/algebra/pkg/parser/scanner"
	"github.com/leftmike/algebra/pkg/parser/token"
)

const lookBackAmount = 3

type Parser struct {
	scanner   scanner.Scanner
	lookBack  [lookBackAmount]scanner.ScanCtx
	sctx      *scanner.ScanCtx // = &lookBack[current]
	current   uint
	unscanned uint
	failed    bool
	prec      uint
	depth     int
	parens    int
}

func NewParser(rr io.RuneReader, fn string, prec uint) *Parser {
	p := Parser{
		prec: prec,
	}
	p.scanner.Init(rr, fn)
	p.sctx = &p.lookBack[0]
	return &p
}

// ParseString parses s as a single expression.
func ParseString(s string, prec uint) (*expr.Expr, error) {
	return NewParser(strings.NewReader(s), "expr", prec).ParseExpr()
}

func isEndOfStatement(r rune) bool {
	return r == token.EOF || r == token.EndOfStatement || r == token.Newline
}

// Parse returns the next statement; statements end at a newline or a ;. Empty
// statements are skipped and io.EOF is returned once the input is exhausted.
// After an error, the next call resumes at the following statement.
func (p *Parser) Parse() (e *expr.Expr, err error) {
	if p.failed {
		for {
			t, err := p.scanRune()
			if err != nil {
				return nil, err
			} else if t == token.EOF {
				return nil, io.EOF
			} else if t == token.EndOfStatement || t == token.Newline {
				break
			}
		}
		p.failed = false
	}

	for {
		t, err := p.scanRune()
		if err != nil {
			p.failed = true
			return nil, err
		} else if t == token.EOF {
			return nil, io.EOF
		} else if t != token.EndOfStatement && t != token.Newline {
			break
		}
	}
	p.unscan()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			e = nil
			p.failed = !isEndOfStatement(p.sctx.Token)
		}
	}()

	p.depth = 0
	p.parens = 0
	e = p.parseExpr(expr.MinPrecedence)
	p.expectEndOfStatement()
	return
}

// ParseAll returns every statement in the input, stopping at the first error.
func (p *Parser) ParseAll() (expr.List, error) {
	var l expr.List
	for {
		e, err := p.Parse()
		if err == io.EOF {
			return l, nil
		} else if err != nil {
			return nil, err
		}
		l.Append(e)
	}
}

// ParseExpr parses the whole input as one expression.
func (p *Parser) ParseExpr() (e *expr.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			e = nil
		}
	}()

	for p.maybeToken(token.Newline) {
	}
	if p.maybeToken(token.EOF) {
		p.error(errs.NullExpression, "empty input")
	}

	p.depth = 0
	p.parens = 0
	e = p.parseExpr(expr.MinPrecedence)
	for {
		r := p.scan()
		if r == token.EOF {
			break
		} else if r != token.Newline && r != token.EndOfStatement {
			p.unexpected(r)
		}
	}
	return
}

func (p *Parser) error(kind errs.Kind, msg string) {
	panic(errs.Errorf(kind, "parser: %s: %s", p.sctx.Position, msg))
}

func (p *Parser) scanRune() (rune, error) {
	for {
		p.current = (p.current + 1) % lookBackAmount
		p.sctx = &p.lookBack[p.current]

		if p.unscanned > 0 {
			p.unscanned -= 1
		} else {
			p.scanner.Scan(p.sctx)
			if p.sctx.Token == token.Error {
				return 0, p.sctx.Error
			}
		}
		if p.sctx.Token != token.Newline || p.parens == 0 {
			return p.sctx.Token, nil
		}
	}
}

func (p *Parser) scan() rune {
	r, err := p.scanRune()
	if err != nil {
		panic(err)
	}
	return r
}

func (p *Parser) unscan() {
	p.unscanned += 1
	if p.unscanned > lookBackAmount {
		panic("parser: too much lookback")
	}
	if p.current == 0 {
		p.current = lookBackAmount - 1
	} else {
		p.current -= 1
	}
	p.sctx = &p.lookBack[p.current]
}

func (p *Parser) got() string {
	switch p.sctx.Token {
	case token.Error:
		return fmt.Sprintf("error %s", p.sctx.Error.Error())
	case token.Identifier:
		return fmt.Sprintf("identifier %s", p.sctx.Identifier)
	case token.Number:
		return fmt.Sprintf("number %s", p.sctx.Number)
	}

	return token.Format(p.sctx.Token)
}

func (p *Parser) maybeToken(mr rune) bool {
	if p.scan() == mr {
		return true
	}
	p.unscan()
	return false
}

func (p *Parser) expectTokens(kind errs.Kind, tokens ...rune) rune {
	t := p.scan()
	for _, r := range tokens {
		if t == r {
			return r
		}
	}

	var msg string
	for i, r := range tokens {
		if i > 0 && i == len(tokens)-1 {
			msg += " or "
		} else if i > 0 {
			msg += ", "
		}
		msg += token.Format(r)
	}

	p.error(kind, fmt.Sprintf("expected %s, got %s", msg, p.got()))
	return 0
}

func (p *Parser) expectEndOfStatement() {
	r := p.scan()
	if !isEndOfStatement(r) {
		p.unexpected(r)
	}
}

func (p *Parser) unexpected(r rune) {
	if r == token.RParen {
		p.error(errs.StrayRightParen, "unexpected )")
	}
	p.error(errs.InvalidToken, fmt.Sprintf("expected the end of the statement, got %s",
		p.got()))
}

func (p *Parser) enter() {
	p.depth += 1
	if p.depth > expr.MaxDepth {
		p.error(errs.NestingTooDeep, fmt.Sprintf("more than %d levels", expr.MaxDepth))
	}
}

func (p *Parser) leave() {
	p.depth -= 1
}

/*
expr = operand [op expr ...]
operand = ('+' | '-') operand
    | primary [primary ...]
primary = number
    | identifier
    | identifier '(' [expr [',' ...]] ')'
    | '(' expr ')'
op = ':' | '=' | '<' | '>' | '+' | '-' | '*' | '/' | '^' | '\'
*/

func (p *Parser) parseExpr(minPrec int) *expr.Expr {
	p.enter()
	defer p.leave()

	e := p.parseOperand()
	for {
		op, ok := p.optionalBinaryOp()
		if !ok {
			return e
		}
		prec := op.Precedence()
		if prec < minPrec {
			p.unscan()
			return e
		}
		e = expr.Operator(op, e, p.parseExpr(prec+1))
	}
}

func (p *Parser) optionalBinaryOp() (expr.Op, bool) {
	r := p.scan()
	if token.IsOperator(r) {
		if op, ok := expr.OpFromRune(r); ok {
			return op, true
		}
	}

	p.unscan()
	return 0, false
}

func (p *Parser) parseOperand() *expr.Expr {
	r := p.scan()
	switch r {
	case token.Plus:
		return expr.Prefix(expr.AddOp, p.parseExpr(expr.PrimaryPrecedence))
	case token.Minus:
		return expr.Prefix(expr.SubtractOp, p.parseExpr(expr.PrimaryPrecedence))
	case token.Number, token.Identifier, token.LParen:
		p.unscan()
		return p.parsePrimary()
	case token.RParen:
		p.error(errs.StrayRightParen, "unexpected )")
	case token.EOF, token.EndOfStatement, token.Newline:
		p.error(errs.UnexpectedEof, fmt.Sprintf("expected an expression, got %s", p.got()))
	}

	p.error(errs.InvalidToken, fmt.Sprintf("expected an expression, got %s", p.got()))
	return nil
}

func (p *Parser) startsPrimary() bool {
	r := p.scan()
	p.unscan()
	return r == token.Number || r == token.Identifier || r == token.LParen
}

func (p *Parser) parsePrimary() *expr.Expr {
	p.enter()
	defer p.leave()

	var e *expr.Expr
	switch p.scan() {
	case token.Number:
		n, err := number.Parse(p.sctx.Number, p.prec)
		if err != nil {
			p.error(errs.InvalidNumber, p.sctx.Number)
		}
		e = expr.Num(n)
	case token.Identifier:
		name := p.sctx.Identifier
		if p.maybeToken(token.LParen) {
			e = p.parseCall(name)
		} else {
			e = expr.Var(name)
		}
	case token.LParen:
		e = p.parseGroup()
	default:
		p.error(errs.InvalidToken, fmt.Sprintf("expected an expression, got %s", p.got()))
	}

	// 9x is 9 * x and 10 x^y is 10 * (x^y)
	if p.startsPrimary() {
		e = expr.Operator(expr.MultiplyOp, e, p.parseExpr(expr.ImplicitMulRightPrec))
	}
	return e
}

func (p *Parser) parseGroup() *expr.Expr {
	p.parens += 1
	if p.maybeToken(token.RParen) {
		p.error(errs.NullExpression, "empty parentheses")
	}
	e := p.parseExpr(expr.MinPrecedence)
	p.expectTokens(errs.StrayLeftParen, token.RParen)
	p.parens -= 1
	return e
}

func (p *Parser) parseCall(name string) *expr.Expr {
	p.parens += 1
	e := expr.Function(name)
	if !p.maybeToken(token.RParen) {
		for {
			e.Args.Append(p.parseExpr(expr.MinPrecedence))
			if p.expectTokens(errs.StrayLeftParen, token.Comma, token.RParen) == token.RParen {
				break
			}
		}
	}
	p.parens -= 1
	return e
}
