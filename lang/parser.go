package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type precedence int

const (
	LOWEST precedence = iota
	PREFIX            // not x
	CALL              // f(x)
	MEMBER            // a.b
)

//nolint:gochecknoglobals
var precedences = map[TokenKind]precedence{
	DOT:    MEMBER,
	LPAREN: CALL,
	NOT:    PREFIX,
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// SyntaxError describes one unmet expectation found while parsing.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

// String formats the error as "Line[n]: message".
func (e SyntaxError) String() string {
	return fmt.Sprintf("Line[%d]: %s", e.Line, e.Message)
}

// Parser builds a [Program] from a token stream.
//
// Parsing never stops at the first problem. Each unmet expectation is
// recorded and the offending construct is dropped. A Program returned while
// [Parser.Errors] is non-empty must not be evaluated.
type Parser struct {
	l *Lexer

	cur  Token
	peek Token

	errors []SyntaxError

	prefixFns map[TokenKind]prefixParseFn
	infixFns  map[TokenKind]infixParseFn
}

// NewParser returns a Parser reading tokens from l.
func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[TokenKind]prefixParseFn{
		IDENTIFIER: p.parseIdentifier,
		NOT:        p.parseNotExpression,
	}
	p.infixFns = map[TokenKind]infixParseFn{
		DOT:    p.parseDotExpression,
		LPAREN: p.parseCallExpression,
	}

	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the recorded errors formatted as "Line[n]: message".
func (p *Parser) Errors() []string {
	out := make([]string, len(p.errors))
	for i, e := range p.errors {
		out[i] = e.String()
	}

	return out
}

// SyntaxErrors returns the recorded errors.
func (p *Parser) SyntaxErrors() []SyntaxError { return p.errors }

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() *Program {
	program := &Program{}

	for !p.curIs(EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}

		p.nextToken()
	}

	return program
}

// ParseString parses src into a Program. If any syntax error is found the
// returned error is a [*ParseError] and the Program is nil.
func ParseString(ctx context.Context, src string, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "parse start", slog.Int("bytes", len(src)))

	p := NewParser(NewLexer(src))
	program := p.ParseProgram()

	if len(p.errors) > 0 {
		err := NewParseError(p.errors, src)
		o.logger.TraceContext(ctx, "parse failed",
			slog.Int("errors", len(p.errors)),
			slog.String("first", p.errors[0].String()))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("statements", len(program.Statements)))

	return program, nil
}

// ParseReader reads all of r and parses it with [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(kind TokenKind) bool  { return p.cur.Kind == kind }
func (p *Parser) peekIs(kind TokenKind) bool { return p.peek.Kind == kind }

// expectPeek advances if the next token has the given kind and records an
// error otherwise.
func (p *Parser) expectPeek(kind TokenKind) bool {
	if p.peekIs(kind) {
		p.nextToken()

		return true
	}

	p.peekError(kind)

	return false
}

func (p *Parser) peekPrecedence() precedence {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}

	return LOWEST
}

func (p *Parser) peekError(kind TokenKind) {
	p.errors = append(p.errors, SyntaxError{
		Line:   p.peek.Line,
		Column: p.peek.Column,
		Message: fmt.Sprintf("Expected next token to be %s, got %s instead.",
			kind, p.peek.Kind),
	})
}

func (p *Parser) noPrefixError(tok Token) {
	p.errors = append(p.errors, SyntaxError{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf("No prefix parser for %s found.", tok.Kind),
	})
}

func (p *Parser) parseStatement() Statement {
	switch p.cur.Kind {
	case WHILE:
		return p.parseWhileStatement()
	case IF:
		return p.parseIfStatement()
	case EXTEND:
		return p.parseExtendStatement()
	case FUNCTION:
		if fn := p.parseFunctionStatement(); fn != nil {
			return fn
		}

		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.cur}

	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekIs(SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

// parseCondition parses "( expr ) {" leaving the current token on "{".
func (p *Parser) parseCondition() Expression {
	if !p.expectPeek(LPAREN) {
		return nil
	}

	p.nextToken()

	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}

	if !p.expectPeek(RPAREN) || !p.expectPeek(LBRACE) {
		return nil
	}

	return cond
}

func (p *Parser) parseWhileStatement() Statement {
	stmt := &WhileStatement{Token: p.cur}

	if stmt.Condition = p.parseCondition(); stmt.Condition == nil {
		return nil
	}

	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseIfStatement() Statement {
	stmt := &IfStatement{Token: p.cur}

	if stmt.Condition = p.parseCondition(); stmt.Condition == nil {
		return nil
	}

	stmt.Consequence = p.parseBlockStatement()

	if p.peekIs(ELSE) {
		p.nextToken()

		if !p.expectPeek(LBRACE) {
			return nil
		}

		stmt.Alternative = p.parseBlockStatement()
	}

	return stmt
}

func (p *Parser) parseExtendStatement() Statement {
	stmt := &ExtendStatement{Token: p.cur}

	if !p.expectPeek(IDENTIFIER) {
		return nil
	}

	stmt.Target = &Identifier{Token: p.cur, Value: p.cur.Literal}

	if !p.expectPeek(LBRACE) {
		return nil
	}

	for !p.peekIs(RBRACE) {
		if !p.expectPeek(FUNCTION) {
			return nil
		}

		fn := p.parseFunctionStatement()
		if fn == nil {
			return nil
		}

		stmt.Functions = append(stmt.Functions, fn)
	}

	p.nextToken()

	return stmt
}

func (p *Parser) parseFunctionStatement() *FunctionStatement {
	stmt := &FunctionStatement{Token: p.cur}

	if !p.expectPeek(IDENTIFIER) {
		return nil
	}

	stmt.Name = &Identifier{Token: p.cur, Value: p.cur.Literal}

	if !p.expectPeek(LPAREN) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok || !p.expectPeek(LBRACE) {
		return nil
	}

	stmt.Parameters = params
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseFunctionParameters() ([]*Identifier, bool) {
	if p.peekIs(RPAREN) {
		p.nextToken()

		return nil, true
	}

	var params []*Identifier

	for {
		if !p.expectPeek(IDENTIFIER) {
			return nil, false
		}

		params = append(params, &Identifier{Token: p.cur, Value: p.cur.Literal})

		if !p.peekIs(COMMA) {
			break
		}

		p.nextToken()
	}

	if !p.expectPeek(RPAREN) {
		return nil, false
	}

	return params, true
}

// parseBlockStatement parses statements from the current "{" through the
// matching "}". Reaching EOF first is recorded as an error.
func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.cur}

	p.nextToken()

	for !p.curIs(RBRACE) && !p.curIs(EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}

		p.nextToken()
	}

	if p.curIs(EOF) {
		p.errors = append(p.errors, SyntaxError{
			Line:   p.cur.Line,
			Column: p.cur.Column,
			Message: fmt.Sprintf("Expected next token to be %s, got %s instead.",
				RBRACE, EOF),
		})
	}

	return block
}

func (p *Parser) parseExpression(prec precedence) Expression {
	prefix := p.prefixFns[p.cur.Kind]
	if prefix == nil {
		p.noPrefixError(p.cur)

		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for !p.curIs(SEMICOLON) && prec < p.peekPrecedence() {
		infix := p.infixFns[p.peek.Kind]
		if infix == nil {
			return left
		}

		p.nextToken()

		if left = infix(left); left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseNotExpression() Expression {
	expr := &NotExpression{Token: p.cur}

	p.nextToken()

	if expr.Operand = p.parseExpression(PREFIX); expr.Operand == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseDotExpression(left Expression) Expression {
	expr := &DotExpression{Token: p.cur, Left: left}

	p.nextToken()

	if expr.Right = p.parseExpression(MEMBER); expr.Right == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseCallExpression(fn Expression) Expression {
	expr := &CallExpression{Token: p.cur, Function: fn}

	args, ok := p.parseExpressionList(RPAREN)
	if !ok {
		return nil
	}

	expr.Arguments = args

	return expr
}

func (p *Parser) parseExpressionList(end TokenKind) ([]Expression, bool) {
	if p.peekIs(end) {
		p.nextToken()

		return nil, true
	}

	var list []Expression

	p.nextToken()

	for {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil, false
		}

		list = append(list, arg)

		if !p.peekIs(COMMA) {
			break
		}

		p.nextToken()
		p.nextToken()
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}
