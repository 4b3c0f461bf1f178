package lang

import (
	"iter"
	"unicode/utf8"
)

const eof = -1

// Lexer produces tokens on demand from source text.
//
// Once the end of input is reached every call to [Lexer.NextToken] returns
// an EOF token.
type Lexer struct {
	input string
	pos   int  // offset of ch
	next  int  // offset after ch
	ch    rune // current character, or eof
	line  int
	col   int
}

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.read()

	return l
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	line, col := l.line, l.col

	switch l.ch {
	case eof:
		return Token{Kind: EOF, Line: line, Column: col}
	case '.':
		return l.single(DOT)
	case '(':
		return l.single(LPAREN)
	case ')':
		return l.single(RPAREN)
	case ';':
		return l.single(SEMICOLON)
	case ',':
		return l.single(COMMA)
	case '{':
		return l.single(LBRACE)
	case '}':
		return l.single(RBRACE)
	}

	if isLetter(l.ch) {
		start := l.pos
		for isLetter(l.ch) {
			l.read()
		}

		word := l.input[start:l.pos]

		return Token{Kind: LookupIdentifier(word), Literal: word, Line: line, Column: col}
	}

	return l.single(ILLEGAL)
}

// All returns an iterator over the remaining tokens up to and including the
// first EOF token.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := l.NextToken()
			if !yield(tok) || tok.Kind == EOF {
				return
			}
		}
	}
}

func (l *Lexer) single(kind TokenKind) Token {
	tok := Token{Kind: kind, Literal: string(l.ch), Line: l.line, Column: l.col}
	l.read()

	return tok
}

func (l *Lexer) read() {
	if l.next >= len(l.input) {
		if l.ch != eof {
			l.col++
		}

		l.pos = len(l.input)
		l.ch = eof

		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.next:])

	l.pos = l.next
	l.next += size
	l.ch = r
	l.col++
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t':
			l.read()

		case '\n':
			l.newline()

		case '\r':
			// CRLF counts once
			if l.next < len(l.input) && l.input[l.next] == '\n' {
				l.read()
			}

			l.newline()

		default:
			return
		}
	}
}

func (l *Lexer) newline() {
	l.read()
	l.line++
	l.col = 1
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
