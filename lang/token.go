package lang

import (
	"maps"
	"slices"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

// Token kinds.
const (
	ILLEGAL TokenKind = iota
	EOF
	IDENTIFIER
	DOT
	LPAREN
	RPAREN
	SEMICOLON
	COMMA
	LBRACE
	RBRACE
	WHILE
	NOT
	IF
	ELSE
	FUNCTION
	EXTEND
)

//nolint:gochecknoglobals
var tokenNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	DOT:        "DOT",
	LPAREN:     "LEFT_PAREN",
	RPAREN:     "RIGHT_PAREN",
	SEMICOLON:  "SEMICOLON",
	COMMA:      "COMMA",
	LBRACE:     "LEFT_BRACE",
	RBRACE:     "RIGHT_BRACE",
	WHILE:      "WHILE",
	NOT:        "NOT",
	IF:         "IF",
	ELSE:       "ELSE",
	FUNCTION:   "FUNCTION",
	EXTEND:     "EXTEND",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}

	return "TokenKind(?)"
}

// keywords maps reserved spellings to their token kinds.
//
//nolint:gochecknoglobals
var keywords = map[string]TokenKind{
	"while":    WHILE,
	"not":      NOT,
	"if":       IF,
	"else":     ELSE,
	"function": FUNCTION,
	"extend":   EXTEND,
}

// LookupIdentifier returns the keyword kind for ident, or IDENTIFIER.
func LookupIdentifier(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}

	return IDENTIFIER
}

// Keywords returns every reserved word in sorted order.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

// IsKeyword reports whether ident is a reserved word.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]

	return ok
}

// Token is a single lexeme. Line and Column are 1-based.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
	Column  int
}
