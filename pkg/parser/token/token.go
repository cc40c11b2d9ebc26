package token

import (
	"fmt"
)

const (
	EOF = -(iota + 1)
	Error
	Identifier
	Number
	EndOfStatement
	Newline
)

const (
	LParen    = '('
	RParen    = ')'
	Comma     = ','
	Colon     = ':'
	Equal     = '='
	Less      = '<'
	Greater   = '>'
	Plus      = '+'
	Minus     = '-'
	Star      = '*'
	Slash     = '/'
	Caret     = '^'
	Backslash = '\\'
)

var (
	tokens = map[rune]string{
		EOF:            "end of input",
		Error:          "error",
		Identifier:     "identifier",
		Number:         "number",
		EndOfStatement: "end of statement (;)",
		Newline:        "newline",
	}
)

func Format(r rune) string {
	if r < 0 {
		if s, ok := tokens[r]; ok {
			return s
		}
		return fmt.Sprintf("token(%d)", int(r))
	}
	return fmt.Sprintf("%c", r)
}

// IsOperator reports whether r is a single character operator token.
func IsOperator(r rune) bool {
	switch r {
	case Colon, Equal, Less, Greater, Plus, Minus, Star, Slash, Caret, Backslash:
		return true
	}
	return false
}
