package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	Unknown Kind = iota

	// lexical
	InvalidCharacter
	InvalidToken

	// syntactic
	InvalidNumber
	InvalidIdentifier
	StrayLeftParen
	StrayRightParen
	UnexpectedEof

	// evaluation
	InvalidPrefix
	InvalidOperator
	NullExpression
	CannotCompare
	VariableNotPresent
	NonexistentKey
	IsAVariable
	IsAFunction
	WrongArgumentCount
	CannotIsolate
	NestingTooDeep

	// resource
	FailedToAllocate
	FailedToReallocate
	UnableToOpenFile
	FileClosed

	// numeric domain
	NumberIsNaN
	NumberIsInfinity
)

var (
	kindNames = []string{
		Unknown:            "unknown error",
		InvalidCharacter:   "invalid character",
		InvalidToken:       "invalid token",
		InvalidNumber:      "invalid number",
		InvalidIdentifier:  "invalid identifier",
		StrayLeftParen:     "stray left parenthesis",
		StrayRightParen:    "stray right parenthesis",
		UnexpectedEof:      "unexpected end of input",
		InvalidPrefix:      "invalid prefix",
		InvalidOperator:    "invalid operator",
		NullExpression:     "null expression",
		CannotCompare:      "cannot compare",
		VariableNotPresent: "variable not present",
		NonexistentKey:     "nonexistent key",
		IsAVariable:        "is a variable",
		IsAFunction:        "is a function",
		WrongArgumentCount: "wrong argument count",
		CannotIsolate:      "cannot isolate",
		NestingTooDeep:     "nesting too deep",
		FailedToAllocate:   "failed to allocate",
		FailedToReallocate: "failed to reallocate",
		UnableToOpenFile:   "unable to open file",
		FileClosed:         "file closed",
		NumberIsNaN:        "number is NaN",
		NumberIsInfinity:   "number is infinity",
	}
)

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the concrete error carried through every package; Msg holds the
// detail and is prefixed with the component that failed (parser:, evaluate:).
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Kind)
}

func New(k Kind, msg string) error {
	return errors.WithStack(&Error{Kind: k, Msg: msg})
}

func Errorf(k Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: k, Msg: fmt.Sprintf(format, args...)})
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
