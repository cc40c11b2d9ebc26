package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/parser/token"
)

const eof = -1

type Position struct {
	Filename string
	Line     int
	Column   int
}

func (pos Position) String() string {
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
}

type ScanCtx struct {
	Token      rune
	Error      error
	Position   Position
	Identifier string
	Number     string // lexeme, converted by the parser at its precision
}

// Scanner splits input into tokens. Runes read past the end of a token are
// pushed back, so a token never depends on how the reader buffers its input.
type Scanner struct {
	rr       io.RuneReader
	filename string
	unread   []rune
	line     int
	column   int
	prevCol  int
	err      error
	done     bool
	buffer   strings.Builder
}

func (s *Scanner) Init(rr io.RuneReader, fn string) {
	*s = Scanner{
		rr:       rr,
		filename: fn,
		line:     1,
	}
}

func (s *Scanner) position() Position {
	return Position{Filename: s.filename, Line: s.line, Column: s.column + 1}
}

func (s *Scanner) readRune() rune {
	var r rune
	if n := len(s.unread); n > 0 {
		r = s.unread[n-1]
		s.unread = s.unread[:n-1]
	} else if s.done {
		return eof
	} else {
		var err error
		r, _, err = s.rr.ReadRune()
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			s.done = true
			return eof
		}
	}

	if r == '\n' {
		s.prevCol = s.column
		s.line += 1
		s.column = 0
	} else {
		s.column += 1
	}
	return r
}

func (s *Scanner) unreadRune(r rune) {
	if r == eof {
		return
	}
	if r == '\n' {
		s.line -= 1
		s.column = s.prevCol
	} else {
		s.column -= 1
	}
	s.unread = append(s.unread, r)
}

func (s *Scanner) Scan(sctx *ScanCtx) rune {
	sctx.Token = s.scan(sctx)
	return sctx.Token
}

func (s *Scanner) scan(sctx *ScanCtx) rune {
	for {
		sctx.Position = s.position()
		r := s.readRune()
		switch {
		case r == eof:
			if s.err != nil {
				return s.readError(sctx)
			}
			return token.EOF
		case r == '\n':
			return token.Newline
		case r == ';':
			return token.EndOfStatement
		case r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v':
			continue
		case r == '#':
			s.skipComment()
			continue
		case isLetter(r):
			return s.scanIdentifier(r, sctx)
		case isDigit(r) || r == '.':
			return s.scanNumber(r, sctx)
		case token.IsOperator(r) || r == token.LParen || r == token.RParen || r == token.Comma:
			return r
		}

		sctx.Error = errs.Errorf(errs.InvalidCharacter, "scanner: %s: %q", sctx.Position, r)
		return token.Error
	}
}

func (s *Scanner) readError(sctx *ScanCtx) rune {
	if errors.Is(s.err, fs.ErrClosed) {
		sctx.Error = errs.Errorf(errs.FileClosed, "scanner: %s: %s", sctx.Position, s.err)
	} else {
		sctx.Error = errs.Errorf(errs.UnableToOpenFile, "scanner: %s: %s", sctx.Position,
			s.err)
	}
	return token.Error
}

func (s *Scanner) skipComment() {
	for {
		r := s.readRune()
		if r == eof {
			return
		} else if r == '\n' {
			s.unreadRune(r)
			return
		}
	}
}

func isLetter(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// scanIdentifier takes letters and underscores; digits belong to the
// identifier only after an underscore, so x2 scans as x followed by 2.
func (s *Scanner) scanIdentifier(r rune, sctx *ScanCtx) rune {
	s.buffer.Reset()
	s.buffer.WriteRune(r)

	subscript := r == '_'
	for {
		r = s.readRune()
		if isLetter(r) {
			subscript = r == '_'
		} else if !isDigit(r) || !subscript {
			break
		}
		s.buffer.WriteRune(r)
	}
	s.unreadRune(r)

	sctx.Identifier = s.buffer.String()
	return token.Identifier
}

func (s *Scanner) scanDigits() rune {
	for {
		r := s.readRune()
		if !isDigit(r) {
			return r
		}
		s.buffer.WriteRune(r)
	}
}

func (s *Scanner) scanNumber(r rune, sctx *ScanCtx) rune {
	s.buffer.Reset()

	if r != '.' {
		s.buffer.WriteRune(r)
		r = s.scanDigits()
	}
	if r == '.' {
		s.buffer.WriteRune(r)
		r = s.readRune()
		if !isDigit(r) {
			return s.numberError(sctx, r)
		}
		s.buffer.WriteRune(r)
		r = s.scanDigits()
		if r == '.' {
			return s.numberError(sctx, r)
		}
	}

	if r == 'e' || r == 'E' {
		e := r
		r = s.readRune()
		if isDigit(r) {
			s.buffer.WriteRune(e)
			s.buffer.WriteRune(r)
			r = s.scanDigits()
		} else if r == '-' || r == '+' {
			sign := r
			r = s.readRune()
			if isDigit(r) {
				s.buffer.WriteRune(e)
				s.buffer.WriteRune(sign)
				s.buffer.WriteRune(r)
				r = s.scanDigits()
			} else {
				// 1e-x is 1 * e - x
				s.unreadRune(r)
				s.unreadRune(sign)
				r = e
			}
		} else {
			s.unreadRune(r)
			r = e
		}
	}
	s.unreadRune(r)

	sctx.Number = s.buffer.String()
	return token.Number
}

func (s *Scanner) numberError(sctx *ScanCtx, r rune) rune {
	if r != eof {
		s.buffer.WriteRune(r)
	}
	sctx.Error = errs.Errorf(errs.InvalidNumber, "scanner: %s: %q", sctx.Position,
		s.buffer.String())
	return token.Error
}
