package testutil

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

var (
	errExpectedArrow = errors.New("transcript: expected =>")
	errMissingInput  = errors.New("transcript: missing input")
)

// Case is one line of a transcript: an input and the output it should print.
type Case struct {
	Line  int
	Input string
	Want  string
}

func skipWhitespace(rs io.RuneScanner) (rune, error) {
	for {
		r, _, err := rs.ReadRune()
		if err != nil {
			return 0, err
		}
		if r == '\n' || !unicode.IsSpace(r) {
			return r, nil
		}
	}
}

func readLine(rs io.RuneScanner, r rune) (string, error) {
	var buf strings.Builder
	buf.WriteRune(r)

	for {
		r, _, err := rs.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}

		if r == '\n' {
			rs.UnreadRune()
			break
		}
		buf.WriteRune(r)
	}

	return buf.String(), nil
}

// ParseTranscript reads cases of the form
//
//	# comment
//	input => want
//
// one per line; blank lines and comments are skipped.
func ParseTranscript(rs io.RuneScanner) ([]Case, error) {
	var cases []Case
	line := 1
	for {
		r, err := skipWhitespace(rs)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if r == '\n' {
			line += 1
			continue
		}

		s, err := readLine(rs, r)
		if err != nil {
			return nil, err
		}
		if r != '#' {
			input, want, ok := strings.Cut(s, "=>")
			if !ok {
				return nil, errExpectedArrow
			}
			input = strings.TrimSpace(input)
			if input == "" {
				return nil, errMissingInput
			}
			cases = append(cases, Case{
				Line:  line,
				Input: input,
				Want:  strings.TrimSpace(want),
			})
		}
	}

	return cases, nil
}
