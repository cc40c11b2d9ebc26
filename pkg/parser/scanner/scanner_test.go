package scanner_test

import (
	"bufio"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/parser/scanner"
	"github.com/leftmike/algebra/pkg/parser/token"
)

type scanned struct {
	tok  rune
	text string
}

func scanAll(t *testing.T, s *scanner.Scanner) []scanned {
	t.Helper()

	var toks []scanned
	var sctx scanner.ScanCtx
	for {
		r := s.Scan(&sctx)
		switch r {
		case token.EOF:
			return toks
		case token.Error:
			t.Fatalf("Scan() failed with %s", sctx.Error)
		case token.Identifier:
			toks = append(toks, scanned{r, sctx.Identifier})
		case token.Number:
			toks = append(toks, scanned{r, sctx.Number})
		default:
			toks = append(toks, scanned{r, ""})
		}
	}
}

func id(s string) scanned {
	return scanned{token.Identifier, s}
}

func num(s string) scanned {
	return scanned{token.Number, s}
}

func op(r rune) scanned {
	return scanned{r, ""}
}

func TestScan(t *testing.T) {
	cases := []struct {
		s    string
		toks []scanned
	}{
		{"", nil},
		{"   \t", nil},
		{"2 * 5.5", []scanned{num("2"), op('*'), num("5.5")}},
		{"9x", []scanned{num("9"), id("x")}},
		{"x2", []scanned{id("x"), num("2")}},
		{"x_10 + log_2", []scanned{id("x_10"), op('+'), id("log_2")}},
		{"a_1b", []scanned{id("a_1b")}},
		{"1e3", []scanned{num("1e3")}},
		{"3.2E-4", []scanned{num("3.2E-4")}},
		{"1E", []scanned{num("1"), id("E")}},
		{"1e-x", []scanned{num("1"), id("e"), op('-'), id("x")}},
		{".5", []scanned{num(".5")}},
		{"f(x, y): 10 x^y", []scanned{id("f"), op('('), id("x"), op(','), id("y"), op(')'),
			op(':'), num("10"), id("x"), op('^'), id("y")}},
		{"a\\2 < b > c = d / e",
			[]scanned{id("a"), op('\\'), num("2"), op('<'), id("b"), op('>'), id("c"),
				op('='), id("d"), op('/'), id("e")}},
		{"x; y\nz", []scanned{id("x"), op(token.EndOfStatement), id("y"),
			op(token.Newline), id("z")}},
		{"x # comment\ny", []scanned{id("x"), op(token.Newline), id("y")}},
	}

	for _, c := range cases {
		var s scanner.Scanner
		s.Init(strings.NewReader(c.s), "test")
		toks := scanAll(t, &s)
		if len(toks) != len(c.toks) {
			t.Errorf("Scan(%q) got %v want %v", c.s, toks, c.toks)
			continue
		}
		for i := range toks {
			if toks[i] != c.toks[i] {
				t.Errorf("Scan(%q)[%d] got %v want %v", c.s, i, toks[i], c.toks[i])
			}
		}
	}
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		s    string
		kind errs.Kind
	}{
		{"$", errs.InvalidCharacter},
		{"x @ y", errs.InvalidCharacter},
		{"1.", errs.InvalidNumber},
		{"1.x", errs.InvalidNumber},
		{"1.2.3", errs.InvalidNumber},
	}

	for _, c := range cases {
		var s scanner.Scanner
		s.Init(strings.NewReader(c.s), "test")
		var sctx scanner.ScanCtx
		for {
			r := s.Scan(&sctx)
			if r == token.Error {
				if !errs.Is(sctx.Error, c.kind) {
					t.Errorf("Scan(%q) got %s want %s", c.s, sctx.Error, c.kind)
				}
				break
			} else if r == token.EOF {
				t.Errorf("Scan(%q) did not fail", c.s)
				break
			}
		}
	}
}

func TestScanEOF(t *testing.T) {
	var s scanner.Scanner
	s.Init(strings.NewReader("x"), "test")
	var sctx scanner.ScanCtx
	s.Scan(&sctx)
	for i := 0; i < 3; i++ {
		if r := s.Scan(&sctx); r != token.EOF {
			t.Errorf("Scan() past the end got %s want %s", token.Format(r), token.Format(token.EOF))
		}
	}
}

func TestPosition(t *testing.T) {
	var s scanner.Scanner
	s.Init(strings.NewReader("x +\n  12"), "pos.alg")

	want := []string{"pos.alg:1:1", "pos.alg:1:3", "pos.alg:1:4", "pos.alg:2:3"}
	var sctx scanner.ScanCtx
	for i, w := range want {
		s.Scan(&sctx)
		if p := sctx.Position.String(); p != w {
			t.Errorf("token %d: Position got %s want %s", i, p, w)
		}
	}
}

func TestSmallReads(t *testing.T) {
	src := "12345.678e-9 * long_identifier_99 + 3.25\n"
	var s1, s2 scanner.Scanner
	s1.Init(strings.NewReader(src), "whole")
	s2.Init(bufio.NewReaderSize(iotest.OneByteReader(strings.NewReader(src)), 16), "chunked")

	a := scanAll(t, &s1)
	b := scanAll(t, &s2)
	if len(a) != len(b) {
		t.Fatalf("chunked scan got %v want %v", b, a)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunked scan [%d] got %v want %v", i, b[i], a[i])
		}
	}
}
