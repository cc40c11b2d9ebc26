package expr_test

import (
	"testing"

	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
	"github.com/leftmike/algebra/pkg/parser"
)

func mustParse(t *testing.T, s string) *expr.Expr {
	t.Helper()

	e, err := parser.ParseString(s, number.DefaultPrec)
	if err != nil {
		t.Fatalf("ParseString(%q) failed with %s", s, err)
	}
	return e
}

func TestApproximate(t *testing.T) {
	cases := []struct {
		s, r string
		tol  int
	}{
		{"1.5", "1.5", 12},
		{"123", "123", 12},
		{"0.1000000000000000000000001", "0.1", 12},
		{"0.1000000000000000000000001", "0.1000000000000000000000001", 0},
		{"0.10000001", "0.10000001", 12},
		{"0.10000001", "0.1", 4},
		{"2.9999999999999999999", "3", 12},
		{"9.99999999999999", "10", 12},
		{"0.99999999999999", "1", 12},
		{"-1.99999999999999", "-2", 12},
		{"-0.0000000000000001", "0", 12},
		{"12.3499999999999999", "12.35", 12},
	}

	for _, c := range cases {
		r := expr.Approximate(c.s, c.tol)
		if r != c.r {
			t.Errorf("Approximate(%q, %d) got %s want %s", c.s, c.tol, r, c.r)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		s, r string
	}{
		{"(x + 1) * 2", "(x + 1) * 2"},
		{"x - (y - z)", "x - (y - z)"},
		{"(x - y) - z", "x - y - z"},
		{"2 ^ (3 ^ 2)", "2 ^ (3 ^ 2)"},
		{"(2 ^ 3) ^ 2", "2 ^ 3 ^ 2"},
		{"-(x + 1)", "-(x + 1)"},
		{"x * (y / z)", "x * (y / z)"},
		{"x < (y = z)", "x < (y = z)"},
		{"f(x + 1, g(y))", "f(x + 1, g(y))"},
		{"rand()", "rand()"},
	}

	for _, c := range cases {
		e := mustParse(t, c.s)
		if r := e.String(); r != c.r {
			t.Errorf("Format(%q) got %s want %s", c.s, r, c.r)
		}
	}

	var e *expr.Expr
	if e.String() != "<nil>" {
		t.Errorf("Format(nil) got %s", e.String())
	}
}

func TestFormatOptions(t *testing.T) {
	cases := []struct {
		s    string
		opts expr.FormatOptions
		r    string
	}{
		{"x + 1", expr.FormatOptions{}, "x+1"},
		{"f(x, y)", expr.FormatOptions{Delimiter: ","}, "f(x,y)"},
		{"sin(x) * 2", expr.FormatOptions{Spacing: " ", OmitCallParens: true}, "sin x * 2"},
		{"sin(x + 1)", expr.FormatOptions{OmitCallParens: true}, "sin(x+1)"},
		{"0.30000000000000000000001", expr.FormatOptions{}, "0.30000000000000000000001"},
		{"0.30000000000000000000001", expr.FormatOptions{Tolerance: 8}, "0.3"},
	}

	for _, c := range cases {
		e := mustParse(t, c.s)
		if r := expr.Format(e, c.opts); r != c.r {
			t.Errorf("Format(%q, %+v) got %s want %s", c.s, c.opts, r, c.r)
		}
	}
}

func TestFormatComplex(t *testing.T) {
	prec := number.DefaultPrec
	cases := []struct {
		re, im int64
		r      string
	}{
		{1, -2, "(1-2i)"},
		{1, 2, "(1+2i)"},
		{0, 3, "(3i)"},
		{5, 0, "5"},
	}

	for _, c := range cases {
		e := expr.Num(number.Complex(number.FromInt64(c.re, prec), number.FromInt64(c.im, prec)))
		if r := e.String(); r != c.r {
			t.Errorf("Format(%d, %d) got %s want %s", c.re, c.im, r, c.r)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"x - (y - z)",
		"2 ^ (3 ^ 2)",
		"-x ^ 2",
		"-(x ^ 2)",
		"f(x, y) : 10 x ^ y",
		"27 \\ 3 < x",
		"y * (x2) + x ^ 4",
		"sin(cos(x) / 2) = 0.5",
	}

	for _, c := range cases {
		e := mustParse(t, c)
		r := mustParse(t, e.String())
		if expr.Compare(e, r) != expr.Equal || !expr.CompareStructure(e, r) {
			t.Errorf("Parse(Format(%q)) got %s want %s", c, r, e)
		}
	}
}
