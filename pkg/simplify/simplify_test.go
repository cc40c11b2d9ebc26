package simplify_test

import (
	"testing"

	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
	"github.com/leftmike/algebra/pkg/simplify"
	"github.com/leftmike/algebra/pkg/testutil"
)

func TestSimplify(t *testing.T) {
	cases := []struct {
		s, r string
	}{
		{"x * x", "x ^ 2"},
		{"x + x", "x * 2"},
		{"x * x * x", "x ^ 3"},
		{"x + x + x", "x * 3"},
		{"x * 1 + 0", "x"},
		{"1 * x ^ 1", "x"},
		{"x / 1 - 0", "x"},
		{"x ^ 2 + 3x + 2", "(x + 2) * (x + 1)"},
		{"x ^ 2 - 1", "x ^ 2 - 1"},
		{"x * x + 2x + 1", "(x + 1) ^ 2"},
		{"x ^ 2 - 5x", "x * (x - 5)"},
		{"2x ^ 2 - 2", "2 * x ^ 2 - 2"},
		{"2x ^ 2 + 2x - 4", "(x + 2) * (x - 1) * 2"},
		{"x ^ 2 + 1 + x", "x ^ 2 + 1 + x"},
		{"2 * (x + 1)", "2 * x + 2"},
		{"(y - 1) * 3", "y * 3 - 3"},
		{"x * (y + 1)", "x * y + x"},
		{"x * (x + 1)", "x * (x + 1)"},
		{"(x + 1) * (y + 1)", "x * y + x + y + 1"},
		{"(a + b) * (c + d)", "a * c + a * d + b * c + b * d"},
		{"(x - 1) * (y + 2)", "x * y + x * 2 - y - 2"},
		{"(x + 1) * (x - 1)", "(x + 1) * (x - 1)"},
		{"sin(x * x)", "sin(x ^ 2)"},
		{"2 + 3", "5"},
	}

	for _, c := range cases {
		e := testutil.MustParse(t, c.s)
		if err := simplify.Simplify(e); err != nil {
			t.Errorf("Simplify(%q) failed with %s", c.s, err)
		} else if r := e.String(); r != c.r {
			t.Errorf("Simplify(%q) got %s want %s", c.s, r, c.r)
		}
	}
}

func TestSimplifyCompare(t *testing.T) {
	e := testutil.MustParse(t, "3 + x * x * x * 3")
	if err := simplify.Simplify(e); err != nil {
		t.Fatalf("Simplify() failed with %s", err)
	}

	want := testutil.MustParse(t, "3 + (x ^ 3) * 3")
	if expr.Compare(e, want) != expr.Equal {
		t.Errorf("Simplify() got %s want %s", e, want)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	cases := []string{
		"x * x",
		"3 + x * x * x * 3",
		"x ^ 2 + 3x + 2",
		"x * (y + 1)",
		"(x + 1) * (y - 1)",
		"2 * (x + 1) * (x - 1)",
		"(x + y) * (x - y)",
		"x + x * 2 + x ^ 2",
		"f(x * x, y + y)",
	}

	for _, c := range cases {
		e := testutil.MustParse(t, c)
		if err := simplify.Simplify(e); err != nil {
			t.Errorf("Simplify(%q) failed with %s", c, err)
			continue
		}
		again := e.Copy()
		if err := simplify.Simplify(again); err != nil {
			t.Errorf("Simplify(Simplify(%q)) failed with %s", c, err)
			continue
		}
		if expr.Compare(e, again) != expr.Equal || !expr.CompareStructure(e, again) {
			t.Errorf("Simplify(Simplify(%q)) got %s want %s", c, again, e)
		}
	}
}

func TestAdd(t *testing.T) {
	prec := number.DefaultPrec
	x := func() *expr.Expr { return expr.Var("x") }
	times := func(e *expr.Expr, n int64) *expr.Expr {
		return expr.Operator(expr.MultiplyOp, e, expr.Int(n, prec))
	}

	cases := []struct {
		a, b *expr.Expr
		r    string
	}{
		{expr.Int(2, prec), expr.Int(3, prec), "5"},
		{times(x(), 2), x(), "x * 3"},
		{x(), x(), "x * 2"},
		{times(x(), 2), times(x(), -2), "0"},
		{times(x(), 2), times(x(), -1), "x"},
		{expr.Operator(expr.MultiplyOp, expr.Int(4, prec), x()), times(x(), 3), "x * 7"},
		{x(), expr.Var("y"), "x + y"},
		{x(), expr.Int(1, prec), "x + 1"},
	}

	for _, c := range cases {
		s := c.a.String() + " + " + c.b.String()
		r, err := simplify.Add(c.a, c.b)
		if err != nil {
			t.Errorf("Add(%s) failed with %s", s, err)
		} else if r.String() != c.r {
			t.Errorf("Add(%s) got %s want %s", s, r, c.r)
		}
	}
}
