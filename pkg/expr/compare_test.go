package expr_test

import (
	"testing"

	"github.com/leftmike/algebra/pkg/expr"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		o    expr.Ordering
	}{
		{"2", "4", expr.Less},
		{"4", "2", expr.Greater},
		{"10", "10", expr.Equal},
		{"10", "10.000", expr.Equal},
		{"-3", "2", expr.Less},
		{"-3", "-20", expr.Greater},
		{"-0", "0", expr.Equal},
		{"0.25", "0.3", expr.Less},
		{"x + 5", "1", expr.Incomparable},
		{"x", "x", expr.Equal},
		{"x", "y", expr.Incomparable},
		{"2 * x", "2x", expr.Equal},
		{"x * 2", "2 * x", expr.Equal},
		{"x - 2", "2 - x", expr.Incomparable},
		{"x / 2", "x / 2", expr.Equal},
		{"y * (x2) + x ^ 4", "x ^ 4 + y * (2 * x)", expr.Equal},
		{"f(x, 1)", "f(x, 1)", expr.Equal},
		{"f(x, 1)", "f(x)", expr.Incomparable},
		{"f(x)", "g(x)", expr.Incomparable},
		{"-x", "-x", expr.Equal},
		{"-x", "x", expr.Incomparable},
		{"+x", "x", expr.Equal},
	}

	for _, c := range cases {
		o := expr.Compare(mustParse(t, c.a), mustParse(t, c.b))
		if o != c.o {
			t.Errorf("Compare(%q, %q) got %s want %s", c.a, c.b, o, c.o)
		}
	}

	if o := expr.Compare(nil, expr.Var("x")); o != expr.Incomparable {
		t.Errorf("Compare(nil, x) got %s want %s", o, expr.Incomparable)
	}
}

func TestCompareDecimal(t *testing.T) {
	cases := []struct {
		x, y string
		c    int
	}{
		{"1", "1", 0},
		{"1", "2", -1},
		{"10", "9", 1},
		{"9.5", "10", -1},
		{"1.50", "1.5", 0},
		{"0012", "12", 0},
		{"-1", "1", -1},
		{"-1.5", "-1.25", -1},
		{"0", "-0.0", 0},
		{"0.001", "0.0009", 1},
	}

	for _, c := range cases {
		r := expr.CompareDecimal(c.x, c.y)
		if r != c.c {
			t.Errorf("CompareDecimal(%s, %s) got %d want %d", c.x, c.y, r, c.c)
		}
	}
}

func TestCompareStructure(t *testing.T) {
	cases := []struct {
		a, b string
		same bool
	}{
		{"1", "2", true},
		{"x + 1", "x + 7.5", true},
		{"x + 1", "1 + x", true},
		{"x + 1", "y + 1", false},
		{"x - 1", "1 - x", false},
		{"x ^ 2 * 3", "x ^ 5 * 3", true},
		{"f(x, 2)", "f(x, 3)", true},
		{"f(x, 2)", "f(x)", false},
		{"-2 * x", "3 * x", true},
		{"x", "x * 1", false},
	}

	for _, c := range cases {
		same := expr.CompareStructure(mustParse(t, c.a), mustParse(t, c.b))
		if same != c.same {
			t.Errorf("CompareStructure(%q, %q) got %v want %v", c.a, c.b, same, c.same)
		}
	}
}
