package expr_test

import (
	"testing"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
)

func TestFold(t *testing.T) {
	cases := []struct {
		s, r string
	}{
		{"2 + 3 * 4", "14"},
		{"x + 2 * 3", "x + 6"},
		{"-(2)", "-2"},
		{"--2", "2"},
		{"+x", "+x"},
		{"f(1 + 1, x)", "f(2, x)"},
		{"2 ^ 10", "1024"},
		{"27 \\ 3", "3"},
		{"x = 3 - 1", "x = 2"},
		{"1 / 4 - x", "0.25 - x"},
	}

	for _, c := range cases {
		e := mustParse(t, c.s)
		if err := expr.Fold(e); err != nil {
			t.Errorf("Fold(%q) failed with %s", c.s, err)
		} else if r := e.String(); r != c.r {
			t.Errorf("Fold(%q) got %s want %s", c.s, r, c.r)
		}
	}
}

func TestFoldErrors(t *testing.T) {
	cases := []struct {
		s    string
		kind errs.Kind
	}{
		{"1 / 0", errs.NumberIsInfinity},
		{"0 / 0", errs.NumberIsNaN},
		{"x + 1 / 0", errs.NumberIsInfinity},
	}

	for _, c := range cases {
		err := expr.Fold(mustParse(t, c.s))
		if !errs.Is(err, c.kind) {
			t.Errorf("Fold(%q) got %v want %s", c.s, err, c.kind)
		}
	}

	_, err := expr.Apply(expr.EqualOp, expr.Int(1, 64).Num, expr.Int(2, 64).Num)
	if !errs.Is(err, errs.InvalidOperator) {
		t.Errorf("Apply(=) got %v want %s", err, errs.InvalidOperator)
	}
	_, err = expr.Sign(expr.MultiplyOp, expr.Int(1, 64).Num)
	if !errs.Is(err, errs.InvalidPrefix) {
		t.Errorf("Sign(*) got %v want %s", err, errs.InvalidPrefix)
	}
}
