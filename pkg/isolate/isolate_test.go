package isolate_test

import (
	"testing"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/isolate"
	"github.com/leftmike/algebra/pkg/testutil"
)

func TestIsolate(t *testing.T) {
	cases := []struct {
		s, name, r string
	}{
		{"(0 - x) = 1", "x", "x = -1"},
		{"5 / x = 2", "x", "x = 2.5"},
		{"-8 = 2x ^ 2", "x", "x = -2"},
		{"2x + 1 = 7", "x", "x = 3"},
		{"3 = x + 1", "x", "x = 2"},
		{"x - 4", "x", "x = 4"},
		{"x / 4 = 2", "x", "x = 8"},
		{"x ^ 2 = 9", "x", "x = 3"},
		{"x \\ 3 = 2", "x", "x = 8"},
		{"2x < 6", "x", "x < 3"},
		{"x * -2 < 6", "x", "x > -3"},
		{"-2x < 6", "x", "x > -3"},
		{"10 - x > 4", "x", "x < 6"},
		{"3 > x / 2", "x", "x < 6"},
		{"6 / x < 2", "x", "x > 3"},
		{"6 / x > 2", "x", "x < 3"},
		{"1 - 6 / x > 0", "x", "x > 6"},
		{"-6 / x < -2", "x", "x < 3"},
		{"-6 / x > 2", "x", "x > -3"},
		{"e ^ x = 5", "x", "x = ln(5)"},
		{"2 ^ x = 8", "x", "x = ln(8) / ln(2)"},
		{"8 \\ x = 2", "x", "x = ln(8) / ln(2)"},
		{"ln(x) = 2", "x", "x = exp(2)"},
		{"exp(x) = 1", "x", "x = ln(1)"},
		{"sqrt(x) = 3", "x", "x = 9"},
		{"x * (x - 1) = 0", "x", "x = 0"},
		{"x : 5 - 1", "x", "x : 4"},
		{"y + 2x = 10", "x", "x = (10 - y) / 2"},
		{"f(x) + 1 = 3", "f", "f(x) = 2"},
	}

	for _, c := range cases {
		e := testutil.MustParse(t, c.s)
		if err := isolate.Isolate(e, c.name); err != nil {
			t.Errorf("Isolate(%q, %s) failed with %s", c.s, c.name, err)
		} else if r := e.String(); r != c.r {
			t.Errorf("Isolate(%q, %s) got %s want %s", c.s, c.name, r, c.r)
		}
	}
}

func TestIsolateErrors(t *testing.T) {
	cases := []struct {
		s, name string
		kind    errs.Kind
	}{
		{"y + 1 = 2", "x", errs.VariableNotPresent},
		{"x + x = 2", "x", errs.CannotIsolate},
		{"x * x = 4", "x", errs.CannotIsolate},
		{"x = 2x + 1", "x", errs.CannotIsolate},
		{"sin(x) = 1", "x", errs.CannotIsolate},
		{"log(x, 2) = 3", "x", errs.CannotIsolate},
		{"1 / x = 0", "x", errs.NumberIsInfinity},
		{"6 / x < y", "x", errs.CannotIsolate},
		{"y / x > 2", "x", errs.CannotIsolate},
		{"6 / x < 0", "x", errs.CannotIsolate},
	}

	for _, c := range cases {
		err := isolate.Isolate(testutil.MustParse(t, c.s), c.name)
		if !errs.Is(err, c.kind) {
			t.Errorf("Isolate(%q, %s) got %v want %s", c.s, c.name, err, c.kind)
		}
	}
}
