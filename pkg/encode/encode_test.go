package encode_test

import (
	"encoding/json"
	"testing"

	"github.com/leftmike/algebra/pkg/encode"
	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
	"github.com/leftmike/algebra/pkg/parser"
)

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"2.5",
		"x",
		"-x",
		"f(x, y) : 10 * x ^ y",
		"27 \\ 3 < y",
		"sin(x) * cos(2 * pi)",
		"rand()",
		"3 + x ^ 3 * 3",
	}

	for _, c := range cases {
		e, err := parser.ParseString(c, number.DefaultPrec)
		if err != nil {
			t.Fatalf("ParseExpr(%q) failed with %s", c, err)
		}
		b, err := encode.MarshalJSON(e)
		if err != nil {
			t.Errorf("MarshalJSON(%s) failed with %s", e, err)
			continue
		}
		if !json.Valid(b) {
			t.Errorf("MarshalJSON(%s) got invalid JSON %s", e, b)
		}
		r, err := encode.UnmarshalJSON(b, number.DefaultPrec)
		if err != nil {
			t.Errorf("UnmarshalJSON(%s) failed with %s", b, err)
		} else if r.String() != e.String() || expr.Compare(r, e) != expr.Equal {
			t.Errorf("UnmarshalJSON(%s) got %s want %s", b, r, e)
		}
	}
}

func TestComplexRoundTrip(t *testing.T) {
	e := expr.Num(number.Complex(number.FromInt64(1, number.DefaultPrec),
		number.FromInt64(-2, number.DefaultPrec)))
	b, err := encode.MarshalJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	r, err := encode.UnmarshalJSON(b, number.DefaultPrec)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsNumber() || !number.Equal(r.Num, e.Num) {
		t.Errorf("UnmarshalJSON(%s) got %s want %s", b, r, e)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		s    string
		kind errs.Kind
	}{
		{`"x"`, errs.NullExpression},
		{`{"number": "1.2.3"}`, errs.InvalidNumber},
		{`{"operator": "%", "left": {"variable": "x"}, "right": {"number": "1"}}`,
			errs.InvalidOperator},
		{`{"prefix": "*", "operand": {"variable": "x"}}`, errs.InvalidPrefix},
		{`{"operator": "+", "left": {"variable": "x"}}`, errs.NullExpression},
		{`{"unknown": 1}`, errs.InvalidToken},
		{`{`, errs.InvalidToken},
	}

	for _, c := range cases {
		_, err := encode.UnmarshalJSON([]byte(c.s), number.DefaultPrec)
		if !errs.Is(err, c.kind) {
			t.Errorf("UnmarshalJSON(%s) got %v want %s", c.s, err, c.kind)
		}
	}
}
