package evaluate_test

import (
	"reflect"
	"testing"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/evaluate"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

func TestScope(t *testing.T) {
	root := evaluate.NewScope(nil)
	root.Define("b", expr.Int(2, number.DefaultPrec))
	root.Define("a", expr.Int(1, number.DefaultPrec))
	root.DefineConstant("c", expr.Int(3, number.DefaultPrec))
	root.DefineFunction("f", []string{"x"}, expr.Var("x"))

	child := evaluate.NewScope(root)
	child.Define("a", expr.Int(10, number.DefaultPrec))
	child.Define("d", expr.Int(4, number.DefaultPrec))

	if names := root.Names(); !reflect.DeepEqual(names, []string{"a", "b", "c", "f"}) {
		t.Errorf("Names() got %v", names)
	}
	if names := child.Names(); !reflect.DeepEqual(names, []string{"a", "d"}) {
		t.Errorf("Names() got %v", names)
	}

	cases := []struct {
		scope *evaluate.Scope
		name  string
		r     string
		kind  errs.Kind
	}{
		{scope: root, name: "a", r: "1"},
		{scope: child, name: "a", r: "10"},
		{scope: child, name: "b", r: "2"},
		{scope: root, name: "d", kind: errs.NonexistentKey},
		{scope: child, name: "f", kind: errs.IsAFunction},
	}

	for _, c := range cases {
		v, err := c.scope.GetValue(c.name)
		if c.kind != errs.Unknown {
			if !errs.Is(err, c.kind) {
				t.Errorf("GetValue(%s) got %v want %s", c.name, err, c.kind)
			}
		} else if err != nil {
			t.Errorf("GetValue(%s) failed with %s", c.name, err)
		} else if v.String() != c.r {
			t.Errorf("GetValue(%s) got %s want %s", c.name, v, c.r)
		}
	}

	root.Define("c", expr.Int(30, number.DefaultPrec))
	if v, err := root.GetValue("c"); err != nil || v.String() != "3" {
		t.Errorf("GetValue(c) got %s, %v want 3", v, err)
	}

	ent, err := child.Lookup("f")
	if err != nil {
		t.Fatalf("Lookup(f) failed with %s", err)
	}
	if !ent.Callable() || !reflect.DeepEqual(ent.Params, []string{"x"}) {
		t.Errorf("Lookup(f) got %+v", ent)
	}
	if _, err := child.Lookup("zz"); !errs.Is(err, errs.NonexistentKey) {
		t.Errorf("Lookup(zz) got %v want %s", err, errs.NonexistentKey)
	}
	if !child.Has("b") || root.Has("d") {
		t.Errorf("Has() got wrong answer")
	}
}

func TestGetValueCopies(t *testing.T) {
	s := evaluate.NewScope(nil)
	s.Define("a", expr.Operator(expr.AddOp, expr.Var("x"), expr.Int(1, number.DefaultPrec)))

	v, err := s.GetValue("a")
	if err != nil {
		t.Fatal(err)
	}
	v.Left.Name = "y"

	v, err = s.GetValue("a")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "x + 1" {
		t.Errorf("GetValue(a) got %s want x + 1", v)
	}
}

func TestCall(t *testing.T) {
	s := evaluate.NewRootScope(number.DefaultPrec)
	defer s.Close()

	calls := 0
	s.DefineNative("twice",
		func(s *evaluate.Scope) (*expr.Expr, error) {
			calls += 1
			v, err := s.GetValue("n")
			if err != nil {
				return nil, err
			}
			return expr.Operator(expr.MultiplyOp, v, expr.Int(2, s.Prec())), nil
		}, "n")
	s.DefineNative("counter",
		func(s *evaluate.Scope) (*expr.Expr, error) {
			calls += 1
			return expr.Int(int64(calls), s.Prec()), nil
		})

	r, err := s.Call("twice", expr.List{expr.Int(21, number.DefaultPrec)})
	if err != nil {
		t.Fatalf("Call(twice) failed with %s", err)
	} else if r.String() != "21 * 2" {
		t.Errorf("Call(twice) got %s want 21 * 2", r)
	}

	v, err := s.GetValue("counter")
	if err != nil || v.String() != "2" {
		t.Errorf("GetValue(counter) got %s, %v want 2", v, err)
	}

	_, err = s.Call("twice", nil)
	if !errs.Is(err, errs.WrongArgumentCount) {
		t.Errorf("Call(twice) got %v want %s", err, errs.WrongArgumentCount)
	}
	_, err = s.Call("counter", nil)
	if !errs.Is(err, errs.IsAVariable) {
		t.Errorf("Call(counter) got %v want %s", err, errs.IsAVariable)
	}
	if s.Has("n") {
		t.Errorf("Call(twice) left n defined")
	}
}

func TestBuiltins(t *testing.T) {
	b1 := evaluate.NewSeededBuiltins(number.DefaultPrec, 7)
	b2 := evaluate.NewSeededBuiltins(number.DefaultPrec, 7)

	for i := 0; i < 3; i++ {
		r1, err := b1.Random()
		if err != nil {
			t.Fatalf("Random() failed with %s", err)
		}
		r2, err := b2.Random()
		if err != nil {
			t.Fatalf("Random() failed with %s", err)
		}
		if !number.Equal(r1, r2) {
			t.Errorf("Random() got %s and %s with the same seed", r1, r2)
		}
		if r1.Sign() < 0 || r1.Float64() >= 1 {
			t.Errorf("Random() got %s", r1)
		}
	}

	e, err := b1.Euler()
	if err != nil {
		t.Fatalf("Euler() failed with %s", err)
	}
	if s := expr.Num(e).String(); s[:12] != "2.7182818284" {
		t.Errorf("Euler() got %s", s)
	}

	b1.Close()
	if _, err := b1.Random(); !errs.Is(err, errs.FileClosed) {
		t.Errorf("Random() after Close() got %v want %s", err, errs.FileClosed)
	}
}
