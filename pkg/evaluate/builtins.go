package evaluate

import (
	"math/rand"
	"time"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

// Builtins owns the state behind the built-in constants: the random source
// and the cached value of e.
type Builtins struct {
	prec  uint
	rnd   *rand.Rand
	euler *number.Number
}

func NewBuiltins(prec uint) *Builtins {
	return NewSeededBuiltins(prec, time.Now().UnixNano())
}

func NewSeededBuiltins(prec uint, seed int64) *Builtins {
	if prec == 0 {
		prec = number.DefaultPrec
	}
	return &Builtins{
		prec: prec,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

func (b *Builtins) Close() {
	b.rnd = nil
	b.euler = nil
}

func (b *Builtins) Euler() (number.Number, error) {
	if b.euler == nil {
		n, err := number.Exp(number.FromInt64(1, b.prec))
		if err != nil {
			return number.Number{}, err
		}
		b.euler = &n
	}
	return *b.euler, nil
}

func (b *Builtins) Random() (number.Number, error) {
	if b.rnd == nil {
		return number.Number{}, errs.New(errs.FileClosed, "evaluate: builtins closed")
	}
	return number.FromFloat64(b.rnd.Float64(), b.prec)
}

type unaryFunc func(a number.Number) (number.Number, error)
type binaryFunc func(a, b number.Number) (number.Number, error)

func constant(fn func() (number.Number, error)) Callback {
	return func(s *Scope) (*expr.Expr, error) {
		n, err := fn()
		if err != nil {
			return nil, err
		}
		return expr.Num(n), nil
	}
}

// args fetches the bound parameters; ok is false unless all are numbers.
func args(s *Scope, params ...string) (expr.List, bool, error) {
	l := make(expr.List, 0, len(params))
	ok := true
	for _, p := range params {
		v, err := s.GetValue(p)
		if err != nil {
			return nil, false, err
		}
		if !v.IsNumber() {
			ok = false
		}
		l.Append(v)
	}
	return l, ok, nil
}

func unary(name string, fn unaryFunc) Callback {
	return func(s *Scope) (*expr.Expr, error) {
		l, ok, err := args(s, "x")
		if err != nil {
			return nil, err
		} else if !ok {
			return expr.Function(name, l...), nil
		}
		n, err := fn(l[0].Num)
		if err != nil {
			return nil, err
		}
		return expr.Num(n), nil
	}
}

func binary(name string, p1, p2 string, fn binaryFunc) Callback {
	return func(s *Scope) (*expr.Expr, error) {
		l, ok, err := args(s, p1, p2)
		if err != nil {
			return nil, err
		} else if !ok {
			return expr.Function(name, l...), nil
		}
		n, err := fn(l[0].Num, l[1].Num)
		if err != nil {
			return nil, err
		}
		return expr.Num(n), nil
	}
}

func logBase(x, b number.Number) (number.Number, error) {
	lx, err := number.Log(x)
	if err != nil {
		return number.Number{}, err
	}
	lb, err := number.Log(b)
	if err != nil {
		return number.Number{}, err
	}
	return number.Div(lx, lb)
}

func sqrt(x number.Number) (number.Number, error) {
	return number.Root(x, number.FromInt64(2, x.Prec()))
}

func abs(x number.Number) (number.Number, error) {
	return number.Abs(x), nil
}

func realPart(x number.Number) (number.Number, error) {
	return x.Real(), nil
}

func imagPart(x number.Number) (number.Number, error) {
	return x.Imag(), nil
}

// Register defines the built-ins in s as constants.
func (b *Builtins) Register(s *Scope) {
	natives := []struct {
		name   string
		cb     Callback
		params []string
	}{
		{"pi", constant(func() (number.Number, error) { return number.Pi(b.prec), nil }), nil},
		{"e", constant(b.Euler), nil},
		{"i", constant(func() (number.Number, error) {
			return number.Complex(number.FromInt64(0, b.prec), number.FromInt64(1, b.prec)), nil
		}), nil},
		{"rand", constant(b.Random), nil},
		{"sqrt", unary("sqrt", sqrt), []string{"x"}},
		{"root", binary("root", "x", "n", number.Root), []string{"x", "n"}},
		{"ln", unary("ln", number.Log), []string{"x"}},
		{"log", binary("log", "x", "b", logBase), []string{"x", "b"}},
		{"exp", unary("exp", number.Exp), []string{"x"}},
		{"abs", unary("abs", abs), []string{"x"}},
		{"sin", unary("sin", number.Sin), []string{"x"}},
		{"cos", unary("cos", number.Cos), []string{"x"}},
		{"tan", unary("tan", number.Tan), []string{"x"}},
		{"re", unary("re", realPart), []string{"x"}},
		{"im", unary("im", imagPart), []string{"x"}},
	}

	for _, n := range natives {
		ent := &Entry{Name: n.name, Callback: n.cb, Params: n.params, Constant: true}
		s.insert(ent)
	}
}
