package simplify

import (
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

type term struct {
	neg bool
	e   *expr.Expr
}

// flatten lists the terms of a sum, tracking which are subtracted.
func flatten(e *expr.Expr, neg bool, terms []term, depth int) ([]term, bool) {
	if depth > expr.MaxDepth {
		return nil, false
	}

	var ok bool
	switch {
	case e.IsOperator(expr.AddOp), e.IsOperator(expr.SubtractOp):
		terms, ok = flatten(e.Left, neg, terms, depth+1)
		if !ok {
			return nil, false
		}
		return flatten(e.Right, neg != (e.Op == expr.SubtractOp), terms, depth+1)
	case e.Kind == expr.PrefixKind && e.Op == expr.SubtractOp:
		return flatten(e.Right, !neg, terms, depth+1)
	case e.Kind == expr.PrefixKind && e.Op == expr.AddOp:
		return flatten(e.Right, neg, terms, depth+1)
	}
	return append(terms, term{neg: neg, e: e}), true
}

// monomial recognizes x, x ^ 2 and x * x.
func monomial(e *expr.Expr) (int, string, bool) {
	if e.IsVariable() {
		return 1, e.Name, true
	} else if e.IsOperator(expr.PowerOp) && e.Left.IsVariable() && isNumber(e.Right, 2) {
		return 2, e.Left.Name, true
	} else if e.IsOperator(expr.MultiplyOp) && e.Left.IsVariable() && e.Right.IsVariable() &&
		e.Left.Name == e.Right.Name {

		return 2, e.Left.Name, true
	}
	return 0, "", false
}

// classify splits a term into its degree, variable and coefficient.
func classify(e *expr.Expr, prec uint) (int, string, number.Number, bool) {
	if e.IsNumber() {
		return 0, "", e.Num, e.Num.IsReal()
	}

	coef := number.FromInt64(1, prec)
	mono := e
	if e.IsOperator(expr.MultiplyOp) {
		if e.Left.IsNumber() {
			coef, mono = e.Left.Num, e.Right
		} else if e.Right.IsNumber() {
			coef, mono = e.Right.Num, e.Left
		}
	}
	if !coef.IsReal() {
		return 0, "", number.Number{}, false
	}

	deg, name, ok := monomial(mono)
	return deg, name, coef, ok
}

type quadratic struct {
	name string
	coef [3]number.Number
	seen [3]bool
}

func (q *quadratic) add(t term, prec uint) (bool, error) {
	deg, name, c, ok := classify(t.e, prec)
	if !ok {
		return false, nil
	}
	if deg > 0 {
		if q.name == "" {
			q.name = name
		} else if q.name != name {
			return false, nil
		}
	}
	if t.neg {
		c = number.Neg(c)
	}

	sum, err := number.Add(q.coef[deg], c)
	if err != nil {
		return false, err
	}
	q.coef[deg] = sum
	q.seen[deg] = true
	return true, nil
}

// factorQuadratic replaces A x^2 + B x + C, with real roots, by
// (x - r1) * (x - r2) * A.
func factorQuadratic(e *expr.Expr) (bool, error) {
	terms, ok := flatten(e, false, nil, 0)
	if !ok || len(terms) < 2 {
		return false, nil
	}

	prec := number.DefaultPrec
	for _, t := range terms {
		if t.e.IsNumber() {
			prec = t.e.Num.Prec()
			break
		}
	}

	var q quadratic
	for i := range q.coef {
		q.coef[i] = number.FromInt64(0, prec)
	}
	for _, t := range terms {
		ok, err := q.add(t, prec)
		if err != nil || !ok {
			return false, err
		}
	}
	if !q.seen[2] || !q.seen[1] {
		return false, nil
	}

	a, b, c := q.coef[2], q.coef[1], q.coef[0]
	if a.IsZero() || b.IsZero() {
		return false, nil
	}
	r1, r2, ok, err := roots(a, b, c)
	if err != nil || !ok {
		return false, err
	}

	var f *expr.Expr
	if number.Equal(r1, r2) {
		f = expr.Operator(expr.PowerOp, factor(q.name, r1), expr.Int(2, prec))
	} else {
		f = expr.Operator(expr.MultiplyOp, factor(q.name, r1), factor(q.name, r2))
	}
	if !number.Equal(a, number.FromInt64(1, prec)) {
		f = expr.Operator(expr.MultiplyOp, f, expr.Num(a))
	}
	e.Set(f)
	return true, nil
}

// roots solves a x^2 + b x + c = 0; ok is false when the roots are not real.
func roots(a, b, c number.Number) (number.Number, number.Number, bool, error) {
	prec := a.Prec()
	var none number.Number

	bb, err := number.Mul(b, b)
	if err != nil {
		return none, none, false, err
	}
	ac, err := number.Mul(a, c)
	if err != nil {
		return none, none, false, err
	}
	ac4, err := number.Mul(ac, number.FromInt64(4, prec))
	if err != nil {
		return none, none, false, err
	}
	d, err := number.Sub(bb, ac4)
	if err != nil {
		return none, none, false, err
	}
	if !d.IsReal() || d.Sign() < 0 {
		return none, none, false, nil
	}

	sq, err := number.Root(d, number.FromInt64(2, prec))
	if err != nil {
		return none, none, false, err
	}
	a2, err := number.Mul(a, number.FromInt64(2, prec))
	if err != nil {
		return none, none, false, err
	}

	nb := number.Neg(b)
	lo, err := number.Sub(nb, sq)
	if err != nil {
		return none, none, false, err
	}
	hi, err := number.Add(nb, sq)
	if err != nil {
		return none, none, false, err
	}
	r1, err := number.Div(lo, a2)
	if err != nil {
		return none, none, false, err
	}
	r2, err := number.Div(hi, a2)
	if err != nil {
		return none, none, false, err
	}
	return r1, r2, true, nil
}

// factor is x - r, written x + |r| for a negative root and x for zero.
func factor(name string, r number.Number) *expr.Expr {
	if r.IsZero() {
		return expr.Var(name)
	} else if r.Sign() < 0 {
		return expr.Operator(expr.AddOp, expr.Var(name), expr.Num(number.Neg(r)))
	}
	return expr.Operator(expr.SubtractOp, expr.Var(name), expr.Num(r))
}
