package simplify

import (
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

// coefficient splits e into a number and the term it multiplies; the term of
// a bare number is nil.
func coefficient(e *expr.Expr) (number.Number, *expr.Expr) {
	if e.IsNumber() {
		return e.Num, nil
	} else if e.IsOperator(expr.MultiplyOp) {
		if e.Right.IsNumber() {
			return e.Right.Num, e.Left
		} else if e.Left.IsNumber() {
			return e.Left.Num, e.Right
		}
	}
	return number.FromInt64(1, number.DefaultPrec), e
}

// Add returns a + b, merging like terms into a single coefficient: x * 2 + x
// is x * 3. a and b are consumed.
func Add(a, b *expr.Expr) (*expr.Expr, error) {
	if a.IsNumber() && b.IsNumber() {
		n, err := number.Add(a.Num, b.Num)
		if err != nil {
			return nil, err
		}
		return expr.Num(n), nil
	}

	ca, ta := coefficient(a)
	cb, tb := coefficient(b)
	if ta == nil || tb == nil || !expr.CompareStructure(ta, tb) ||
		expr.Compare(ta, tb) != expr.Equal {

		return expr.Operator(expr.AddOp, a, b), nil
	}

	n, err := number.Add(ca, cb)
	if err != nil {
		return nil, err
	}
	if n.IsZero() {
		return expr.Num(n), nil
	} else if number.Equal(n, number.FromInt64(1, n.Prec())) {
		return ta, nil
	}
	return expr.Operator(expr.MultiplyOp, ta, expr.Num(n)), nil
}
