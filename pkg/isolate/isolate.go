// Package isolate rearranges an equation so that a single variable stands
// alone on the left.
package isolate

import (
	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

// Isolate rewrites e in place as name op value. An expression that is not a
// comparison or a definition is taken to equal zero.
func Isolate(e *expr.Expr, name string) error {
	if !e.Contains(name) {
		return errs.Errorf(errs.VariableNotPresent, "isolate: %s in %s", name, e)
	}

	prec := precision(e)
	if e.Kind != expr.OperatorKind || !(e.Op.IsComparison() || e.Op == expr.DefineOp) {
		old := *e
		e.Set(expr.Operator(expr.EqualOp, &old, expr.Int(0, prec)))
	}

	inLeft, inRight := e.Left.Contains(name), e.Right.Contains(name)
	if inLeft && inRight {
		e.Left = expr.Operator(expr.SubtractOp, e.Left, e.Right)
		e.Right = expr.Int(0, prec)
	} else if inRight {
		e.Left, e.Right = e.Right, e.Left
		e.Op = e.Op.Flip()
	}

	iso := isolator{name: name, prec: prec}
	for depth := 0; ; depth++ {
		if err := expr.CheckDepth(depth); err != nil {
			return err
		}
		if iso.isTarget(e.Left) {
			break
		}
		if err := iso.step(e); err != nil {
			return err
		}
	}

	return expr.Fold(e.Right)
}

type isolator struct {
	name string
	prec uint
}

func (iso isolator) isTarget(e *expr.Expr) bool {
	return (e.Kind == expr.VariableKind || e.Kind == expr.FunctionKind) && e.Name == iso.name
}

func (iso isolator) cannot(e *expr.Expr) error {
	return errs.Errorf(errs.CannotIsolate, "isolate: %s in %s", iso.name, e)
}

// step peels one node off the left side of e, moving its inverse onto the
// right side.
func (iso isolator) step(e *expr.Expr) error {
	l, acc := e.Left, e.Right

	switch l.Kind {
	case expr.PrefixKind:
		e.Left = l.Right
		if l.Op == expr.SubtractOp {
			e.Right = expr.Prefix(expr.SubtractOp, acc)
			e.Op = e.Op.Flip()
		}
		return nil
	case expr.FunctionKind:
		return iso.stepFunction(e, l, acc)
	case expr.OperatorKind:
		inA, inB := l.Left.Contains(iso.name), l.Right.Contains(iso.name)
		if inA && inB {
			// x * (x - 1) = 0 takes the root from the left factor
			if l.Op == expr.MultiplyOp && isZero(acc) {
				e.Left = l.Left
				return nil
			}
			return iso.cannot(l)
		} else if inA {
			return iso.stepLeft(e, l, acc)
		}
		return iso.stepRight(e, l, acc)
	}
	return iso.cannot(l)
}

// stepLeft handles a op b = acc with the target in a.
func (iso isolator) stepLeft(e, l, acc *expr.Expr) error {
	a, b := l.Left, l.Right
	e.Left = a

	switch l.Op {
	case expr.AddOp:
		e.Right = expr.Operator(expr.SubtractOp, acc, b)
	case expr.SubtractOp:
		e.Right = expr.Operator(expr.AddOp, acc, b)
	case expr.MultiplyOp:
		e.Right = expr.Operator(expr.DivideOp, acc, b)
		if sign(b) < 0 {
			e.Op = e.Op.Flip()
		}
	case expr.DivideOp:
		e.Right = expr.Operator(expr.MultiplyOp, acc, b)
		if sign(b) < 0 {
			e.Op = e.Op.Flip()
		}
	case expr.PowerOp:
		e.Right = expr.Operator(expr.RootOp, acc, b)
	case expr.RootOp:
		e.Right = expr.Operator(expr.PowerOp, acc, b)
	default:
		e.Left = l
		return iso.cannot(l)
	}
	return nil
}

// stepRight handles a op b = acc with the target in b.
func (iso isolator) stepRight(e, l, acc *expr.Expr) error {
	a, b := l.Left, l.Right
	e.Left = b

	switch l.Op {
	case expr.AddOp:
		e.Right = expr.Operator(expr.SubtractOp, acc, a)
	case expr.SubtractOp:
		e.Right = expr.Operator(expr.SubtractOp, a, acc)
		e.Op = e.Op.Flip()
	case expr.MultiplyOp:
		e.Right = expr.Operator(expr.DivideOp, acc, a)
		if sign(a) < 0 {
			e.Op = e.Op.Flip()
		}
	case expr.DivideOp:
		// a / x falls as x grows when a is positive and rises when negative
		if e.Op == expr.LessThanOp || e.Op == expr.GreaterThanOp {
			sa := sign(a)
			if sa == 0 || sign(acc) == 0 {
				e.Left = l
				return iso.cannot(l)
			} else if sa > 0 {
				e.Op = e.Op.Flip()
			}
		}
		e.Right = expr.Operator(expr.DivideOp, a, acc)
	case expr.PowerOp:
		// b^x = y is x = ln(y) / ln(b), or ln(y) when b is e
		if isEuler(a) {
			e.Right = expr.Function("ln", acc)
		} else {
			e.Right = expr.Operator(expr.DivideOp, expr.Function("ln", acc),
				expr.Function("ln", a))
		}
	case expr.RootOp:
		e.Right = expr.Operator(expr.DivideOp, expr.Function("ln", a),
			expr.Function("ln", acc))
	default:
		e.Left = l
		return iso.cannot(l)
	}
	return nil
}

func (iso isolator) stepFunction(e, l, acc *expr.Expr) error {
	if len(l.Args) != 1 {
		return iso.cannot(l)
	}

	switch l.Name {
	case "ln":
		e.Right = expr.Function("exp", acc)
	case "exp":
		e.Right = expr.Function("ln", acc)
	case "sqrt":
		e.Right = expr.Operator(expr.PowerOp, acc, expr.Int(2, iso.prec))
	default:
		return iso.cannot(l)
	}
	e.Left = l.Args[0]
	return nil
}

// sign is the sign of e when it folds to a real number, and zero otherwise.
func sign(e *expr.Expr) int {
	c := e.Copy()
	if expr.Fold(c) != nil || !c.IsNumber() || !c.Num.IsReal() {
		return 0
	}
	return c.Num.Sign()
}

func isZero(e *expr.Expr) bool {
	c := e.Copy()
	return expr.Fold(c) == nil && c.IsNumber() && c.Num.IsZero()
}

func isEuler(e *expr.Expr) bool {
	if e.IsVariable() {
		return e.Name == "e"
	} else if !e.IsNumber() || !e.Num.IsReal() {
		return false
	}
	euler, err := number.Exp(number.FromInt64(1, e.Num.Prec()))
	return err == nil && number.Equal(euler, e.Num)
}

func precision(e *expr.Expr) uint {
	prec := number.DefaultPrec
	var find func(e *expr.Expr, depth int) bool
	find = func(e *expr.Expr, depth int) bool {
		if e == nil || depth > expr.MaxDepth {
			return false
		} else if e.IsNumber() {
			prec = e.Num.Prec()
			return true
		}
		if find(e.Left, depth+1) || find(e.Right, depth+1) {
			return true
		}
		for _, a := range e.Args {
			if find(a, depth+1) {
				return true
			}
		}
		return false
	}
	find(e, 0)
	return prec
}
