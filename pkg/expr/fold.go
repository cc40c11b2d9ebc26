package expr

import (
	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/number"
)

// Apply computes a op b for an arithmetic operator.
func Apply(op Op, a, b number.Number) (number.Number, error) {
	switch op {
	case AddOp:
		return number.Add(a, b)
	case SubtractOp:
		return number.Sub(a, b)
	case MultiplyOp:
		return number.Mul(a, b)
	case DivideOp:
		return number.Div(a, b)
	case PowerOp:
		return number.Pow(a, b)
	case RootOp:
		return number.Root(a, b)
	}
	return number.Number{}, errs.Errorf(errs.InvalidOperator, "expr: %s", op)
}

// Sign applies a prefix sign to n.
func Sign(op Op, n number.Number) (number.Number, error) {
	switch op {
	case AddOp:
		return n, nil
	case SubtractOp:
		return number.Neg(n), nil
	}
	return number.Number{}, errs.Errorf(errs.InvalidPrefix, "expr: %s", op)
}

// Fold replaces every prefix and arithmetic node whose operands reduce to
// numbers with the resulting number. Variables and functions are left alone.
func Fold(e *Expr) error {
	return fold(e, 0)
}

func fold(e *Expr, depth int) error {
	if err := CheckDepth(depth); err != nil {
		return err
	}

	switch e.Kind {
	case PrefixKind:
		if err := fold(e.Right, depth+1); err != nil {
			return err
		}
		if e.Right.IsNumber() {
			n, err := Sign(e.Op, e.Right.Num)
			if err != nil {
				return err
			}
			e.SetNumber(n)
		}
	case OperatorKind:
		if err := fold(e.Left, depth+1); err != nil {
			return err
		}
		if err := fold(e.Right, depth+1); err != nil {
			return err
		}
		if e.Op.IsArithmetic() && e.Left.IsNumber() && e.Right.IsNumber() {
			n, err := Apply(e.Op, e.Left.Num, e.Right.Num)
			if err != nil {
				return err
			}
			e.SetNumber(n)
		}
	case FunctionKind:
		for _, a := range e.Args {
			if err := fold(a, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
