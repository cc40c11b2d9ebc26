package evaluate

import (
	"fmt"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/isolate"
)

// Evaluate reduces e in place against s. Variables that do not resolve are
// left in the tree, remembering s, for a later pass. On error, e keeps
// whatever reductions were already made.
func Evaluate(e *expr.Expr, s *Scope) error {
	return evaluate(e, s, 0)
}

func evaluate(e *expr.Expr, s *Scope, depth int) error {
	if e == nil {
		return errs.New(errs.NullExpression, "evaluate")
	}
	if err := expr.CheckDepth(depth); err != nil {
		return err
	}

	switch e.Kind {
	case expr.NumberKind:
		return nil
	case expr.VariableKind:
		return evaluateVariable(e, s)
	case expr.FunctionKind:
		r, err := s.call(e.Name, e.Args, depth+1)
		if err != nil {
			return err
		}
		e.Set(r)
		return nil
	case expr.PrefixKind:
		return evaluatePrefix(e, s, depth)
	case expr.OperatorKind:
		if e.Op == expr.DefineOp {
			return evaluateDefine(e, s, depth)
		} else if e.Op.IsComparison() {
			return evaluateComparison(e, s, depth)
		} else if e.Op.IsArithmetic() {
			return evaluateArithmetic(e, s, depth)
		}
		return errs.Errorf(errs.InvalidOperator, "evaluate: %s", e.Op)
	}

	panic(fmt.Sprintf("evaluate: unexpected kind: %s", e.Kind))
}

func evaluateVariable(e *expr.Expr, s *Scope) error {
	if env, ok := e.Env.(*Scope); ok && env != nil && env != s {
		v, err := env.GetValue(e.Name)
		if err == nil {
			e.Set(v)
			return nil
		} else if !errs.Is(err, errs.NonexistentKey) {
			return err
		}
	}

	v, err := s.GetValue(e.Name)
	if err == nil {
		e.Set(v)
		return nil
	} else if errs.Is(err, errs.NonexistentKey) {
		e.Env = s
		return nil
	}
	return err
}

func evaluatePrefix(e *expr.Expr, s *Scope, depth int) error {
	if !e.Op.IsSign() {
		return errs.Errorf(errs.InvalidPrefix, "evaluate: %s", e.Op)
	}
	if err := evaluate(e.Right, s, depth+1); err != nil {
		return err
	}
	if e.Right.IsNumber() {
		n, err := expr.Sign(e.Op, e.Right.Num)
		if err != nil {
			return err
		}
		e.SetNumber(n)
	}
	return nil
}

func evaluateDefine(e *expr.Expr, s *Scope, depth int) error {
	if e.Left.Kind == expr.FunctionKind {
		params := make([]string, 0, len(e.Left.Args))
		for _, arg := range e.Left.Args {
			if arg.Kind != expr.VariableKind {
				return errs.Errorf(errs.InvalidIdentifier, "evaluate: %s: parameter %s",
					e.Left.Name, arg)
			}
			params = append(params, arg.Name)
		}
		s.DefineFunction(e.Left.Name, params, e.Right.Copy())
		e.Set(e.Right)
		return nil
	}

	if err := evaluate(e.Right, s, depth+1); err != nil {
		return err
	}
	if e.Left.Kind != expr.VariableKind {
		if err := evaluate(e.Left, s, depth+1); err != nil {
			return err
		}
		if e.Left.Kind != expr.VariableKind {
			names := e.Left.Variables()
			if len(names) != 1 {
				return errs.Errorf(errs.InvalidIdentifier, "evaluate: cannot define %s", e.Left)
			}
			if err := isolate.Isolate(e, names[0]); err != nil {
				return err
			}
			if err := evaluate(e.Right, s, depth+1); err != nil {
				return err
			}
		}
	}

	s.Define(e.Left.Name, e.Right.Copy())
	e.Set(e.Right)
	return nil
}

func evaluateComparison(e *expr.Expr, s *Scope, depth int) error {
	if err := evaluate(e.Right, s, depth+1); err != nil {
		return err
	}
	if err := evaluate(e.Left, s, depth+1); err != nil {
		return err
	}

	if !e.Left.IsNumber() || !e.Right.IsNumber() {
		s.unknownTruth()
		return nil
	}

	var ok bool
	switch o := expr.Compare(e.Left, e.Right); e.Op {
	case expr.EqualOp:
		ok = o == expr.Equal
	case expr.LessThanOp, expr.GreaterThanOp:
		if !e.Left.Num.IsReal() || !e.Right.Num.IsReal() {
			return errs.Errorf(errs.CannotCompare, "evaluate: %s %s %s", e.Left, e.Op, e.Right)
		}
		ok = (e.Op == expr.LessThanOp && o == expr.Less) ||
			(e.Op == expr.GreaterThanOp && o == expr.Greater)
	}
	s.updateTruth(ok)
	e.Set(e.Left)
	return nil
}

// evaluateArithmetic walks down the left operands of a chain such as
// 1 + 2 + 3 + ... iteratively, so that the length of the chain does not count
// against MaxDepth. Operands are evaluated right before left, as for a single
// node, and the chain is then reduced from the bottom up.
func evaluateArithmetic(e *expr.Expr, s *Scope, depth int) error {
	var chain []*expr.Expr
	n := e
	for n != nil && n.Kind == expr.OperatorKind && n.Op.IsArithmetic() {
		if err := evaluate(n.Right, s, depth+1); err != nil {
			return err
		}
		chain = append(chain, n)
		n = n.Left
	}
	if err := evaluate(n, s, depth+1); err != nil {
		return err
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if err := reduce(chain[i]); err != nil {
			return err
		}
	}
	return nil
}

func reduce(e *expr.Expr) error {
	if e.Left.IsNumber() && e.Right.IsNumber() {
		n, err := expr.Apply(e.Op, e.Left.Num, e.Right.Num)
		if err != nil {
			return err
		}
		e.SetNumber(n)
		return nil
	}
	return foldIntoChild(e)
}

// foldIntoChild combines a number operand with a number inside a child using
// the same commutative operator: 2 * (9 * x) becomes 18 * x.
func foldIntoChild(e *expr.Expr) error {
	if !e.Op.Commutative() {
		return nil
	}

	n, child := e.Left, e.Right
	if !n.IsNumber() {
		n, child = child, n
	}
	if !n.IsNumber() || !child.IsOperator(e.Op) {
		return nil
	}

	m := child.Left
	if !m.IsNumber() {
		m = child.Right
	}
	if !m.IsNumber() {
		return nil
	}

	r, err := expr.Apply(e.Op, n.Num, m.Num)
	if err != nil {
		return err
	}
	m.SetNumber(r)
	e.Set(child)
	return nil
}
