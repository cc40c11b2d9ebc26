// Package simplify rewrites evaluated expressions toward a canonical form:
// quadratics are factored, products are distributed over sums, and repeated
// terms are collapsed (x * x is x ^ 2).
package simplify

import (
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

const maxPasses = 20

// Simplify rewrites e in place, repeating until the tree stops changing.
func Simplify(e *expr.Expr) error {
	for pass := 0; pass < maxPasses; pass++ {
		before := e.Copy()

		if err := polynomial(e, 0); err != nil {
			return err
		}
		if err := collapse(e, 0); err != nil {
			return err
		}
		if err := expr.Fold(e); err != nil {
			return err
		}

		if identical(before, e) {
			break
		}
	}
	return nil
}

func children(e *expr.Expr) []*expr.Expr {
	switch e.Kind {
	case expr.PrefixKind:
		return []*expr.Expr{e.Right}
	case expr.OperatorKind:
		return []*expr.Expr{e.Left, e.Right}
	case expr.FunctionKind:
		return e.Args
	}
	return nil
}

// polynomial factors quadratic sums top-down and distributes products over
// sums on the way back up.
func polynomial(e *expr.Expr, depth int) error {
	if err := expr.CheckDepth(depth); err != nil {
		return err
	}

	if e.Kind == expr.OperatorKind && e.Op.IsAdditive() {
		ok, err := factorQuadratic(e)
		if err != nil || ok {
			return err
		}
	}

	for _, c := range children(e) {
		if err := polynomial(c, depth+1); err != nil {
			return err
		}
	}

	if e.IsOperator(expr.MultiplyOp) {
		return distribute(e, depth)
	}
	return nil
}

func isAdditive(e *expr.Expr) bool {
	return e.Kind == expr.OperatorKind && e.Op.IsAdditive()
}

func sharesVariable(a, b *expr.Expr) bool {
	for _, name := range a.Variables() {
		if b.Contains(name) {
			return true
		}
	}
	return false
}

// distribute rewrites (a + b) * c as a * c + b * c when c has no variable in
// common with a + b; c may itself be a sum.
func distribute(e *expr.Expr, depth int) error {
	sum, other := e.Left, e.Right
	sumLeft := true
	if !isAdditive(sum) {
		sum, other = other, sum
		sumLeft = false
	}
	if !isAdditive(sum) || sharesVariable(sum, other) {
		return nil
	}

	product := func(term, factor *expr.Expr) (*expr.Expr, error) {
		var p *expr.Expr
		if sumLeft {
			p = expr.Operator(expr.MultiplyOp, term, factor)
		} else {
			p = expr.Operator(expr.MultiplyOp, factor, term)
		}
		if err := polynomial(p, depth+1); err != nil {
			return nil, err
		}
		return p, expr.Fold(p)
	}

	p1, err := product(sum.Left, other.Copy())
	if err != nil {
		return err
	}
	p2, err := product(sum.Right, other)
	if err != nil {
		return err
	}

	var r *expr.Expr
	if sum.Op == expr.AddOp {
		r, err = appendSum(p1, p2)
	} else {
		r, err = subtractSum(p1, p2)
	}
	if err != nil {
		return err
	}
	e.Set(r)
	return nil
}

// appendSum returns a + b with the terms of b added one at a time, keeping
// the result a left-deep chain.
func appendSum(a, b *expr.Expr) (*expr.Expr, error) {
	if !isAdditive(b) {
		return Add(a, b)
	}
	l, err := appendSum(a, b.Left)
	if err != nil {
		return nil, err
	}
	if b.Op == expr.SubtractOp {
		return expr.Operator(expr.SubtractOp, l, b.Right), nil
	}
	return appendSum(l, b.Right)
}

// subtractSum returns a - b with the terms of b subtracted one at a time.
func subtractSum(a, b *expr.Expr) (*expr.Expr, error) {
	if !isAdditive(b) {
		return expr.Operator(expr.SubtractOp, a, b), nil
	}
	l, err := subtractSum(a, b.Left)
	if err != nil {
		return nil, err
	}
	if b.Op == expr.SubtractOp {
		return appendSum(l, b.Right)
	}
	return subtractSum(l, b.Right)
}

// collapse merges repeated variables bottom-up: x + x is x * 2, x * x is
// x ^ 2, and x ^ 2 * x is x ^ 3.
func collapse(e *expr.Expr, depth int) error {
	if err := expr.CheckDepth(depth); err != nil {
		return err
	}
	for _, c := range children(e) {
		if err := collapse(c, depth+1); err != nil {
			return err
		}
	}
	if e.Kind != expr.OperatorKind {
		return nil
	}

	if removeIdentity(e) {
		return nil
	}

	cop, ok := e.Op.Collapsed()
	if !ok || !e.Right.IsVariable() {
		return nil
	}
	name := e.Right.Name
	prec := precision(e)

	if e.Left.IsVariable() && e.Left.Name == name {
		e.Set(expr.Operator(cop, expr.Var(name), expr.Int(2, prec)))
		return nil
	}

	// the left-most matching term of the chain wins
	var term *expr.Expr
	for l := e.Left; ; l = l.Left {
		if l.IsOperator(e.Op) {
			if matchesTerm(l.Right, cop, name) {
				term = l.Right
			}
			continue
		}
		if matchesTerm(l, cop, name) {
			term = l
		}
		break
	}
	if term == nil {
		return nil
	}

	if term.IsVariable() {
		term.Set(expr.Operator(cop, expr.Var(name), expr.Int(2, prec)))
	} else {
		count := term.Right
		if !count.IsNumber() {
			count = term.Left
		}
		n, err := number.Add(count.Num, number.FromInt64(1, count.Num.Prec()))
		if err != nil {
			return err
		}
		count.SetNumber(n)
	}
	e.Set(e.Left)
	return nil
}

// matchesTerm reports whether t is the variable name alone or name already
// collapsed with a number count: name cop n (or n * name for a product).
func matchesTerm(t *expr.Expr, cop expr.Op, name string) bool {
	if t.IsVariable() {
		return t.Name == name
	}
	if !t.IsOperator(cop) {
		return false
	}
	if t.Left.IsVariable() && t.Left.Name == name && t.Right.IsNumber() {
		return true
	}
	return cop == expr.MultiplyOp && t.Left.IsNumber() && t.Right.IsVariable() &&
		t.Right.Name == name
}

func isNumber(e *expr.Expr, i int64) bool {
	if !e.IsNumber() {
		return false
	}
	v, ok := e.Num.Int64()
	return ok && v == i
}

// removeIdentity drops x * 1, x + 0, x - 0, x / 1 and x ^ 1.
func removeIdentity(e *expr.Expr) bool {
	switch e.Op {
	case expr.AddOp:
		if isNumber(e.Left, 0) {
			e.Set(e.Right)
			return true
		}
		fallthrough
	case expr.SubtractOp:
		if isNumber(e.Right, 0) {
			e.Set(e.Left)
			return true
		}
	case expr.MultiplyOp:
		if isNumber(e.Left, 1) {
			e.Set(e.Right)
			return true
		}
		fallthrough
	case expr.DivideOp, expr.PowerOp:
		if isNumber(e.Right, 1) {
			e.Set(e.Left)
			return true
		}
	}
	return false
}

func precision(e *expr.Expr) uint {
	for _, c := range children(e) {
		if c.IsNumber() {
			return c.Num.Prec()
		}
	}
	return number.DefaultPrec
}

// identical reports whether a and b are the same tree, operand order included.
func identical(a, b *expr.Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Op != b.Op || a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	if a.Kind == expr.NumberKind && !number.Equal(a.Num, b.Num) {
		return false
	}
	if !identical(a.Left, b.Left) || !identical(a.Right, b.Right) {
		return false
	}
	for i := range a.Args {
		if !identical(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}
