// Package expr is the expression tree shared by the parser, the evaluator, the
// simplifier and the isolator. Trees are strict: no two parents share a child,
// and rewrites happen in place.
package expr

import (
	"fmt"
	"sort"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/number"
)

// MaxDepth bounds recursion in every tree walk.
const MaxDepth = 4096

type Kind int

const (
	NumberKind Kind = iota
	VariableKind
	PrefixKind
	OperatorKind
	FunctionKind
)

var kindNames = []string{
	NumberKind:   "number",
	VariableKind: "variable",
	PrefixKind:   "prefix",
	OperatorKind: "operator",
	FunctionKind: "function",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Env is a scope a variable failed to resolve in. The tree does not own it.
type Env interface {
	Has(name string) bool
}

type Expr struct {
	Kind Kind

	Num  number.Number // NumberKind
	Name string        // VariableKind, FunctionKind
	Env  Env           // VariableKind

	Op    Op    // PrefixKind, OperatorKind
	Left  *Expr // OperatorKind
	Right *Expr // PrefixKind, OperatorKind
	Args  List  // FunctionKind
}

func Num(n number.Number) *Expr {
	return &Expr{Kind: NumberKind, Num: n}
}

func Int(i int64, prec uint) *Expr {
	return Num(number.FromInt64(i, prec))
}

func Var(name string) *Expr {
	return &Expr{Kind: VariableKind, Name: name}
}

func Prefix(op Op, operand *Expr) *Expr {
	return &Expr{Kind: PrefixKind, Op: op, Right: operand}
}

func Operator(op Op, left, right *Expr) *Expr {
	return &Expr{Kind: OperatorKind, Op: op, Left: left, Right: right}
}

func Function(name string, args ...*Expr) *Expr {
	return &Expr{Kind: FunctionKind, Name: name, Args: List(args)}
}

func (e *Expr) IsNumber() bool {
	return e != nil && e.Kind == NumberKind
}

func (e *Expr) IsVariable() bool {
	return e != nil && e.Kind == VariableKind
}

func (e *Expr) IsOperator(op Op) bool {
	return e != nil && e.Kind == OperatorKind && e.Op == op
}

// Precedence is the binding strength of the node when it appears as an operand.
func (e *Expr) Precedence() int {
	switch e.Kind {
	case OperatorKind:
		return e.Op.Precedence()
	case PrefixKind:
		return PrimaryPrecedence
	}
	return MaxPrecedence
}

// Copy is a deep copy; the Env back-reference is shared.
func (e *Expr) Copy() *Expr {
	if e == nil {
		return nil
	}
	c := *e
	c.Left = e.Left.Copy()
	c.Right = e.Right.Copy()
	c.Args = e.Args.Copy()
	return &c
}

// Set replaces the payload of e with that of o. The caller gives up o, which
// is typically one of e's own children.
func (e *Expr) Set(o *Expr) {
	*e = *o
}

// SetNumber turns e into a Number node.
func (e *Expr) SetNumber(n number.Number) {
	*e = Expr{Kind: NumberKind, Num: n}
}

func (e *Expr) Contains(name string) bool {
	found := false
	e.walk(func(n *Expr) bool {
		if (n.Kind == VariableKind || n.Kind == FunctionKind) && n.Name == name {
			found = true
		}
		return !found
	})
	return found
}

// Variables is the sorted set of variable names in e.
func (e *Expr) Variables() []string {
	set := map[string]struct{}{}
	e.walk(func(n *Expr) bool {
		if n.Kind == VariableKind {
			set[n.Name] = struct{}{}
		}
		return true
	})

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Expr) walk(fn func(n *Expr) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	if !e.Left.walk(fn) || !e.Right.walk(fn) {
		return false
	}
	for _, a := range e.Args {
		if !a.walk(fn) {
			return false
		}
	}
	return true
}

// CheckDepth fails with NestingTooDeep once depth passes MaxDepth.
func CheckDepth(depth int) error {
	if depth > MaxDepth {
		return errs.Errorf(errs.NestingTooDeep, "expr: depth %d", depth)
	}
	return nil
}

type List []*Expr

func (l *List) Append(e *Expr) {
	*l = append(*l, e)
}

func (l List) Copy() List {
	if l == nil {
		return nil
	}
	c := make(List, len(l))
	for i, e := range l {
		c[i] = e.Copy()
	}
	return c
}

// Zip calls fn with the elements of l and o pairwise, stopping at the first
// error. The lists must be the same length.
func (l List) Zip(o List, fn func(a, b *Expr) error) error {
	if len(l) != len(o) {
		return errs.Errorf(errs.WrongArgumentCount, "expr: %d and %d", len(l), len(o))
	}
	for i := range l {
		if err := fn(l[i], o[i]); err != nil {
			return err
		}
	}
	return nil
}
