package expr

import (
	"fmt"
)

type Op int

const (
	DefineOp Op = iota
	EqualOp
	LessThanOp
	GreaterThanOp
	AddOp
	SubtractOp
	MultiplyOp
	DivideOp
	PowerOp
	RootOp
)

const (
	DefinePrecedence     = 0
	ComparePrecedence    = 10
	SumPrecedence        = 20
	ProductPrecedence    = 30
	PowerPrecedence      = 40
	PrimaryPrecedence    = 50
	MaxPrecedence        = 1 << 15 // numbers, variables and calls
	MinPrecedence        = DefinePrecedence
	ImplicitMulRightPrec = PowerPrecedence
)

var (
	opNames = []string{
		DefineOp:      ":",
		EqualOp:       "=",
		LessThanOp:    "<",
		GreaterThanOp: ">",
		AddOp:         "+",
		SubtractOp:    "-",
		MultiplyOp:    "*",
		DivideOp:      "/",
		PowerOp:       "^",
		RootOp:        "\\",
	}

	opPrecedence = []int{
		DefineOp:      DefinePrecedence,
		EqualOp:       ComparePrecedence,
		LessThanOp:    ComparePrecedence,
		GreaterThanOp: ComparePrecedence,
		AddOp:         SumPrecedence,
		SubtractOp:    SumPrecedence,
		MultiplyOp:    ProductPrecedence,
		DivideOp:      ProductPrecedence,
		PowerOp:       PowerPrecedence,
		RootOp:        PowerPrecedence,
	}

	runeOps = map[rune]Op{
		':':  DefineOp,
		'=':  EqualOp,
		'<':  LessThanOp,
		'>':  GreaterThanOp,
		'+':  AddOp,
		'-':  SubtractOp,
		'*':  MultiplyOp,
		'/':  DivideOp,
		'^':  PowerOp,
		'\\': RootOp,
	}
)

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return opNames[op]
}

func (op Op) Precedence() int {
	return opPrecedence[op]
}

// OpFromRune maps an operator character to its Op.
func OpFromRune(r rune) (Op, bool) {
	op, ok := runeOps[r]
	return op, ok
}

func (op Op) IsComparison() bool {
	switch op {
	case EqualOp, LessThanOp, GreaterThanOp:
		return true
	}
	return false
}

func (op Op) IsArithmetic() bool {
	switch op {
	case AddOp, SubtractOp, MultiplyOp, DivideOp, PowerOp, RootOp:
		return true
	}
	return false
}

func (op Op) IsSign() bool {
	return op == AddOp || op == SubtractOp
}

func (op Op) IsAdditive() bool {
	return op == AddOp || op == SubtractOp
}

func (op Op) Commutative() bool {
	return op == AddOp || op == MultiplyOp
}

// Reversible reports whether an equation can be rearranged across op.
func (op Op) Reversible() bool {
	_, ok := op.Inverse()
	return ok
}

func (op Op) Inverse() (Op, bool) {
	switch op {
	case AddOp:
		return SubtractOp, true
	case SubtractOp:
		return AddOp, true
	case MultiplyOp:
		return DivideOp, true
	case DivideOp:
		return MultiplyOp, true
	case PowerOp:
		return RootOp, true
	case RootOp:
		return PowerOp, true
	case DefineOp, EqualOp, LessThanOp, GreaterThanOp:
		return op, false
	}
	panic(fmt.Sprintf("unexpected op; got %d", int(op)))
}

// Collapsed is the operator that repeats op: x+x is x*2 and x*x is x^2.
func (op Op) Collapsed() (Op, bool) {
	switch op {
	case AddOp:
		return MultiplyOp, true
	case MultiplyOp:
		return PowerOp, true
	}
	return op, false
}

// Flip is the comparison that holds when the two sides are swapped.
func (op Op) Flip() Op {
	switch op {
	case LessThanOp:
		return GreaterThanOp
	case GreaterThanOp:
		return LessThanOp
	}
	return op
}
