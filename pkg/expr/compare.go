package expr

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/leftmike/algebra/pkg/number"
)

type Ordering int

const (
	Incomparable Ordering = iota
	Less
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "incomparable"
}

func ordering(c int) Ordering {
	if c < 0 {
		return Less
	} else if c > 0 {
		return Greater
	}
	return Equal
}

// unsign strips a + prefix and turns -number into a negative number.
func unsign(e *Expr) *Expr {
	for e.Kind == PrefixKind {
		if e.Op == AddOp {
			e = e.Right
		} else if e.Op == SubtractOp && e.Right.IsNumber() {
			return Num(number.Neg(e.Right.Num))
		} else {
			break
		}
	}
	return e
}

// Compare orders two numbers; any other pair of trees is either Equal or
// Incomparable. + and * operands may match in either order.
func Compare(a, b *Expr) Ordering {
	return compare(a, b, 0)
}

func compare(a, b *Expr, depth int) Ordering {
	if a == nil || b == nil || depth > MaxDepth {
		return Incomparable
	}
	a = unsign(a)
	b = unsign(b)
	if a.Kind != b.Kind {
		return Incomparable
	}

	switch a.Kind {
	case NumberKind:
		return compareNumbers(a.Num, b.Num)
	case VariableKind:
		if a.Name == b.Name {
			return Equal
		}
	case FunctionKind:
		if a.Name != b.Name {
			return Incomparable
		}
		err := a.Args.Zip(b.Args, func(x, y *Expr) error {
			if compare(x, y, depth+1) != Equal {
				return errIncomparable
			}
			return nil
		})
		if err == nil {
			return Equal
		}
	case PrefixKind:
		if a.Op == b.Op && compare(a.Right, b.Right, depth+1) == Equal {
			return Equal
		}
	case OperatorKind:
		if a.Op != b.Op {
			return Incomparable
		}
		if compare(a.Left, b.Left, depth+1) == Equal &&
			compare(a.Right, b.Right, depth+1) == Equal {

			return Equal
		}
		if a.Op.Commutative() && compare(a.Left, b.Right, depth+1) == Equal &&
			compare(a.Right, b.Left, depth+1) == Equal {

			return Equal
		}
	}
	return Incomparable
}

var errIncomparable = errors.New("expr: incomparable")

func compareNumbers(a, b number.Number) Ordering {
	if !a.IsReal() || !b.IsReal() {
		if a.Text() == b.Text() {
			return Equal
		}
		return Incomparable
	}
	return ordering(CompareDecimal(a.Text(), b.Text()))
}

// CompareDecimal compares two plain decimal strings (optional leading -,
// digits, optional fraction) digit by digit.
func CompareDecimal(x, y string) int {
	negX := strings.HasPrefix(x, "-")
	negY := strings.HasPrefix(y, "-")
	x = strings.TrimPrefix(x, "-")
	y = strings.TrimPrefix(y, "-")
	if isZeroDecimal(x) {
		negX = false
	}
	if isZeroDecimal(y) {
		negY = false
	}

	if negX != negY {
		if isZeroDecimal(x) && isZeroDecimal(y) {
			return 0
		} else if negX {
			return -1
		}
		return 1
	}

	c := compareMagnitude(x, y)
	if negX {
		return -c
	}
	return c
}

func isZeroDecimal(s string) bool {
	return strings.Trim(s, "0.") == ""
}

func splitDecimal(s string) (string, string) {
	ip, fp := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		ip, fp = s[:dot], s[dot+1:]
	}
	return strings.TrimLeft(ip, "0"), strings.TrimRight(fp, "0")
}

func compareMagnitude(x, y string) int {
	xi, xf := splitDecimal(x)
	yi, yf := splitDecimal(y)

	if len(xi) != len(yi) {
		if len(xi) < len(yi) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(xi, yi); c != 0 {
		return c
	}

	for i := 0; i < len(xf) || i < len(yf); i++ {
		dx, dy := byte('0'), byte('0')
		if i < len(xf) {
			dx = xf[i]
		}
		if i < len(yf) {
			dy = yf[i]
		}
		if dx != dy {
			if dx < dy {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CompareStructure reports whether a and b have the same shape, treating
// every number as equal to every other.
func CompareStructure(a, b *Expr) bool {
	return compareStructure(a, b, 0)
}

func compareStructure(a, b *Expr, depth int) bool {
	if a == nil || b == nil || depth > MaxDepth {
		return false
	}
	a = unsign(a)
	b = unsign(b)
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case NumberKind:
		return true
	case VariableKind:
		return a.Name == b.Name
	case FunctionKind:
		if a.Name != b.Name {
			return false
		}
		return a.Args.Zip(b.Args, func(x, y *Expr) error {
			if !compareStructure(x, y, depth+1) {
				return errIncomparable
			}
			return nil
		}) == nil
	case PrefixKind:
		return a.Op == b.Op && compareStructure(a.Right, b.Right, depth+1)
	case OperatorKind:
		if a.Op != b.Op {
			return false
		}
		if compareStructure(a.Left, b.Left, depth+1) &&
			compareStructure(a.Right, b.Right, depth+1) {

			return true
		}
		return a.Op.Commutative() && compareStructure(a.Left, b.Right, depth+1) &&
			compareStructure(a.Right, b.Left, depth+1)
	}
	return false
}
