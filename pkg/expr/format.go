package expr

import (
	"strings"

	"github.com/leftmike/algebra/pkg/number"
)

type FormatOptions struct {
	Spacing        string // around binary operators
	Delimiter      string // between function arguments
	OmitCallParens bool   // render f(x) as f x when x is a leaf
	Tolerance      int    // see Approximate; zero disables
}

var DefaultFormat = FormatOptions{
	Spacing:   " ",
	Delimiter: ", ",
	Tolerance: 12,
}

func (e *Expr) String() string {
	return Format(e, DefaultFormat)
}

func Format(e *Expr, opts FormatOptions) string {
	var buf strings.Builder
	opts.format(&buf, e)
	return buf.String()
}

func (opts FormatOptions) format(buf *strings.Builder, e *Expr) {
	if e == nil {
		buf.WriteString("<nil>")
		return
	}

	switch e.Kind {
	case NumberKind:
		buf.WriteString(opts.formatNumber(e.Num))
	case VariableKind:
		buf.WriteString(e.Name)
	case PrefixKind:
		buf.WriteString(e.Op.String())
		opts.formatOperand(buf, e.Right, e.Right.Precedence() < PrimaryPrecedence)
	case OperatorKind:
		prec := e.Op.Precedence()
		opts.formatOperand(buf, e.Left, e.Left.Precedence() < prec)
		buf.WriteString(opts.Spacing)
		buf.WriteString(e.Op.String())
		buf.WriteString(opts.Spacing)
		opts.formatOperand(buf, e.Right, e.Right.Precedence() <= prec)
	case FunctionKind:
		buf.WriteString(e.Name)
		if opts.OmitCallParens && len(e.Args) == 1 &&
			(e.Args[0].Kind == VariableKind || e.Args[0].Kind == NumberKind) {

			buf.WriteRune(' ')
			opts.format(buf, e.Args[0])
			return
		}
		buf.WriteRune('(')
		for i, a := range e.Args {
			if i > 0 {
				buf.WriteString(opts.Delimiter)
			}
			opts.format(buf, a)
		}
		buf.WriteRune(')')
	}
}

func (opts FormatOptions) formatOperand(buf *strings.Builder, e *Expr, paren bool) {
	if paren {
		buf.WriteRune('(')
	}
	opts.format(buf, e)
	if paren {
		buf.WriteRune(')')
	}
}

func (opts FormatOptions) formatNumber(n number.Number) string {
	re := Approximate(n.Real().Text(), opts.Tolerance)
	if n.IsReal() {
		return re
	}
	im := Approximate(n.Imag().Text(), opts.Tolerance)
	if im == "0" {
		return re
	}

	var buf strings.Builder
	buf.WriteRune('(')
	if re != "0" {
		buf.WriteString(re)
		if im[0] != '-' {
			buf.WriteRune('+')
		}
	}
	buf.WriteString(im)
	buf.WriteString("i)")
	return buf.String()
}

// Approximate cuts the fraction of a decimal at the first run of at least
// tolerance 0s or 9s. A run of 9s rounds the digits before it up.
func Approximate(s string, tolerance int) string {
	if tolerance <= 0 {
		return s
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}

	frac := s[dot+1:]
	start := -1
	var digit byte
	for i := 0; i < len(frac); {
		j := i
		for j < len(frac) && frac[j] == frac[i] {
			j += 1
		}
		if (frac[i] == '0' || frac[i] == '9') && j-i >= tolerance {
			start = i
			digit = frac[i]
			break
		}
		i = j
	}
	if start < 0 {
		return s
	}

	kept := []byte(s[:dot+1+start])
	if digit == '9' {
		kept = roundUp(kept)
	}
	return trimFraction(string(kept))
}

// roundUp adds one to the last digit of a decimal, carrying leftwards.
func roundUp(b []byte) []byte {
	i := len(b) - 1
	for ; i >= 0; i-- {
		c := b[i]
		if c == '.' {
			continue
		} else if c < '0' || c > '9' {
			break
		} else if c == '9' {
			b[i] = '0'
			continue
		}
		b[i] = c + 1
		return b
	}

	// carried out of the most significant digit
	r := make([]byte, 0, len(b)+1)
	r = append(r, b[:i+1]...)
	r = append(r, '1')
	return append(r, b[i+1:]...)
}

func trimFraction(s string) string {
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}
