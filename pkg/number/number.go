// Package number is the arbitrary precision complex scalar used by expression
// trees. Values are immutable; every operation allocates its result.
package number

import (
	"math"
	"math/big"
	"math/cmplx"
	"strings"

	"github.com/ALTree/bigfloat"

	"github.com/leftmike/algebra/pkg/errs"
)

const (
	DefaultPrec uint = 256
	MinPrec     uint = 32

	mode = big.ToNearestEven

	piDigits = "3.14159265358979323846264338327950288419716939937510582097494459230781640628" +
		"620899862803482534211706798214808651328230664709384460955058223172535940812848111"
)

type Number struct {
	re *big.Float
	im *big.Float // nil when the value is real
}

func newFloat(prec uint) *big.Float {
	if prec < MinPrec {
		prec = MinPrec
	}
	return new(big.Float).SetPrec(prec).SetMode(mode)
}

func FromInt64(i int64, prec uint) Number {
	return Number{re: newFloat(prec).SetInt64(i)}
}

func FromFloat64(f float64, prec uint) (Number, error) {
	if math.IsNaN(f) {
		return Number{}, errs.New(errs.NumberIsNaN, "number")
	} else if math.IsInf(f, 0) {
		return Number{}, errs.New(errs.NumberIsInfinity, "number")
	}
	return Number{re: newFloat(prec).SetFloat64(f)}, nil
}

func fromComplex128(c complex128, prec uint) (Number, error) {
	re, err := FromFloat64(real(c), prec)
	if err != nil {
		return Number{}, err
	}
	im, err := FromFloat64(imag(c), prec)
	if err != nil {
		return Number{}, err
	}
	return Complex(re, im), nil
}

// Parse converts a decimal literal such as 12, 0.5 or 3.2e-4.
func Parse(s string, prec uint) (Number, error) {
	f, _, err := newFloat(prec).Parse(s, 10)
	if err != nil || f.IsInf() {
		return Number{}, errs.Errorf(errs.InvalidNumber, "number: %q", s)
	}
	return Number{re: f}, nil
}

func Complex(re, im Number) Number {
	n := Number{re: re.real()}
	if i := im.real(); i.Sign() != 0 {
		n.im = i
	}
	return n
}

func Pi(prec uint) Number {
	f, _, _ := newFloat(prec).Parse(piDigits, 10)
	return Number{re: f}
}

func (n Number) real() *big.Float {
	if n.re == nil {
		return newFloat(DefaultPrec)
	}
	return n.re
}

func (n Number) imag() *big.Float {
	if n.im == nil {
		return newFloat(n.Prec())
	}
	return n.im
}

func (n Number) Prec() uint {
	if n.re == nil {
		return DefaultPrec
	}
	return n.re.Prec()
}

func (n Number) Real() Number {
	return Number{re: n.real()}
}

func (n Number) Imag() Number {
	return Number{re: n.imag()}
}

func (n Number) IsReal() bool {
	return n.im == nil || n.im.Sign() == 0
}

func (n Number) IsZero() bool {
	return n.real().Sign() == 0 && n.IsReal()
}

// IsNaN is always false: big.Float cannot hold a NaN, so operations that would
// produce one fail with NumberIsNaN instead.
func (n Number) IsNaN() bool {
	return false
}

func (n Number) IsInf() bool {
	return n.real().IsInf() || (n.im != nil && n.im.IsInf())
}

// Sign is the sign of the real part.
func (n Number) Sign() int {
	return n.real().Sign()
}

func (n Number) IsInt() bool {
	return n.IsReal() && n.real().IsInt()
}

func (n Number) Int64() (int64, bool) {
	if !n.IsInt() {
		return 0, false
	}
	i, acc := n.real().Int64()
	return i, acc == big.Exact
}

func (n Number) Float64() float64 {
	f, _ := n.real().Float64()
	return f
}

func (n Number) complex128() complex128 {
	im, _ := n.imag().Float64()
	return complex(n.Float64(), im)
}

func resultPrec(a, b Number) uint {
	if a.Prec() > b.Prec() {
		return a.Prec()
	}
	return b.Prec()
}

func check(n Number) (Number, error) {
	if n.IsInf() {
		return Number{}, errs.New(errs.NumberIsInfinity, "number")
	}
	return n, nil
}

func Neg(a Number) Number {
	n := Number{re: newFloat(a.Prec()).Neg(a.real())}
	if a.im != nil {
		n.im = newFloat(a.Prec()).Neg(a.im)
	}
	return n
}

func Add(a, b Number) (Number, error) {
	prec := resultPrec(a, b)
	n := Number{re: newFloat(prec).Add(a.real(), b.real())}
	if !a.IsReal() || !b.IsReal() {
		n.im = newFloat(prec).Add(a.imag(), b.imag())
	}
	return check(n)
}

func Sub(a, b Number) (Number, error) {
	return Add(a, Neg(b))
}

func Mul(a, b Number) (Number, error) {
	prec := resultPrec(a, b)
	if a.IsReal() && b.IsReal() {
		return check(Number{re: newFloat(prec).Mul(a.real(), b.real())})
	}

	// (a + bi)(c + di) = (ac - bd) + (ad + bc)i
	ac := newFloat(prec).Mul(a.real(), b.real())
	bd := newFloat(prec).Mul(a.imag(), b.imag())
	ad := newFloat(prec).Mul(a.real(), b.imag())
	bc := newFloat(prec).Mul(a.imag(), b.real())
	return check(Number{re: ac.Sub(ac, bd), im: ad.Add(ad, bc)})
}

func Div(a, b Number) (Number, error) {
	if b.IsZero() {
		if a.IsZero() {
			return Number{}, errs.New(errs.NumberIsNaN, "number: 0 / 0")
		}
		return Number{}, errs.New(errs.NumberIsInfinity, "number: division by zero")
	}

	prec := resultPrec(a, b)
	if a.IsReal() && b.IsReal() {
		return check(Number{re: newFloat(prec).Quo(a.real(), b.real())})
	}

	// (a + bi) / (c + di) = ((ac + bd) + (bc - ad)i) / (c^2 + d^2)
	den := newFloat(prec).Mul(b.real(), b.real())
	den.Add(den, newFloat(prec).Mul(b.imag(), b.imag()))
	ac := newFloat(prec).Mul(a.real(), b.real())
	bd := newFloat(prec).Mul(a.imag(), b.imag())
	bc := newFloat(prec).Mul(a.imag(), b.real())
	ad := newFloat(prec).Mul(a.real(), b.imag())
	re := ac.Add(ac, bd)
	im := bc.Sub(bc, ad)
	return check(Number{re: re.Quo(re, den), im: im.Quo(im, den)})
}

func intPow(a Number, exp int64) (Number, error) {
	neg := exp < 0
	if neg {
		exp = -exp
	}

	result := FromInt64(1, a.Prec())
	base := a
	var err error
	for exp > 0 {
		if exp&1 == 1 {
			result, err = Mul(result, base)
			if err != nil {
				return Number{}, err
			}
		}
		exp >>= 1
		if exp > 0 {
			base, err = Mul(base, base)
			if err != nil {
				return Number{}, err
			}
		}
	}

	if neg {
		return Div(FromInt64(1, a.Prec()), result)
	}
	return result, nil
}

func Pow(a, b Number) (Number, error) {
	prec := resultPrec(a, b)
	if b.IsZero() {
		return FromInt64(1, prec), nil
	}
	if exp, ok := b.Int64(); ok {
		return intPow(a, exp)
	}
	if a.IsZero() {
		if b.IsReal() && b.Sign() > 0 {
			return FromInt64(0, prec), nil
		}
		return Number{}, errs.New(errs.NumberIsInfinity, "number: zero to a negative power")
	}
	if a.IsReal() && b.IsReal() && a.Sign() > 0 {
		x := newFloat(prec).Set(a.real())
		if b.real().Cmp(big.NewFloat(0.5)) == 0 {
			return Number{re: newFloat(prec).Sqrt(x)}, nil
		}
		y := newFloat(prec).Set(b.real())
		return check(Number{re: bigfloat.Pow(x, y)})
	}
	return fromComplex128(cmplx.Pow(a.complex128(), b.complex128()), prec)
}

// Root is the n-th root of a. The root of a negative real keeps the sign of
// the radicand, so the root of -4 of degree 2 is -2.
func Root(a, n Number) (Number, error) {
	if n.IsZero() {
		return Number{}, errs.New(errs.NumberIsInfinity, "number: root of degree zero")
	}
	prec := resultPrec(a, n)
	if a.IsZero() {
		return FromInt64(0, prec), nil
	}
	if !a.IsReal() || !n.IsReal() {
		inv, err := Div(FromInt64(1, prec), n)
		if err != nil {
			return Number{}, err
		}
		return Pow(a, inv)
	}

	neg := a.Sign() < 0
	mag := newFloat(prec).Abs(a.real())
	var r *big.Float
	if deg, ok := n.Int64(); ok && deg == 2 {
		r = newFloat(prec).Sqrt(mag)
	} else {
		inv := newFloat(prec).Quo(newFloat(prec).SetInt64(1), n.real())
		r = bigfloat.Pow(mag, inv)
		if deg, ok := n.Int64(); ok {
			r = exactIntRoot(r, mag, deg)
		}
	}
	if neg {
		r.Neg(r)
	}
	return check(Number{re: r})
}

// exactIntRoot snaps r to the nearest integer when that integer raised to deg
// reproduces mag exactly.
func exactIntRoot(r, mag *big.Float, deg int64) *big.Float {
	if deg <= 0 || deg > 64 || !mag.IsInt() {
		return r
	}
	i, _ := newFloat(r.Prec()).Add(r, big.NewFloat(0.5)).Int(nil)
	p := new(big.Int).Exp(i, big.NewInt(deg), nil)
	m, _ := mag.Int(nil)
	if p.Cmp(m) == 0 {
		return newFloat(r.Prec()).SetInt(i)
	}
	return r
}

func Abs(a Number) Number {
	prec := a.Prec()
	if a.IsReal() {
		return Number{re: newFloat(prec).Abs(a.real())}
	}
	sq := newFloat(prec).Mul(a.real(), a.real())
	sq.Add(sq, newFloat(prec).Mul(a.imag(), a.imag()))
	return Number{re: newFloat(prec).Sqrt(sq)}
}

// Log is the natural logarithm; non-positive and complex arguments take the
// principal branch.
func Log(a Number) (Number, error) {
	prec := a.Prec()
	if a.IsZero() {
		return Number{}, errs.New(errs.NumberIsInfinity, "number: log of zero")
	}
	if a.IsReal() && a.Sign() > 0 {
		return check(Number{re: bigfloat.Log(newFloat(prec).Set(a.real()))})
	}

	re := bigfloat.Log(Abs(a).real())
	if a.IsReal() {
		return Number{re: re, im: Pi(prec).re}, nil
	}
	im, _ := a.imag().Float64()
	arg, err := FromFloat64(math.Atan2(im, a.Float64()), prec)
	if err != nil {
		return Number{}, err
	}
	return Complex(Number{re: re}, arg), nil
}

func Exp(a Number) (Number, error) {
	prec := a.Prec()
	if a.IsReal() {
		return check(Number{re: bigfloat.Exp(newFloat(prec).Set(a.real()))})
	}
	return fromComplex128(cmplx.Exp(a.complex128()), prec)
}

func trig(a Number, fr func(float64) float64, fc func(complex128) complex128) (Number, error) {
	if a.IsReal() {
		return FromFloat64(fr(a.Float64()), a.Prec())
	}
	return fromComplex128(fc(a.complex128()), a.Prec())
}

// Sin, Cos and Tan are computed in float64 precision.
func Sin(a Number) (Number, error) {
	return trig(a, math.Sin, cmplx.Sin)
}

func Cos(a Number) (Number, error) {
	return trig(a, math.Cos, cmplx.Cos)
}

func Tan(a Number) (Number, error) {
	return trig(a, math.Tan, cmplx.Tan)
}

// Cmp orders two reals; ok is false when either value is complex.
func Cmp(a, b Number) (int, bool) {
	if !a.IsReal() || !b.IsReal() {
		return 0, false
	}
	return a.real().Cmp(b.real()), true
}

func Equal(a, b Number) bool {
	return a.real().Cmp(b.real()) == 0 && a.imag().Cmp(b.imag()) == 0
}

func floatText(f *big.Float) string {
	if f.Sign() == 0 {
		return "0"
	} else if f.IsInf() {
		if f.Sign() < 0 {
			return "-Inf"
		}
		return "Inf"
	}
	return f.Text('f', -1)
}

// Text is the exact decimal form: the shortest digits that identify the value
// at its precision, never in exponent notation.
func (n Number) Text() string {
	if n.IsReal() {
		return floatText(n.real())
	}

	var buf strings.Builder
	if n.real().Sign() != 0 {
		buf.WriteString(floatText(n.real()))
		if n.im.Sign() > 0 {
			buf.WriteRune('+')
		}
	}
	buf.WriteString(floatText(n.im))
	buf.WriteRune('i')
	return buf.String()
}

func (n Number) String() string {
	return n.Text()
}
