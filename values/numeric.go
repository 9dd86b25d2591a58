package values

import (
	"fmt"
	"io"
	"math"
	"math/big"
)

// Integer wraps an int64.
type Integer int64

func WrapInteger(i int64) Integer { return Integer(i) }

func (Integer) Kind() Kind             { return KInteger }
func (i Integer) ToString(w io.Writer) { fmt.Fprintf(w, "%d", int64(i)) }
func (i Integer) String() string       { return toString(i) }
func (i Integer) Int() int64           { return int64(i) }

// Float wraps a float64.
type Float float64

func WrapFloat(f float64) Float { return Float(f) }

func (Float) Kind() Kind { return KFloat }
func (f Float) ToString(w io.Writer) {
	io.WriteString(w, formatFloat(float64(f)))
}
func (f Float) String() string { return toString(f) }
func (f Float) Float() float64 { return float64(f) }

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%.1f", f)
	}
	return fmt.Sprintf("%g", f)
}

// Ratio is an exact rational number. Stored reduced, with a
// positive denominator; Equal and Compare treat it numerically, through
// its float value.
type Ratio struct {
	num *big.Int
	den *big.Int
}

// NewRatio builds a reduced ratio num/den. Panics if den is zero; its
// caller RatioFromFloat always passes a nonzero denominator.
func NewRatio(num, den int64) Ratio {
	n := big.NewInt(num)
	d := big.NewInt(den)
	if d.Sign() == 0 {
		panic(fmtErr(`ratio denominator must not be zero`))
	}
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Sign() != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return Ratio{n, d}
}

// RatioFromFloat approximates a float as an exact ratio over a fixed
// denominator of 1e9, which is precise enough for the percentage literals
// (`50%`) this value kind exists to represent.
func RatioFromFloat(f float64) Ratio {
	const scale = 1000000000
	return NewRatio(int64(math.Round(f*scale)), scale)
}

func (Ratio) Kind() Kind { return KRatio }
func (r Ratio) ToString(w io.Writer) {
	fmt.Fprintf(w, "%s%%", formatFloat(r.Float()*100))
}
func (r Ratio) String() string { return toString(r) }
func (r Ratio) Float() float64 {
	f := new(big.Float).Quo(new(big.Float).SetInt(r.num), new(big.Float).SetInt(r.den))
	v, _ := f.Float64()
	return v
}

// Length is a dimensioned length. Absolute lengths are stored in
// points; the unit is retained only for display.
type Length struct {
	Points float64
	Unit   string
}

func NewLength(value float64, unit string) Length {
	pts := value
	switch unit {
	case `em`:
		pts = value // em is relative; stored as-is, resolved by the (out of scope) layouter
	case `mm`:
		pts = value * 2.83464566929
	case `cm`:
		pts = value * 28.3464566929
	case `in`:
		pts = value * 72
	case `pt`:
		pts = value
	}
	return Length{Points: pts, Unit: unit}
}

func (Length) Kind() Kind { return KLength }
func (l Length) ToString(w io.Writer) {
	fmt.Fprintf(w, "%s%s", formatFloat(l.Points), orDefault(l.Unit, `pt`))
}
func (l Length) String() string { return toString(l) }

func orDefault(s, d string) string {
	if s == `` {
		return d
	}
	return s
}

// Angle is stored in radians internally; ToString renders degrees, the
// literal form used for `Deg`.
type Angle struct {
	Radians float64
}

func NewAngleDegrees(deg float64) Angle { return Angle{Radians: deg * math.Pi / 180} }
func NewAngleRadians(rad float64) Angle { return Angle{Radians: rad} }

func (Angle) Kind() Kind { return KAngle }
func (a Angle) ToString(w io.Writer) {
	fmt.Fprintf(w, "%sdeg", formatFloat(a.Radians*180/math.Pi))
}
func (a Angle) String() string { return toString(a) }

// Fraction is the `fr` unit used by grid/stack layouts.
type Fraction float64

func WrapFraction(f float64) Fraction { return Fraction(f) }

func (Fraction) Kind() Kind { return KFraction }
func (f Fraction) ToString(w io.Writer) {
	fmt.Fprintf(w, "%sfr", formatFloat(float64(f)))
}
func (f Fraction) String() string { return toString(f) }
