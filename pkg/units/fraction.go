package units

import (
	"math"
	"strconv"
)

// DefaultMaxDenominator is the finest fraction shown on readouts (1/32").
const DefaultMaxDenominator = 32

// Fraction is a length rounded to the nearest binary fraction.
// Numerator is zero for whole numbers; otherwise Numerator/Denominator is
// reduced and strictly between 0 and 1.
type Fraction struct {
	Negative    bool
	Whole       int
	Numerator   int
	Denominator int
}

// NearestBinaryFraction rounds x to the closest fraction whose denominator is
// a power of two no larger than maxDenominator.
//
// Denominators are tried in increasing order (1, 2, 4, ...) and a candidate
// replaces the current best only when its error is strictly smaller, so ties
// resolve to the smallest denominator. A result that rounds up to a whole
// unit is carried into Whole. Negative inputs keep their sign and are rounded
// on their absolute value. A maxDenominator below 1 is treated as 1.
func NearestBinaryFraction(x float64, maxDenominator int) Fraction {
	if maxDenominator < 1 {
		maxDenominator = 1
	}
	neg := x < 0
	abs := math.Abs(x)
	whole := math.Floor(abs)
	frac := abs - whole

	bestNum, bestDen := 0, 1
	bestErr := frac
	for den := 1; den <= maxDenominator; den *= 2 {
		num := int(math.Round(frac * float64(den)))
		if e := math.Abs(frac - float64(num)/float64(den)); e < bestErr {
			bestErr = e
			bestNum, bestDen = num, den
		}
	}

	f := Fraction{Negative: neg, Whole: int(whole)}
	switch {
	case bestNum == 0:
	case bestNum == bestDen:
		f.Whole++
	default:
		g := gcd(bestNum, bestDen)
		f.Numerator, f.Denominator = bestNum/g, bestDen/g
	}
	if f.Whole == 0 && f.Numerator == 0 {
		f.Negative = false
	}
	return f
}

// Value returns the fraction as a float.
func (f Fraction) Value() float64 {
	v := float64(f.Whole)
	if f.Numerator != 0 {
		v += float64(f.Numerator) / float64(f.Denominator)
	}
	if f.Negative {
		return -v
	}
	return v
}

// Bare renders the fraction without the inch mark: "3/4", "2-1/8", "-5".
func (f Fraction) Bare() string {
	s := ""
	if f.Negative {
		s = "-"
	}
	switch {
	case f.Numerator == 0:
		return s + strconv.Itoa(f.Whole)
	case f.Whole == 0:
		return s + strconv.Itoa(f.Numerator) + "/" + strconv.Itoa(f.Denominator)
	default:
		return s + strconv.Itoa(f.Whole) + "-" + strconv.Itoa(f.Numerator) + "/" + strconv.Itoa(f.Denominator)
	}
}

// String renders the fraction with a trailing inch mark, e.g. `2-1/8"`.
func (f Fraction) String() string {
	return f.Bare() + `"`
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
