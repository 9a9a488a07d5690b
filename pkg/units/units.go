package units

import (
	"fmt"
	"math"
)

const (
	// MmPerInch is the exact millimetre/inch ratio.
	MmPerInch = 25.4

	// DefaultPrecision is the number of decimals used by FormatInches.
	DefaultPrecision = 5
)

// ToMm converts inches to millimetres.
func ToMm(inches float64) float64 {
	return inches * MmPerInch
}

// ToInches converts millimetres to inches.
func ToInches(mm float64) float64 {
	return mm / MmPerInch
}

// FormatWithFraction renders a length as decimal inches, nearest 1/32 fraction
// and millimetres, e.g. `1.2500" (1-1/4", 31.75mm)`.
func FormatWithFraction(inches float64) string {
	return fmt.Sprintf(`%.4f" (%s, %.2fmm)`, inches, NearestBinaryFraction(inches, DefaultMaxDenominator), ToMm(inches))
}

// FormatInches renders a length with DefaultPrecision decimals, optionally
// followed by its millimetre equivalent.
func FormatInches(inches float64, withMm bool) string {
	if withMm {
		return fmt.Sprintf(`%.*f" (%.*f mm)`, DefaultPrecision, inches, DefaultPrecision, ToMm(inches))
	}
	return fmt.Sprintf(`%.*f"`, DefaultPrecision, inches)
}

// FormatMm renders a length given in inches as millimetres with the given
// number of decimals.
func FormatMm(inches float64, decimals int) string {
	return fmt.Sprintf("%.*fmm", decimals, ToMm(inches))
}

// ApproxEqual reports whether a and b differ by at most tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
