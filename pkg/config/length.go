package config

import (
	"math"
	"strconv"

	"github.com/matzehuels/shelfmount/pkg/units"
)

// Inches is a length read from a length expression whose default unit is
// inches: 30, "28-31/32", "1.0743in" or "760mm". The value is in inches.
type Inches float64

func (l *Inches) UnmarshalText(text []byte) error {
	v, err := units.ParseLengthUnit(string(text))
	if err != nil {
		return err
	}
	*l = Inches(v)
	return nil
}

func (l Inches) MarshalText() ([]byte, error) {
	return []byte(trim(float64(l))), nil
}

// Millimetres is a length whose default unit is millimetres: 38, "4.5mm" or
// "1/16in". The value is stored in inches like every other length.
type Millimetres float64

func (l *Millimetres) UnmarshalText(text []byte) error {
	v, err := units.ParseMillimetres(string(text))
	if err != nil {
		return err
	}
	*l = Millimetres(v)
	return nil
}

func (l Millimetres) MarshalText() ([]byte, error) {
	return []byte(trim(units.ToMm(float64(l))) + "mm"), nil
}

// trim formats v with at most six decimals and no trailing zeros, hiding
// the float noise of an inch/mm round trip.
func trim(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
