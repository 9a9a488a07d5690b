// Package units converts, formats and parses physical lengths.
//
// All geometry in shelfmount is carried in inches. This package provides the
// fixed-ratio conversions to and from millimetres, the nearest binary
// fraction used on tape-measure style readouts, and a parser for the length
// expressions people actually type:
//
//	units.ParseLength("28-31/32")   // 28.96875
//	units.ParseLength("3 1/4")      // 3.25
//	units.ParseLength("5/8")        // 0.625
//	units.ParseLengthUnit("38mm")   // 1.49606...
//
// Parse failures are returned as *ParseError values and never replaced by a
// guessed number; callers decide whether to keep the previous value.
//
// The formatting helpers ([FormatWithFraction], [FormatInches]) exist for
// display and export collaborators only and carry no computation.
package units
