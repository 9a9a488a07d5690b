package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

// lengthLexer tokenises length expressions such as "-2-3/8", "3 1/4" or "38mm".
var lengthLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(?:\.\d*)?|\.\d+`},
	{Name: "Unit", Pattern: `(?i)mm|in|"`},
	{Name: "Punct", Pattern: `[-+/]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// lengthExpr is the grammar root:
//
//	expr     = sign? Number tail? Unit?
//	tail     = "/" Number | "-"? fraction
//	fraction = Number "/" Number
type lengthExpr struct {
	Sign string      `parser:"@(\"-\" | \"+\")?"`
	Lead string      `parser:"@Number"`
	Tail *lengthTail `parser:"@@?"`
	Unit string      `parser:"@Unit?"`
}

type lengthTail struct {
	Denominator string        `parser:"  \"/\" @Number"`
	Mixed       *fractionPart `parser:"| \"-\"? @@"`
}

type fractionPart struct {
	Numerator   string `parser:"@Number \"/\""`
	Denominator string `parser:"@Number"`
}

var lengthParser = participle.MustBuild[lengthExpr](
	participle.Lexer(lengthLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseError reports a length expression that could not be interpreted.
type ParseError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse length %q: %s", e.Input, e.Reason)
}

// Unwrap exposes the UNPARSEABLE_LENGTH code.
func (e *ParseError) Unwrap() error {
	return errs.New(errs.ErrCodeUnparseableLength, "%s", e.Reason)
}

// ParseLength parses a plain decimal ("1.25"), a bare fraction ("5/8") or a
// mixed number ("2-5/8" or "2 5/8"), with an optional leading sign.
// Empty or whitespace-only input parses to 0. Unit suffixes are rejected; use
// ParseLengthUnit for those.
func ParseLength(text string) (float64, error) {
	expr, err := parseExpr(text)
	if err != nil || expr == nil {
		return 0, err
	}
	if expr.Unit != "" {
		return 0, &ParseError{Input: text, Reason: "unexpected unit " + strconv.Quote(expr.Unit)}
	}
	return expr.value(text)
}

// ParseLengthUnit parses a length expression with an optional unit suffix
// ("mm", "in" or `"`) and returns inches. Input without a unit is taken to be
// inches.
func ParseLengthUnit(text string) (float64, error) {
	expr, err := parseExpr(text)
	if err != nil || expr == nil {
		return 0, err
	}
	v, err := expr.value(text)
	if err != nil {
		return 0, err
	}
	if strings.EqualFold(expr.Unit, "mm") {
		return ToInches(v), nil
	}
	return v, nil
}

// ParseMillimetres parses a length expression given in millimetres (the unit
// suffix is optional) and returns inches.
func ParseMillimetres(text string) (float64, error) {
	expr, err := parseExpr(text)
	if err != nil || expr == nil {
		return 0, err
	}
	v, err := expr.value(text)
	if err != nil {
		return 0, err
	}
	switch strings.ToLower(expr.Unit) {
	case "", "mm":
		return ToInches(v), nil
	default:
		return v, nil
	}
}

func parseExpr(text string) (*lengthExpr, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	expr, err := lengthParser.ParseString("", text)
	if err != nil {
		return nil, &ParseError{Input: text, Reason: err.Error()}
	}
	return expr, nil
}

func (e *lengthExpr) value(input string) (float64, error) {
	fail := func(reason string) (float64, error) {
		return 0, &ParseError{Input: input, Reason: reason}
	}

	var v float64
	switch {
	case e.Tail == nil:
		lead, err := strconv.ParseFloat(e.Lead, 64)
		if err != nil {
			return fail(err.Error())
		}
		v = lead
	case e.Tail.Mixed == nil:
		num, ok := integer(e.Lead)
		den, ok2 := integer(e.Tail.Denominator)
		if !ok || !ok2 {
			return fail("fraction parts must be whole numbers")
		}
		if den == 0 {
			return fail("zero denominator")
		}
		v = float64(num) / float64(den)
	default:
		whole, ok := integer(e.Lead)
		num, ok2 := integer(e.Tail.Mixed.Numerator)
		den, ok3 := integer(e.Tail.Mixed.Denominator)
		if !ok || !ok2 || !ok3 {
			return fail("mixed number parts must be whole numbers")
		}
		if den == 0 {
			return fail("zero denominator")
		}
		v = float64(whole) + float64(num)/float64(den)
	}

	if e.Sign == "-" {
		v = -v
	}
	return v, nil
}

func integer(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
