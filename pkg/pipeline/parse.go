package pipeline

import (
	"strings"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// SpacingInput is spacing as typed by a user: length expressions such as
// "28 31/32", "736mm" or "29.5". Empty fields keep the base value.
type SpacingInput struct {
	Front        string `json:"front,omitempty"`
	Back         string `json:"back,omitempty"`
	Convention   string `json:"convention,omitempty"`
	NutClearance string `json:"nut_clearance,omitempty"` // millimetres unless suffixed
}

// ParseSpacing applies in to base and validates the result. A front value
// without a back value sets both.
func ParseSpacing(in SpacingInput, base fixture.Spacing) (fixture.Spacing, error) {
	s := base
	if strings.TrimSpace(in.Front) != "" {
		v, err := units.ParseLengthUnit(in.Front)
		if err != nil {
			return s, err
		}
		s.Front, s.Back = v, v
	}
	if strings.TrimSpace(in.Back) != "" {
		v, err := units.ParseLengthUnit(in.Back)
		if err != nil {
			return s, err
		}
		s.Back = v
	}
	if in.Convention != "" {
		conv, err := fixture.ParseConvention(in.Convention)
		if err != nil {
			return s, errs.Wrap(errs.ErrCodeInvalidSpacing, err, "convention")
		}
		s.Convention = conv
	}
	if strings.TrimSpace(in.NutClearance) != "" {
		v, err := units.ParseMillimetres(in.NutClearance)
		if err != nil {
			return s, err
		}
		s.NutClearance = v
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
