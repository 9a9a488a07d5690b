package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		mm   bool
		want float64
	}{
		{"28 31/32", false, 28.96875},
		{"2-5/8", false, 2.625},
		{"5/8", false, 0.625},
		{"25.4mm", false, 1},
		{"25.4", true, 1},
		{"1in", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLength(tt.in, tt.mm)
			if err != nil {
				t.Fatalf("parseLength(%q, %v): %v", tt.in, tt.mm, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseLength(%q, %v) = %v, want %v", tt.in, tt.mm, got, tt.want)
			}
		})
	}
}

func TestParseLengthInvalid(t *testing.T) {
	for _, in := range []string{"abc", "1/0", "5/", "2 5/0"} {
		_, err := parseLength(in, false)
		if !errs.Is(err, errs.ErrCodeUnparseableLength) {
			t.Errorf("parseLength(%q) error = %v, want UNPARSEABLE_LENGTH", in, err)
		}
	}
}

func TestPrintLength(t *testing.T) {
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	printLength("28 31/32", 28.96875, 32)

	out := buf.String()
	for _, want := range []string{"28 31/32", "28.96875", "735.81"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
