// Package dimen parses PostScript length literals — a decimal number with
// an optional unit suffix — into PS points (1 pt = 1/72 in).
package dimen

import (
	"strconv"
	"strings"

	"github.com/dscutil/pstops/pserr"
)

// per-unit multiplier to convert a bare number into PS points.
const (
	ptPerIn = 72
	ptPerCm = 28.346456692913385
	ptPerMm = 2.8346456692913385
)

// Parse parses a single dimension literal (e.g. "3.5in", "-10mm", "72")
// against the current output width/height (needed for the "w"/"h" unit
// suffixes). width/height must be >= 0 when a "w"/"h" suffix is used, else
// Parse returns a KindConfig error.
//
// Unlike the C original's parsedouble, which scans '-' anywhere in the
// numeric token (a documented bug in spec.md's Open Questions), Parse
// requires a standard leading-sign decimal: this is intentional, not an
// oversight.
func Parse(s string, width, height float64) (float64, error) {
	num, rest, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}

	switch {
	case rest == "":
		return num, nil
	case strings.HasPrefix(rest, "pt"):
		return num, trailingGarbage(rest, "pt")
	case strings.HasPrefix(rest, "in"):
		return num * ptPerIn, trailingGarbage(rest, "in")
	case strings.HasPrefix(rest, "cm"):
		return num * ptPerCm, trailingGarbage(rest, "cm")
	case strings.HasPrefix(rest, "mm"):
		return num * ptPerMm, trailingGarbage(rest, "mm")
	case strings.HasPrefix(rest, "w"):
		if width < 0 {
			return 0, pserr.New(pserr.KindConfig, "width not set, cannot parse %q", s)
		}
		return num * width, trailingGarbage(rest, "w")
	case strings.HasPrefix(rest, "h"):
		if height < 0 {
			return 0, pserr.New(pserr.KindConfig, "height not set, cannot parse %q", s)
		}
		return num * height, trailingGarbage(rest, "h")
	default:
		return 0, pserr.New(pserr.KindArgument, "bad dimension %q", s)
	}
}

func trailingGarbage(rest, unit string) error {
	if rest != unit {
		return pserr.New(pserr.KindArgument, "trailing garbage after unit in %q", rest)
	}
	return nil
}

// parseDecimal consumes an optional sign, digits, and at most one '.', and
// returns the parsed value plus whatever of s remains unconsumed.
func parseDecimal(s string) (float64, string, error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	sawDigit := false
	sawDot := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			sawDigit = true
			i++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			i++
			continue
		}
		break
	}
	if !sawDigit {
		return 0, "", pserr.New(pserr.KindArgument, "bad dimension %q", s)
	}
	num, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", pserr.New(pserr.KindArgument, "bad dimension %q", s)
	}
	return num, s[i:], nil
}

// ParseInt parses an unsigned-looking integer prefix of s (the -N/-nN
// pages-per-sheet digit), failing if no digits are consumed.
func ParseInt(s string) (int, error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, pserr.New(pserr.KindArgument, "invalid number %q", s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, pserr.New(pserr.KindArgument, "invalid number %q", s)
	}
	return n, nil
}
