package dscan

import (
	"strconv"
	"strings"

	"github.com/dscutil/pstops/pserr"
)

// ParsePageLabel parses a "%%Page: <label> <ordinal>" comment line (as
// found at a PageOffsets entry) into its label and trailing page ordinal.
// The label is either a parenthesised token — copied verbatim including
// the parens, with balanced nested parens consumed as part of it — or a
// single whitespace-delimited token.
func ParsePageLabel(line string) (label string, pageno int, err error) {
	const kw = "%%Page:"
	if !strings.HasPrefix(line, kw) {
		return "", 0, pserr.New(pserr.KindIO, "malformed page comment %q", firstLine(line))
	}

	i := len(kw)
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	start := i

	if i < len(line) && line[i] == '(' {
		paren := 1
		i++
		for paren > 0 {
			if i >= len(line) {
				return "", 0, pserr.New(pserr.KindIO, "bad page label in %q", firstLine(line))
			}
			switch line[i] {
			case '(':
				paren++
			case ')':
				paren--
			}
			i++
		}
	} else {
		for i < len(line) && !isSpace(line[i]) {
			i++
		}
	}

	label = line[start:i]
	pageno = atoi(line[i:])
	return label, pageno, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// atoi mimics C's atoi: skip leading whitespace, an optional sign, then
// digits, stopping at the first non-digit; 0 if no digits are found.
func atoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0
	}
	return n
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
