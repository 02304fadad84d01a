package plan

import (
	"strconv"
	"strings"
	"unicode"
)

// LineKeySentinel is what an unparsable order-line number canonicalizes to.
// Sentinel rows only ever match other sentinel rows, so a bad value can't
// turn into an accidental cross-join.
const LineKeySentinel = "-1"

// NormalizeItem strips every space from a part number, the full-width one
// included. The BOM master pads items with trailing blanks and the schedule
// does not, so this is the join key everywhere two tables must agree on
// "the same part".
func NormalizeItem(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IntKey folds the order-line number variants 10 / 10.0 / "10 " into "10".
func IntKey(s string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return LineKeySentinel
	}
	return strconv.FormatInt(int64(f), 10)
}
