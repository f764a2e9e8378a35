package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Numbering is the hierarchical position token extracted from a header line.
// The token text is preserved exactly as it appeared for traceability.
type Numbering struct {
	Number     int    // NGSQ person number ("3" in "3. " or "+3 iv. ")
	BirthOrder int    // Roman-numeral value for child headers, 0 if absent or damaged
	Roman      string // Roman token as it appeared ("" for parent headers)
	Carried    bool   // Leading "+" on a child header
	Token      string // The full position token as it appeared
	Remainder  string // Free text after the token
}

// ParseParentHeader splits a KindParentHeader line into its numbering token
// and remainder. Classification and extraction use the same pattern, so a
// failure here means the caller mis-routed the line; it is reported as a
// recoverable error, not a panic, and the caller downgrades the line.
func ParseParentHeader(text string) (Numbering, error) {
	m := parentHeaderRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Numbering{}, fmt.Errorf("no parent numbering token in %q", text)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Numbering{}, fmt.Errorf("parent number %q: %w", m[1], err)
	}
	return Numbering{
		Number:    n,
		Token:     m[1] + ".",
		Remainder: m[2],
	}, nil
}

// ParseChildHeader splits a KindChildHeader line. A damaged Roman numeral is
// tolerated: the child keeps birth order 0 and the returned error flags the
// token for the anomaly log, but Number and Remainder are still valid.
func ParseChildHeader(text string) (Numbering, error) {
	m := childHeaderRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Numbering{}, fmt.Errorf("no child numbering token in %q", text)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Numbering{}, fmt.Errorf("child number %q: %w", m[2], err)
	}
	num := Numbering{
		Number:    n,
		Roman:     m[3],
		Carried:   m[1] == "+",
		Token:     strings.TrimSpace(m[1] + m[2] + " " + m[3] + "."),
		Remainder: m[4],
	}
	order, err := RomanValue(m[3])
	if err != nil {
		// Damaged token: OCR noise like "iiix". Keep the child, lose the order.
		return num, fmt.Errorf("birth order %q: %w", m[3], err)
	}
	num.BirthOrder = order
	return num, nil
}

var romanDigits = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100,
}

// RomanValue parses a (lowercase or uppercase) Roman numeral. Birth orders in
// real reports rarely pass xx, but the full subtractive rules are cheap.
func RomanValue(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty numeral")
	}
	lower := strings.ToLower(s)
	total := 0
	repeat := 0
	prev := 0
	for i := 0; i < len(lower); i++ {
		v, ok := romanDigits[lower[i]]
		if !ok {
			return 0, fmt.Errorf("invalid numeral character %q", lower[i])
		}
		if v == prev {
			repeat++
			if repeat >= 4 || v == 5 || v == 50 {
				return 0, fmt.Errorf("malformed numeral %q", s)
			}
		} else {
			repeat = 1
		}
		if i+1 < len(lower) {
			next, ok := romanDigits[lower[i+1]]
			if !ok {
				return 0, fmt.Errorf("invalid numeral character %q", lower[i+1])
			}
			if v < next {
				if next > v*10 || (v != 1 && v != 10) {
					return 0, fmt.Errorf("malformed numeral %q", s)
				}
				total += next - v
				i++
				prev = 0
				repeat = 0
				continue
			}
		}
		if prev != 0 && v > prev {
			return 0, fmt.Errorf("malformed numeral %q", s)
		}
		total += v
		prev = v
	}
	return total, nil
}
