package ingest

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount turns a locale-ambiguous numeric string into an amount. The
// comma handling mirrors the upstream feed's quirks and must not be "fixed":
//
//   - no comma: parse the trimmed string as a plain decimal.
//   - if the digit count before the first comma is greater than 2 (any comma
//     count): everything from the first comma onward is garbage from a
//     truncated long number; keep only the digit/sign/point characters before
//     it. "190,000" -> 190, "1234,567,890" -> 1234.
//   - exactly one comma: the comma is a thousands separator. "9,990" -> 9990.
//   - two or more commas: cut at the second comma, drop the first comma,
//     parse the rest. "1,400,000" -> "1,400" -> 1400.
//
// The second return value is false when no amount could be parsed; this
// function never fails any harder than that.
func ParseAmount(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}

	var commaIdxs []int
	for i, ch := range s {
		if ch == ',' {
			commaIdxs = append(commaIdxs, i)
		}
	}

	if len(commaIdxs) == 0 {
		return parseFloat(s)
	}

	first := commaIdxs[0]
	digitsBefore := 0
	for _, ch := range s[:first] {
		if unicode.IsDigit(ch) {
			digitsBefore++
		}
	}
	if digitsBefore > 2 {
		var head strings.Builder
		for _, ch := range s[:first] {
			if unicode.IsDigit(ch) || ch == '+' || ch == '-' || ch == '.' {
				head.WriteRune(ch)
			}
		}
		h := head.String()
		if h == "" || h == "+" || h == "-" {
			return 0, false
		}
		return parseFloat(h)
	}

	if len(commaIdxs) == 1 {
		return parseFloat(strings.ReplaceAll(s, ",", ""))
	}

	// Two or more commas: truncate at the second, remove the first.
	second := commaIdxs[1]
	trimmed := s[:second]
	if i := strings.IndexByte(trimmed, ','); i != -1 {
		trimmed = trimmed[:i] + trimmed[i+1:]
	}
	return parseFloat(trimmed)
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
