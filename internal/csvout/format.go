package csvout

import (
	"math"
	"strconv"
	"strings"
)

// FormatRate renders f with the shortest digits that round-trip, in the
// layout rate consumers already parse:
//
//	15        -> 15.0
//	12.34     -> 12.34
//	0.001234  -> 0.001234
//	1e20      -> 1e20
//	1.5e-7    -> 1.5e-7
//
// Integral values up to 16 digits keep a ".0" suffix. Non-finite values are
// written as NaN, inf and -inf.
func FormatRate(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	// "-d.ddde±xx"
	s := strconv.FormatFloat(f, 'e', -1, 64)
	var b strings.Builder
	if s[0] == '-' {
		b.WriteByte('-')
		s = s[1:]
	}
	mantissa, exp, _ := strings.Cut(s, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)

	n := len(digits)
	point := e + 1 // digits[:point] is the integer part
	switch {
	case point >= n && point <= 16:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", point-n))
		b.WriteString(".0")
	case point > 0 && point <= 16:
		b.WriteString(digits[:point])
		b.WriteByte('.')
		b.WriteString(digits[point:])
	case point > -5 && point <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -point))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if n > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		b.WriteString(strconv.Itoa(e))
	}
	return b.String()
}
