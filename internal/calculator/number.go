package calculator

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f in its shortest round-trip decimal form. Magnitudes
// at or above 1e21 or below 1e-6 use exponent notation ("1e+21", "1.5e-7").
// Non-finite values and negative zero render as "0".
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops leading zeros from the exponent: "1.5e-07" -> "1.5e-7".
func trimExponent(s string) string {
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + exp[:1] + digits
}

// parseOperand reads the longest numeric prefix of s. Text with no numeric
// prefix, such as a lone "-", reads as 0.
func parseOperand(s string) float64 {
	for end := len(s); end > 0; end-- {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil {
			return f
		}
	}
	return 0
}
