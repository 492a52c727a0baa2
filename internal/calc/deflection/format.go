package deflection

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatExp renders v in exponent notation with four fractional digits and
// an unpadded exponent, e.g. 4.2188e-4.
func FormatExp(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'e', 4, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return fmt.Sprintf("%se%+d", s[:i], exp)
}

// FormatX renders a station the way chart labels show it.
func FormatX(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
