package docgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize canonicalizes a raw cell value into display text. Absent values
// and NaN become "", numbers with a zero fractional part lose the decimal point
// (781128.0 -> "781128") and everything else is printed and trimmed.
func Normalize(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) {
		return "" // missing
	}
	if math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	if f == math.Trunc(f) {
		if f == 0 {
			return "0" // -0
		}
		return strconv.FormatFloat(f, 'f', 0, bits)
	}
	// plain decimal notation except for very small or very large magnitudes
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
