package lib

import "math"

// ParseDecimal converts a lexed decimal literal to its value. Literals too
// large for int64 saturate at math.MaxInt64 so range checks downstream still
// see an out-of-range value instead of a parse failure.
func ParseDecimal(lit string) int64 {
	var val int64
	for i := 0; i < len(lit); i++ {
		d := int64(lit[i] - '0')
		if val > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}
		val = val*10 + d
	}
	return val
}

// FitsByte reports whether val is a legal byte literal value.
func FitsByte(val int64) bool {
	return val >= 0 && val <= math.MaxUint8
}
