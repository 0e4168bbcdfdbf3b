package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseFloat coerces a decoded JSON value into a finite float64.
// ok is false for nil, empty, unparsable, NaN and infinite values.
func ParseFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		s = strings.TrimSuffix(s, "%")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		return 0, false
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatOr returns the parsed value of v or def.
func FloatOr(v interface{}, def float64) float64 {
	if f, ok := ParseFloat(v); ok {
		return f
	}
	return def
}

// Round rounds f to the given number of decimals.
func Round(f float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(f*p) / p
}
