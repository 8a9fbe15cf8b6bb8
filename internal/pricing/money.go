package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Round2 rounds v to the 2 decimal places every stored monetary field carries.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundToInteger rounds v to a whole currency unit, half away from zero.
func RoundToInteger(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// ParseNumber coerces a loosely typed input (string, json number, int, bool...) to a float.
// Anything unparseable, NaN or infinite yields 0.
func ParseNumber(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
