package dispatch

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultTimeout is used when a discovery call has no usable duration
const DefaultTimeout = 10.0

// numberArg returns args[i] as a number, accepting json numbers, native
// numbers and numeric strings. Anything else yields def.
func numberArg(args []any, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}

	var value float64

	switch v := args[i].(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case int32:
		value = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return def
		}
		value = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return def
		}
		value = f
	default:
		return def
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return def
	}

	return value
}

// intArg returns args[i] as a positive integer or nil
func intArg(args []any, i int) *int {
	value := numberArg(args, i, -1)

	if value <= 0 || value != math.Trunc(value) {
		return nil
	}

	n := int(value)

	return &n
}

// stringArg returns args[i] when it is a string, otherwise ""
func stringArg(args []any, i int) string {
	if i >= len(args) {
		return ""
	}

	s, ok := args[i].(string)

	if !ok {
		return ""
	}

	return s
}
