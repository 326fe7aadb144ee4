// Package types contains value helpers shared by the fixture, generator and
// verifier packages.
package types

import (
	"encoding/json"
	"math"
)

// AsInt64 converts an interface{} to int64 and reports whether v held an
// integral number that fits in an int64. Supports int, int8, int16, int32,
// int64, uint, uint8, uint16, uint32, uint64, float32, float64 and
// json.Number. Unsigned values above math.MaxInt64, floats with a fractional
// part and floats outside the int64 range report false; so does anything else.
func AsInt64(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int64:
		return i, true
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int16:
		return int64(i), true
	case int8:
		return int64(i), true
	case uint:
		return uintToInt64(uint64(i))
	case uint64:
		return uintToInt64(i)
	case uint32:
		return int64(i), true
	case uint16:
		return int64(i), true
	case uint8:
		return int64(i), true
	case float64:
		return floatToInt64(i)
	case float32:
		return floatToInt64(float64(i))
	case json.Number:
		if n, err := i.Int64(); err == nil {
			return n, true
		}
		f, err := i.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	default:
		return 0, false
	}
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// twoTo63 is the smallest float64 above every int64.
const twoTo63 = float64(1 << 63)

// floatToInt64 truncates f when it is integral and within int64 range. Out of
// range values, including infinities and NaN, convert to 0.
func floatToInt64(f float64) (int64, bool) {
	if !(f >= -twoTo63 && f < twoTo63) {
		return 0, false
	}
	return int64(f), f == math.Trunc(f)
}

// NormalizeJSON rewrites a value decoded with json.Decoder.UseNumber so that
// integral numbers become int64 and other numbers float64. Objects and arrays
// are normalized recursively. This keeps decoded fixtures comparable with the
// values the generator stores.
func NormalizeJSON(v interface{}) interface{} {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]interface{}:
		for k, e := range x {
			x[k] = NormalizeJSON(e)
		}
		return x
	case []interface{}:
		for i, e := range x {
			x[i] = NormalizeJSON(e)
		}
		return x
	default:
		return v
	}
}
