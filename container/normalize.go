package container

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"
)

// Normalize converts a decoded value into the canonical configuration shape.
//
//   - maps of any type become map[string]any (keys via fmt.Sprint)
//   - slices and arrays of any type except []byte become []any
//   - all integer kinds become int, json.Number becomes int or float64
//   - floats with no fractional part become int, others float64
//   - time.Time becomes its RFC 3339 string
//
// Maps and slices are always rebuilt, so the result never shares storage
// with v. Other values are returned unchanged.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return NormalizeMap(val)
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = Normalize(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = Normalize(item)
		}
		return s
	case []map[string]any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = NormalizeMap(item)
		}
		return s
	case json.Number:
		if i, err := val.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return val.String()
	case int8:
		return int(val)
	case int16:
		return int(val)
	case int32:
		return int(val)
	case int64:
		return int(val)
	case uint8:
		return int(val)
	case uint16:
		return int(val)
	case uint32:
		return int(val)
	case uint64:
		if val <= math.MaxInt {
			return int(val)
		}
		return float64(val)
	case uint:
		if val <= math.MaxInt {
			return int(val)
		}
		return float64(val)
	case float32:
		return normalizeFloat(float64(val))
	case float64:
		return normalizeFloat(val)
	case []byte:
		return append([]byte(nil), val...)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case nil, bool, int, string:
		return v
	}
	return normalizeReflect(v)
}

// normalizeFloat returns f as an int when it is integral and fits.
// Encoders write such values without a fraction, so this keeps a decoded
// document equal to the one that was encoded.
func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= float64(math.MinInt) && f < -float64(math.MinInt) {
		return int(f)
	}
	return f
}

// normalizeReflect handles typed maps and slices such as map[string]string
// or []string.
func normalizeReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return map[string]any(nil)
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return m
	case reflect.Slice:
		if rv.IsNil() {
			return []any(nil)
		}
		fallthrough
	case reflect.Array:
		s := make([]any, rv.Len())
		for i := range s {
			s[i] = Normalize(rv.Index(i).Interface())
		}
		return s
	default:
		return v
	}
}

// NormalizeMap normalizes every value of m into a new map.
// A nil map yields nil.
func NormalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Normalize(v)
	}
	return out
}
