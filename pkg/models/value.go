package models

import (
	"fmt"
	"strconv"
)

// ValueToString renders a cell value for output. Missing values render as
// the empty string.
func ValueToString(value interface{}) string {
	if value == nil {
		return ""
	}

	// Fast path for common types - avoid fmt overhead
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// ToFloat coerces a cell value to float64. It reports false for missing
// values and for strings that do not parse as numbers. Document-store
// drivers hand back int32/int64 for integral fields, so those are
// widened here.
func ToFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case nil:
		return 0, false
	default:
		return 0, false
	}
}
