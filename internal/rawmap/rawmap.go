// Package rawmap provides tolerant accessors over decoded JSON objects.
// Stored records were written under several schema revisions, so every read
// tolerates absent, null, or wrongly-typed values and falls back to a zero
// value instead of failing.
package rawmap

import (
	"encoding/json"
	"strconv"
)

// String coerces v into a string. Numeric values are formatted (legacy
// records stored numeric ids); anything else yields "".
func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	}
	return ""
}

// StringSlice extracts the string elements of v. Non-sequence input or
// non-string elements are dropped.
func StringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Map returns v as an object, or an empty one.
func Map(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Slice returns v as a sequence, or nil when it is not one.
func Slice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

// Int coerces v into an int and reports whether it was an integral number.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

// IsSlice reports whether v is a JSON sequence.
func IsSlice(v any) bool {
	_, ok := v.([]any)
	return ok
}

// IsMap reports whether v is a JSON object.
func IsMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}
