package normalize

import (
	"strconv"
	"strings"
)

// lookup fetches a value from a raw record. A key containing dots is
// resolved as a nested object path ("statistics.likeCount").
func lookup(item map[string]any, key string) (any, bool) {
	if item == nil {
		return nil, false
	}
	if !strings.Contains(key, ".") {
		v, ok := item[key]
		return v, ok
	}

	var current any = item
	for _, part := range strings.Split(key, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// pick returns the first present, non-nil value among the alias candidates.
// First match wins; values are never merged across candidates.
func pick(item map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := lookup(item, key); ok && v != nil {
			return v
		}
	}
	return nil
}

// str renders a raw value as a string. Numbers are formatted without an
// exponent so ids survive the JSON float round-trip.
func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// coerceInt normalizes the numeric-like values the remote service emits for
// engagement metrics. Native numbers pass through, numeric strings may carry
// thousands separators, float-like strings are truncated, and everything
// else (nil included) is 0. Metrics are never negative.
func coerceInt(v any) int64 {
	var n int64
	switch t := v.(type) {
	case float64:
		n = int64(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0
		}
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			n = parsed
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			n = int64(f)
		} else {
			return 0
		}
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
