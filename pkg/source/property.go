package source

import (
	"encoding/json"
	"slices"
)

// Number converts a numeric property value to float64.
// It reports false for nil, strings, booleans and other non-numeric values.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Property resolves key on props as a number, falling back to def when key
// is empty, missing or not numeric.
func Property(props map[string]any, key string, def float64) float64 {
	if key == "" {
		return def
	}
	if f, ok := Number(props[key]); ok {
		return f
	}
	return def
}

// HasLabel reports whether labels contains label. An empty label matches all.
func HasLabel(labels []string, label string) bool {
	return label == "" || slices.Contains(labels, label)
}
