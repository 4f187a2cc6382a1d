package jsonvalue

import (
	"encoding/json"
)

// FromAny wraps a tree of plain Go values, as produced by encoding/json
// decoding into an any: map[string]any, []any, float64, json.Number,
// string, bool and nil. Integer types are accepted as numbers too.
// Anything else is reported as Invalid.
func FromAny(v any) Value {
	return native{v: v}
}

type native struct {
	v any
}

func (n native) Kind() Kind {
	switch v := n.v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return Number
	case json.Number:
		if _, err := v.Float64(); err != nil {
			return Invalid
		}
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Invalid
	}
}

func (n native) Has(key string) bool {
	m, ok := n.v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

func (n native) Member(key string) Value {
	m, ok := n.v.(map[string]any)
	if !ok {
		return invalid{}
	}
	v, ok := m[key]
	if !ok {
		return invalid{}
	}
	return native{v: v}
}

func (n native) Len() int {
	switch v := n.v.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	}
	return 0
}

func (n native) Index(i int) Value {
	a, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(a) {
		return invalid{}
	}
	return native{v: a[i]}
}

func (n native) Float() float64 {
	switch v := n.v.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return 0
}

func (n native) Str() string {
	s, _ := n.v.(string)
	return s
}
