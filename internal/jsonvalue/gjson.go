package jsonvalue

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by ParseJSON for malformed input.
var ErrInvalidJSON = errors.New("invalid JSON document")

// ParseJSON validates data and returns it as a Value backed by gjson.
func ParseJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return FromGJSON(gjson.ParseBytes(data)), nil
}

// FromGJSON wraps an already parsed gjson result.
func FromGJSON(r gjson.Result) Value {
	return wrapGJSON(r)
}

type gjsonValue struct {
	r     gjson.Result
	elems []gjson.Result
}

// wrapGJSON materializes array elements once so indexed access stays O(1).
func wrapGJSON(r gjson.Result) gjsonValue {
	g := gjsonValue{r: r}
	if r.IsArray() {
		g.elems = r.Array()
	}
	return g
}

func (g gjsonValue) Kind() Kind {
	switch g.r.Type {
	case gjson.Null:
		if !g.r.Exists() {
			return Invalid
		}
		return Null
	case gjson.False, gjson.True:
		return Bool
	case gjson.Number:
		return Number
	case gjson.String:
		return String
	case gjson.JSON:
		switch {
		case g.r.IsObject():
			return Object
		case g.r.IsArray():
			return Array
		}
	}
	return Invalid
}

// lookup walks object members directly instead of using gjson paths, so keys
// containing path syntax ('.', '*', '?') are matched literally.
func (g gjsonValue) lookup(key string) (gjson.Result, bool) {
	if !g.r.IsObject() {
		return gjson.Result{}, false
	}

	var (
		found gjson.Result
		ok    bool
	)
	g.r.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
			return false
		}
		return true
	})

	return found, ok
}

func (g gjsonValue) Has(key string) bool {
	_, ok := g.lookup(key)
	return ok
}

func (g gjsonValue) Member(key string) Value {
	v, ok := g.lookup(key)
	if !ok {
		return invalid{}
	}
	return wrapGJSON(v)
}

func (g gjsonValue) Len() int {
	if g.r.IsArray() {
		return len(g.elems)
	}
	if !g.r.IsObject() {
		return 0
	}

	n := 0
	g.r.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

func (g gjsonValue) Index(i int) Value {
	if i < 0 || i >= len(g.elems) {
		return invalid{}
	}
	return wrapGJSON(g.elems[i])
}

func (g gjsonValue) Float() float64 {
	if g.r.Type != gjson.Number {
		return 0
	}
	return g.r.Num
}

func (g gjsonValue) Str() string {
	if g.r.Type != gjson.String {
		return ""
	}
	return g.r.Str
}
