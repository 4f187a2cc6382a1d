// Package jsonvalue provides a read-only view over parsed JSON-like documents.
// The converter only talks to the Value interface, so any parser can feed it.
package jsonvalue

// Kind is the JSON type of a Value.
type Kind int

// Value kinds.
const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Invalid: "invalid",
	Null:    "null",
	Bool:    "boolean",
	Number:  "number",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is an immutable JSON value.
//
// Member and Index never panic: a missing member or an out of range index
// yields a Value of kind Invalid. Float and Str return zero values when
// the kind does not match.
type Value interface {
	Kind() Kind
	Has(key string) bool
	Member(key string) Value
	Len() int
	Index(i int) Value
	Float() float64
	Str() string
}

// IsObject reports whether v is a JSON object.
func IsObject(v Value) bool { return v != nil && v.Kind() == Object }

// IsArray reports whether v is a JSON array.
func IsArray(v Value) bool { return v != nil && v.Kind() == Array }

// IsString reports whether v is a JSON string.
func IsString(v Value) bool { return v != nil && v.Kind() == String }

// IsNumber reports whether v is a JSON number.
func IsNumber(v Value) bool { return v != nil && v.Kind() == Number }

// invalid is returned for missing members and elements.
type invalid struct{}

func (invalid) Kind() Kind { return Invalid }
func (invalid) Has(string) bool { return false }
func (invalid) Member(string) Value { return invalid{} }
func (invalid) Len() int { return 0 }
func (invalid) Index(int) Value { return invalid{} }
func (invalid) Float() float64 { return 0 }
func (invalid) Str() string { return "" }
