package schema

import (
	"strconv"
	"strings"
)

// CheckboxOn is the raw value of a ticked checkbox on the report form
const CheckboxOn = "/1"

// ValueKind tags which member of the Value union is populated
type ValueKind int

const (
	ValueAbsent ValueKind = iota
	ValueBoolean
	ValueInteger
	ValueText
)

// String returns a string representation of the ValueKind
func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueBoolean:
		return "boolean"
	case ValueInteger:
		return "integer"
	case ValueText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a typed form value. The zero Value is absent: false, 0 and "".
type Value struct {
	kind    ValueKind
	raw     string
	boolean bool
	integer int
	text    string
}

// Absent returns a Value for a field that carries nothing
func Absent() Value {
	return Value{}
}

// Kind reports which member is populated
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the form carried no value
func (v Value) IsAbsent() bool { return v.kind == ValueAbsent }

// Raw returns the undecoded value, "" when absent
func (v Value) Raw() string { return v.raw }

// Bool returns the boolean member; false unless the value is a boolean
func (v Value) Bool() bool { return v.boolean }

// Int returns the integer member; 0 unless the value is an integer
func (v Value) Int() int { return v.integer }

// Text returns the raw value trimmed of surrounding whitespace. Every kind
// has a text representation; absent values give "".
func (v Value) Text() string { return v.text }

// NewBoolean converts a raw checkbox value: true iff it is the on sentinel
func NewBoolean(raw string) Value {
	return Value{
		kind:    ValueBoolean,
		raw:     raw,
		boolean: raw == CheckboxOn,
		text:    strings.TrimSpace(raw),
	}
}

// NewText converts a raw value to trimmed text
func NewText(raw string) Value {
	return Value{
		kind: ValueText,
		raw:  raw,
		text: strings.TrimSpace(raw),
	}
}

// NewInteger parses a raw value as a base-10 integer. Blank input yields
// an absent value; anything else that is not a number is an error.
func NewInteger(raw string) (Value, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Value{raw: raw}, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return Value{}, err
	}
	return Value{
		kind:    ValueInteger,
		raw:     raw,
		integer: n,
		text:    text,
	}, nil
}

// convert applies the conversion rule for kind to a present raw value
func convert(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindBoolean:
		return NewBoolean(raw), nil
	case KindInteger:
		return NewInteger(raw)
	default:
		return NewText(raw), nil
	}
}
