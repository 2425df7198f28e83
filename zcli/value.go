package zcli

import (
	"slices"
	"strconv"
	"strings"
)

// ValueKind tags the payload held by an ArgValue.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueBool:
		return "bool"
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueList:
		return "list"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ArgValue is the bound value of one argument. Only the field matching kind
// is ever populated; the zero value is none.
type ArgValue struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	list []string

	// lit is the command-line spelling of a numeric value, if parsed from one.
	lit string
}

// NoValue returns the empty value.
func NoValue() ArgValue { return ArgValue{} }

// BoolValue wraps a bool.
func BoolValue(v bool) ArgValue { return ArgValue{kind: ValueBool, b: v} }

// IntValue wraps an int64.
func IntValue(v int64) ArgValue { return ArgValue{kind: ValueInt, i: v} }

// FloatValue wraps a float64.
func FloatValue(v float64) ArgValue { return ArgValue{kind: ValueFloat, f: v} }

// StringValue wraps a string.
func StringValue(v string) ArgValue { return ArgValue{kind: ValueString, s: v} }

// ListValue wraps a copy of items. A nil input still yields a list value.
func ListValue(items ...string) ArgValue {
	return ArgValue{kind: ValueList, list: append(make([]string, 0, len(items)), items...)}
}

// Kind reports which payload v carries.
func (v ArgValue) Kind() ValueKind { return v.kind }

func (v ArgValue) IsNone() bool   { return v.kind == ValueNone }
func (v ArgValue) IsBool() bool   { return v.kind == ValueBool }
func (v ArgValue) IsInt() bool    { return v.kind == ValueInt }
func (v ArgValue) IsFloat() bool  { return v.kind == ValueFloat }
func (v ArgValue) IsString() bool { return v.kind == ValueString }
func (v ArgValue) IsList() bool   { return v.kind == ValueList }

// AsBool returns the bool payload; ok is false on kind mismatch.
func (v ArgValue) AsBool() (val, ok bool) { return v.b, v.kind == ValueBool }

// AsInt returns the int64 payload; ok is false on kind mismatch.
func (v ArgValue) AsInt() (int64, bool) { return v.i, v.kind == ValueInt }

// AsFloat returns the float64 payload; ok is false on kind mismatch.
func (v ArgValue) AsFloat() (float64, bool) { return v.f, v.kind == ValueFloat }

// AsString returns the string payload; ok is false on kind mismatch.
func (v ArgValue) AsString() (string, bool) { return v.s, v.kind == ValueString }

// AsList returns a copy of the list payload; ok is false on kind mismatch.
func (v ArgValue) AsList() ([]string, bool) {
	if v.kind != ValueList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Len is the number of list items, 0 for any other kind.
func (v ArgValue) Len() int { return len(v.list) }

// Clone returns a deep copy.
func (v ArgValue) Clone() ArgValue {
	if v.kind == ValueList {
		v.list = append(make([]string, 0, len(v.list)), v.list...)
	}
	return v
}

// Append returns a list value holding v's items followed by items. v must be
// a list or none.
func (v ArgValue) Append(items ...string) ArgValue {
	out := make([]string, 0, len(v.list)+len(items))
	out = append(out, v.list...)
	out = append(out, items...)
	return ArgValue{kind: ValueList, list: out}
}

// Equal compares kind and payload. The original spelling of a number is
// ignored, so 0x1F equals 31.
func (v ArgValue) Equal(o ArgValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueBool:
		return v.b == o.b
	case ValueInt:
		return v.i == o.i
	case ValueFloat:
		return v.f == o.f
	case ValueString:
		return v.s == o.s
	case ValueList:
		return slices.Equal(v.list, o.list)
	default:
		return true
	}
}

// String renders v for help text and diagnostics: lists as "[a, b]" and the
// empty value as "<none>". Numbers parsed from the command line keep the
// spelling they were typed with.
func (v ArgValue) String() string {
	if v.lit != "" && (v.kind == ValueInt || v.kind == ValueFloat) {
		return v.lit
	}
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case ValueString:
		return v.s
	case ValueList:
		return "[" + strings.Join(v.list, ", ") + "]"
	default:
		return "<none>"
	}
}
