package configtree

import (
	"strconv"
	"strings"
)

// Kind identifies which shape a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindMapping
	KindSequence
	KindScalar
)

// String returns the shape name used in mismatch messages.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "invalid"
	}
}

// ScalarKind identifies the payload type of a scalar Value.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarString
	ScalarNumber
	ScalarBool
)

// Scalar is the payload of a scalar Value. Integers and floats share the
// numeric kind, so 1 and 1.0 compare equal.
type Scalar struct {
	Kind ScalarKind
	Str  string
	Num  float64
	Bool bool
}

// Entry is one key/value pair of a mapping Value.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a single node of a configuration tree: a mapping, a sequence, or
// a scalar. Mapping entries keep the order they appeared in the source
// document, which is what drives the ordering of comparison reports.
type Value struct {
	Kind    Kind
	Entries []Entry
	Items   []*Value
	Scalar  Scalar
}

// Map builds a mapping Value from entries, preserving their order.
func Map(entries ...Entry) *Value {
	return &Value{Kind: KindMapping, Entries: entries}
}

// E builds a mapping entry.
func E(key string, value *Value) Entry {
	return Entry{Key: key, Value: value}
}

// Seq builds a sequence Value.
func Seq(items ...*Value) *Value {
	return &Value{Kind: KindSequence, Items: items}
}

// Str builds a string scalar.
func Str(s string) *Value {
	return &Value{Kind: KindScalar, Scalar: Scalar{Kind: ScalarString, Str: s}}
}

// Num builds a numeric scalar.
func Num(n float64) *Value {
	return &Value{Kind: KindScalar, Scalar: Scalar{Kind: ScalarNumber, Num: n}}
}

// Bool builds a boolean scalar.
func Bool(b bool) *Value {
	return &Value{Kind: KindScalar, Scalar: Scalar{Kind: ScalarBool, Bool: b}}
}

// Null builds a null scalar.
func Null() *Value {
	return &Value{Kind: KindScalar, Scalar: Scalar{Kind: ScalarNull}}
}

// Get looks up a mapping entry by key. It returns false when v is not a
// mapping or the key is absent.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindMapping {
		return nil, false
	}
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Equal reports deep equality. Mappings compare by key set regardless of
// entry order; sequences compare element-wise in order; numbers compare
// numerically. No string/boolean coercion happens here.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindMapping:
		if len(v.Entries) != len(o.Entries) {
			return false
		}
		for _, e := range v.Entries {
			ov, ok := o.Get(e.Key)
			if !ok || !e.Value.Equal(ov) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i, item := range v.Items {
			if !item.Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case KindScalar:
		if v.Scalar.Kind != o.Scalar.Kind {
			return false
		}
		switch v.Scalar.Kind {
		case ScalarString:
			return v.Scalar.Str == o.Scalar.Str
		case ScalarNumber:
			return v.Scalar.Num == o.Scalar.Num
		case ScalarBool:
			return v.Scalar.Bool == o.Scalar.Bool
		default:
			return true
		}
	default:
		return true
	}
}

// String renders the value in compact flow style for report messages:
// scalars as bare literals, mappings as {k: v, ...} in entry order,
// sequences as [a, b].
func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case KindMapping:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range v.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key)
			b.WriteString(": ")
			b.WriteString(e.Value.String())
		}
		b.WriteByte('}')
		return b.String()
	case KindSequence:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(item.String())
		}
		b.WriteByte(']')
		return b.String()
	case KindScalar:
		switch v.Scalar.Kind {
		case ScalarString:
			return v.Scalar.Str
		case ScalarNumber:
			return strconv.FormatFloat(v.Scalar.Num, 'g', -1, 64)
		case ScalarBool:
			return strconv.FormatBool(v.Scalar.Bool)
		default:
			return "null"
		}
	default:
		return ""
	}
}
