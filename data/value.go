package data

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is one engine-native datum: a kind tag and the payload that tag
// interprets. The two are set together at construction and cannot be
// retagged afterwards; interpreting a payload under the wrong tag is
// undefined behavior in the engine, so the type system forbids producing
// one. The zero Value is Void.
type Value struct {
	payload any
	kind    Kind
	begin   int
	end     int
}

// VoidValue returns the absent result.
func VoidValue() Value {
	return Value{}
}

// FloatValue tags an interned float atom.
func FloatValue(f *Float) Value {
	return Value{kind: KindFloat, payload: f}
}

// IntegerValue tags an interned integer atom.
func IntegerValue(n *Integer) Value {
	return Value{kind: KindInteger, payload: n}
}

// SymbolValue tags an interned lexeme as a symbol.
func SymbolValue(s *Symbol) Value {
	return Value{kind: KindSymbol, payload: s}
}

// StringValue tags an interned lexeme as a string.
func StringValue(s *Symbol) Value {
	return Value{kind: KindString, payload: s}
}

// InstanceNameValue tags an interned lexeme as an instance name.
func InstanceNameValue(s *Symbol) Value {
	return Value{kind: KindInstanceName, payload: s}
}

// MultifieldValue covers the whole store: range [1, Length].
func MultifieldValue(m *Multifield) Value {
	return Value{kind: KindMultifield, payload: m, begin: 1, end: m.Length()}
}

// MultifieldRange covers the closed 1-based [begin, end] slice of the store.
func MultifieldRange(m *Multifield, begin, end int) Value {
	return Value{kind: KindMultifield, payload: m, begin: begin, end: end}
}

// ExternalValue tags an engine-tracked external payload.
func ExternalValue(x *External) Value {
	return Value{kind: KindExternalAddress, payload: x}
}

// AddressValue tags a fact- or instance-address entity.
func AddressValue(kind Kind, e Entity) Value {
	if kind != KindFactAddress && kind != KindInstanceAddress {
		panic("data: AddressValue requires KindFactAddress or KindInstanceAddress")
	}
	return Value{kind: kind, payload: e}
}

// Kind returns the tag.
func (v Value) Kind() Kind { return v.kind }

// IsVoid reports whether v carries no result.
func (v Value) IsVoid() bool { return v.kind == KindVoid }

// Symbol returns the lexeme atom for Symbol, String and InstanceName values.
func (v Value) Symbol() (*Symbol, bool) {
	if v.kind != KindSymbol && v.kind != KindString && v.kind != KindInstanceName {
		return nil, false
	}
	s, ok := v.payload.(*Symbol)
	return s, ok
}

// Integer returns the integer atom for Integer values.
func (v Value) Integer() (*Integer, bool) {
	if v.kind != KindInteger {
		return nil, false
	}
	n, ok := v.payload.(*Integer)
	return n, ok
}

// Float returns the float atom for Float values.
func (v Value) Float() (*Float, bool) {
	if v.kind != KindFloat {
		return nil, false
	}
	f, ok := v.payload.(*Float)
	return f, ok
}

// Multifield returns the store for Multifield values.
func (v Value) Multifield() (*Multifield, bool) {
	if v.kind != KindMultifield {
		return nil, false
	}
	m, ok := v.payload.(*Multifield)
	return m, ok
}

// External returns the payload wrapper for ExternalAddress values.
func (v Value) External() (*External, bool) {
	if v.kind != KindExternalAddress {
		return nil, false
	}
	x, ok := v.payload.(*External)
	return x, ok
}

// Entity returns the handle-bearing payload of any address or multifield
// value.
func (v Value) Entity() (Entity, bool) {
	switch v.kind {
	case KindExternalAddress, KindFactAddress, KindInstanceAddress, KindMultifield:
		e, ok := v.payload.(Entity)
		return e, ok
	}
	return nil, false
}

// Range returns the closed 1-based [begin, end] walk bounds. Meaningful for
// Multifield values only; end < begin denotes an empty range.
func (v Value) Range() (begin, end int) {
	return v.begin, v.end
}

// String renders the value in the engine's call syntax: strings
// double-quoted, symbols bare, instance names bracketed, integers and
// floats decimal, addresses and multifields as <Kind>0x<handle>. This is
// the grammar invocation diagnostics reconstruct calls with.
func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return ""
	case KindFloat:
		if f, ok := v.payload.(*Float); ok {
			return FormatFloat(f.Value())
		}
	case KindInteger:
		if n, ok := v.payload.(*Integer); ok {
			return strconv.FormatInt(n.Value(), 10)
		}
	case KindSymbol:
		if s, ok := v.payload.(*Symbol); ok {
			return s.Text()
		}
	case KindString:
		if s, ok := v.payload.(*Symbol); ok {
			return `"` + s.Text() + `"`
		}
	case KindInstanceName:
		if s, ok := v.payload.(*Symbol); ok {
			return "[" + s.Text() + "]"
		}
	case KindExternalAddress, KindFactAddress, KindInstanceAddress, KindMultifield:
		var h uint64
		if e, ok := v.payload.(Entity); ok {
			h = e.Handle()
		}
		return fmt.Sprintf("<%s>0x%x", pointerLabel(v.kind), h)
	}
	return fmt.Sprintf("<%s>0x0", pointerLabel(v.kind))
}

// FormatFloat renders a float the way the engine prints one: shortest
// decimal form, with a decimal point forced when neither a point nor an
// exponent appears (3.0 rather than 3).
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") || strings.Contains(s, "Inf") || s == "NaN" {
		return s
	}
	return s + ".0"
}
