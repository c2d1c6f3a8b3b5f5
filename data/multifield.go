package data

import "strings"

// Multifield is the engine's ordered-sequence store. Fields are addressed
// 1-based; a walk over a multifield value covers its closed [begin, end]
// range in ascending order.
type Multifield struct {
	fields []Value
	handle uint64
}

// NewMultifield allocates a store of length fields, all Void, carrying the
// stable handle the engine assigned.
func NewMultifield(length int, handle uint64) *Multifield {
	return &Multifield{fields: make([]Value, length), handle: handle}
}

// Length returns the number of fields.
func (m *Multifield) Length() int { return len(m.fields) }

// ElementAt returns the field at 1-based index i.
func (m *Multifield) ElementAt(i int) Value {
	return m.fields[i-1]
}

// SetElementAt stores v at 1-based index i.
func (m *Multifield) SetElementAt(i int, v Value) {
	m.fields[i-1] = v
}

// Handle returns the stable identity the engine assigned at creation.
func (m *Multifield) Handle() uint64 { return m.handle }

// String renders the contents in call syntax, space-joined inside one
// parenthesis pair. Argument diagnostics use the address form instead; see
// Value.String.
func (m *Multifield) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, f := range m.fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.String())
	}
	b.WriteByte(')')
	return b.String()
}
