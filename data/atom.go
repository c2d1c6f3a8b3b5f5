package data

// Atoms are interned per engine instance: interning the same text or number
// twice on one instance returns the same pointer, and pointer identity is
// the equality the engine's own comparisons use. Reference counts track how
// many installed expressions hold the atom; callers mutate them under the
// owning instance's lock.

// Symbol is an interned lexeme. Symbol, string and instance-name values
// share the store; only the value's kind tag differs.
type Symbol struct {
	text string
	refs int
}

// NewSymbol allocates an unattached symbol atom. Engine instances intern
// through their own tables; this is the raw constructor they build on.
func NewSymbol(text string) *Symbol {
	return &Symbol{text: text}
}

// Text returns the lexeme.
func (s *Symbol) Text() string { return s.text }

// Retain increments the reference count.
func (s *Symbol) Retain() { s.refs++ }

// Release decrements the reference count and returns the remaining count.
func (s *Symbol) Release() int {
	if s.refs > 0 {
		s.refs--
	}
	return s.refs
}

// Refs returns the current reference count.
func (s *Symbol) Refs() int { return s.refs }

// Integer is an interned whole number.
type Integer struct {
	value int64
	refs  int
}

// NewInteger allocates an unattached integer atom.
func NewInteger(value int64) *Integer {
	return &Integer{value: value}
}

// Value returns the number.
func (n *Integer) Value() int64 { return n.value }

// Retain increments the reference count.
func (n *Integer) Retain() { n.refs++ }

// Release decrements the reference count and returns the remaining count.
func (n *Integer) Release() int {
	if n.refs > 0 {
		n.refs--
	}
	return n.refs
}

// Refs returns the current reference count.
func (n *Integer) Refs() int { return n.refs }

// Float is an interned floating-point number.
type Float struct {
	value float64
	refs  int
}

// NewFloat allocates an unattached float atom.
func NewFloat(value float64) *Float {
	return &Float{value: value}
}

// Value returns the number.
func (f *Float) Value() float64 { return f.value }

// Retain increments the reference count.
func (f *Float) Retain() { f.refs++ }

// Release decrements the reference count and returns the remaining count.
func (f *Float) Release() int {
	if f.refs > 0 {
		f.refs--
	}
	return f.refs
}

// Refs returns the current reference count.
func (f *Float) Refs() int { return f.refs }
