package runtime

import "github.com/neutronhq/clips-runtime/data"

// MultifieldBuilder assembles a multifield value element by element.
// Append accepts the same Go values as CallBuilder.Append, including the
// flattening rules, so a slice appends its elements rather than nesting.
// The first conversion failure sticks: later appends are skipped and
// Build reports it.
type MultifieldBuilder struct {
	env  *Environment
	vals []data.Value
	err  error
}

// NewMultifield starts an empty builder against env's instance.
func NewMultifield(env *Environment) *MultifieldBuilder {
	return &MultifieldBuilder{env: env}
}

// Append converts and adds values in order. It returns the builder for
// chaining; a conversion failure is held until Build.
func (mb *MultifieldBuilder) Append(vs ...any) *MultifieldBuilder {
	if mb.err != nil {
		return mb
	}
	for _, v := range vs {
		var err error
		mb.vals, err = mb.env.encode(mb.vals, v)
		if err != nil {
			mb.err = err
			return mb
		}
	}
	return mb
}

// Len reports how many fields Build would produce so far.
func (mb *MultifieldBuilder) Len() int { return len(mb.vals) }

// Build allocates the engine store, fills it, and returns it as a
// multifield value covering the whole range.
func (mb *MultifieldBuilder) Build() (data.Value, error) {
	if mb.err != nil {
		return data.VoidValue(), mb.err
	}
	m := mb.env.eng.NewMultifield(len(mb.vals))
	for i, v := range mb.vals {
		m.SetElementAt(i+1, v)
	}
	return data.MultifieldValue(m), nil
}

// BuildMultifield assembles a multifield value from vs in one shot. Each
// element of vs becomes one field, with slices flattening per the usual
// conversion rules.
func (env *Environment) BuildMultifield(vs ...any) (data.Value, error) {
	return NewMultifield(env).Append(vs...).Build()
}
