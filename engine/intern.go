package engine

import (
	"fmt"

	"github.com/neutronhq/clips-runtime/data"
)

// InternSymbol returns the instance's unique atom for text. The pointer
// stays valid for the instance's lifetime, and pointer identity is the
// equality the engine's own comparisons use.
func (l *Local) InternSymbol(text string) *data.Symbol {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.internSymbol(text)
}

// InternInteger returns the instance's unique atom for n.
func (l *Local) InternInteger(n int64) *data.Integer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.integers[n]; ok {
		return a
	}
	a := data.NewInteger(n)
	l.integers[n] = a
	return a
}

// InternFloat returns the instance's unique atom for x.
func (l *Local) InternFloat(x float64) *data.Float {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.floats[x]; ok {
		return a
	}
	a := data.NewFloat(x)
	l.floats[x] = a
	return a
}

// TrueSymbol returns the canonical TRUE atom.
func (l *Local) TrueSymbol() *data.Symbol { return l.truthy }

// FalseSymbol returns the canonical FALSE atom. Boolean conversion
// compares against it by pointer.
func (l *Local) FalseSymbol() *data.Symbol { return l.falsy }

// Gensym interns a fresh symbol of the form genN. The counter restarts on
// Reset, matching how a reset engine numbers generated symbols from one
// again.
func (l *Local) Gensym() *data.Symbol {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gensym++
	return l.internSymbol(fmt.Sprintf("gen%d", l.gensym))
}

// internSymbol is the lock-held intern path shared by the constructor.
func (l *Local) internSymbol(text string) *data.Symbol {
	if s, ok := l.symbols[text]; ok {
		return s
	}
	s := data.NewSymbol(text)
	l.symbols[text] = s
	return s
}
