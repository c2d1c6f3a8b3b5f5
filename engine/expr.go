package engine

import (
	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
)

// NewConstantExpression allocates one argument node holding v. The node
// is not yet installed; install and deinstall bracket the engine's
// ownership of it.
func (l *Local) NewConstantExpression(v data.Value) *clipsruntime.Expr {
	return &clipsruntime.Expr{Val: v}
}

// InstallExpression retains every atom the chain starting at e references
// and counts its nodes in the installed-expression table.
func (l *Local) InstallExpression(e *clipsruntime.Expr) {
	if e == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for n := e; n != nil; n = n.Next {
		retainValue(n.Val)
		l.installed++
	}
}

// DeinstallExpression releases the chain's claim on its atoms and removes
// its nodes from the installed-expression count.
func (l *Local) DeinstallExpression(e *clipsruntime.Expr) {
	if e == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for n := e; n != nil; n = n.Next {
		releaseValue(n.Val)
		if l.installed > 0 {
			l.installed--
		}
	}
}

// ReclaimExpressionList returns a deinstalled chain's nodes to the
// allocator. Links are severed and values cleared so a stale cursor fails
// fast instead of walking reclaimed nodes.
func (l *Local) ReclaimExpressionList(e *clipsruntime.Expr) {
	for n := e; n != nil; {
		next := n.Next
		n.Next = nil
		n.Val = data.VoidValue()
		n = next
	}
}

func retainValue(v data.Value) {
	switch v.Kind() {
	case data.KindSymbol, data.KindString, data.KindInstanceName:
		if s, ok := v.Symbol(); ok {
			s.Retain()
		}
	case data.KindInteger:
		if n, ok := v.Integer(); ok {
			n.Retain()
		}
	case data.KindFloat:
		if f, ok := v.Float(); ok {
			f.Retain()
		}
	}
}

func releaseValue(v data.Value) {
	switch v.Kind() {
	case data.KindSymbol, data.KindString, data.KindInstanceName:
		if s, ok := v.Symbol(); ok {
			s.Release()
		}
	case data.KindInteger:
		if n, ok := v.Integer(); ok {
			n.Release()
		}
	case data.KindFloat:
		if f, ok := v.Float(); ok {
			f.Release()
		}
	}
}
