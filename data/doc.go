// Package data defines the engine-native value model: tagged values,
// interned atoms and the multifield sequence store.
//
// # Tagged Values
//
// A Value is a discriminated union of one kind tag and one payload. The
// engine interprets the payload exclusively through the tag, so Values are
// built only through constructors that set both together:
//
//	v := data.IntegerValue(atom)   // KindInteger
//	v := data.StringValue(lexeme)  // KindString
//	v := data.SymbolValue(lexeme)  // KindSymbol, same store as String
//
// # Kinds
//
//	Kind                 Payload
//	─────────────────────────────────────
//	KindVoid             none (zero Value)
//	KindFloat            *Float
//	KindInteger          *Integer
//	KindSymbol           *Symbol
//	KindString           *Symbol
//	KindInstanceName     *Symbol
//	KindMultifield       *Multifield
//	KindExternalAddress  *External
//	KindFactAddress      Entity
//	KindInstanceAddress  Entity
//
// Union kinds (KindAnyNumber, KindAnyLexeme, KindAnyInstance,
// KindAnyAddress, KindAnyValue) exist for argument constraints only;
// Kind.Matches answers membership.
//
// # Interning
//
// Symbols and numbers are interned by the owning engine instance. Equal
// text or value interned twice on one instance yields the same atom
// pointer; the canonical TRUE and FALSE symbols are ordinary interned
// atoms, which is why boolean checks reduce to pointer comparison. Atoms
// carry the reference count the engine's expression table maintains.
//
// # Rendering
//
// Value.String renders in the engine's call syntax, the grammar invocation
// diagnostics are reconstructed with:
//
//	"foo"                     String
//	bar                       Symbol
//	[rex]                     InstanceName
//	23                        Integer
//	4.5                       Float
//	<ExternalAddress>0x2a     ExternalAddress
//
// Address renders carry the payload's stable engine handle rather than a
// raw pointer, so they stay meaningful after the payload is released and
// deterministic under test.
package data
