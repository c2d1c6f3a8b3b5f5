// Package engine provides the in-process inference engine an instance of
// the runtime drives.
//
// A Local is one isolated engine instance: it owns the interned atom
// tables, the installed-expression accounting, the function tables and
// the entity table for everything it allocates. Instances share nothing;
// atoms and type ids from one instance are meaningless to another.
//
// # Instance Lifecycle
//
//  1. New() creates the instance, interns the boolean atoms and installs
//     the builtin function table.
//  2. Callers resolve functions, install argument expressions and
//     evaluate through the Engine interface.
//  3. Close() destroys the instance: entity discard hooks run and the
//     atom tables are dropped.
//
// Close fails while expression nodes are still installed, since a live
// argument list means some caller still holds engine-owned memory. That
// failure is deliberate and callers treat it as fatal.
//
// # Atoms and Expressions
//
// Symbols, integers and floats are interned per instance: interning the
// same text or number twice returns the same pointer, and the engine's
// own equality tests compare pointers. Installed expressions retain the
// atoms they reference; deinstalling releases them. The
// InstalledExpressions counter exposes the balance so callers can verify
// that every argument list they built was released.
//
// # Functions
//
// Every instance starts with the builtin table: arithmetic, lexeme
// manipulation, comparison, boolean connectives, type predicates,
// multifield operations and gensym. DefineFunction registers user
// functions alongside them; builtins cannot be redefined.
//
// # Threading
//
// An instance is driven by one logical thread at a time. The instance
// lock serializes entry; handlers run outside it so they can call back
// into the instance to intern results or allocate multifields.
//
// Most users should use the runtime package for a simpler API. This
// package is for advanced use cases requiring direct control.
package engine
