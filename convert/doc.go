// Package convert extracts Go values out of tagged engine values.
//
// The supported target set is closed and known at design time, so dispatch
// is a rule per target type rather than reflection: Codec carries one
// method per target, and the generic front door As selects through a static
// type switch.
//
//	Target      Accepted kinds
//	───────────────────────────────────────
//	bool        any (total; see truth rule)
//	int*        Integer (range-checked)
//	uint*       Integer (non-negative, range-checked)
//	float64     Float or Integer
//	float32     Float or Integer (range-checked)
//	string      Symbol, String, InstanceName
//	[]string    Multifield ([begin, end] walk)
//	data.Value  any (identity)
//
// Opaque external-address payloads are not decoded here; the extaddr
// registry owns that rule, since it needs the issuing instance's type ids.
//
// # Truth Rule
//
// A value is true iff it is a Symbol other than the engine's canonical
// FALSE atom. Arbitrary user symbols therefore convert to true, and
// anything that is not a Symbol converts to false. The looseness is the
// engine's own and is preserved rather than tightened.
package convert
