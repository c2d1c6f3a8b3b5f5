// Package resource provides the entity handle table an engine instance
// uses to track the values it allocates.
//
// Multifields and external-address payloads are engine-owned: the engine
// hands out stable uint64 handles for them, renders those handles in
// diagnostics, and releases the values when the instance resets or
// closes. The table is the single bookkeeping point for that lifecycle.
//
// # Handle Table
//
// The Table maps handles to Go values tagged with the type id they were
// created under:
//
//	table := resource.NewTable()
//	h := table.Insert(typeID, payload)
//	v, ok := table.GetTyped(h, typeID)
//	table.Remove(h) // runs the value's Discard hook, if any
//
// Handles are issued sequentially and never reused, so a released entity
// cannot be confused with a live one in diagnostics. Handle 0 is reserved
// and always invalid.
//
// # Type Safety
//
// Each external-address type registered on an instance gets a unique type
// id, and lookups can insist on it:
//
//	value, ok := table.GetTyped(h, sensorTypeID) // ok
//	value, ok := table.GetTyped(h, clockTypeID)  // !ok
//
// # Cleanup
//
// Values that implement Discarder are told exactly once when they leave
// the table, whether by Remove, Drain, or Close. Entities are not
// garbage collected while the instance lives; Drain backs the instance
// reset and Close backs teardown.
package resource
