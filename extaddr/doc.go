// Package extaddr tracks the type ids engine instances issue for
// external-address payloads.
//
// An engine hands back an arbitrary integer when a type descriptor is
// installed, different per instance and per process run. Safe down-casting
// of an opaque address therefore needs a registry keyed by instance
// identity and payload type, consulted freshly before every use:
//
//	reg := extaddr.NewRegistry()
//
//	// once per instance
//	id, err := extaddr.RegisterType[*Sensor](reg, eng, "sensor")
//
//	// per use
//	if extaddr.IsType[*Sensor](reg, eng, value) { ... }
//	sensor, err := extaddr.CastTo[*Sensor](reg, eng, value)
//
// Registering the same (instance, type) pair twice fails with
// AlreadyRegistered rather than silently overwriting; a cast attempted
// under the wrong type fails naming the requested type.
//
// The registry is process-shared state and guards itself with a lock, so
// registrations and lookups may come from any goroutine even while each
// engine instance itself stays single-threaded. Payload types key the maps
// as reflect.Type values purely for identity; no reflective dispatch
// happens on any path.
package extaddr
