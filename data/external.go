package data

// Entity is implemented by address payloads that carry a stable engine
// handle. Diagnostics render the handle in place of a raw address, which
// could be reused after release.
type Entity interface {
	Handle() uint64
}

// External is an engine-tracked opaque payload tagged with the type id the
// engine issued when its type was registered. The id is scoped to the
// issuing instance and means nothing to any other.
type External struct {
	payload any
	typeID  int
	handle  uint64
}

// NewExternal wraps a payload with its issued type id and engine handle.
func NewExternal(payload any, typeID int, handle uint64) *External {
	return &External{payload: payload, typeID: typeID, handle: handle}
}

// Payload returns the opaque native value.
func (x *External) Payload() any { return x.payload }

// TypeID returns the instance-scoped type id.
func (x *External) TypeID() int { return x.typeID }

// Handle returns the stable identity the engine assigned at creation.
func (x *External) Handle() uint64 { return x.handle }
