package resource

// Handle is the stable identity an engine instance assigns to one tracked
// entity. Handles are issued sequentially and never reused; 0 is reserved
// and always invalid.
type Handle uint64

// Discarder is optionally implemented by tracked values that need cleanup
// when they leave the table. The hook runs exactly once, after the entry
// has been unlinked, whether the entity left via Remove, Drain, or Close.
type Discarder interface {
	Discard()
}
