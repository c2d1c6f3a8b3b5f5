package engine

import (
	"go.uber.org/zap"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
)

// Entity table type id for multifield stores. External-address type ids
// start at 1, so 0 is free.
const multifieldEntity = 0

// trackedPayload ties an external payload to its type's discard hook so
// the entity table can run cleanup when the payload leaves the table.
type trackedPayload struct {
	payload   any
	onDiscard func(payload any)
}

func (p *trackedPayload) Discard() {
	if p.onDiscard != nil {
		p.onDiscard(p.payload)
	}
}

// multifieldEntry keeps an allocated store reachable from the entity
// table. The handle is issued before the store exists, so the entry is
// filled in after insertion.
type multifieldEntry struct {
	m *data.Multifield
}

// InstallExternalAddressType installs desc and issues the next
// instance-scoped type id. Ids are sequential from 1 and mean nothing to
// any other instance.
func (l *Local) InstallExternalAddressType(desc clipsruntime.ExternalType) int {
	l.mu.Lock()
	l.extTypes = append(l.extTypes, desc)
	id := len(l.extTypes)
	l.mu.Unlock()

	l.log.Debug("external-address type installed",
		zap.String("id", l.id),
		zap.String("type", desc.Name),
		zap.Int("type_id", id))
	return id
}

// NewExternal stores payload under typeID and returns the wrapper values
// are tagged with. The payload stays tracked until the instance resets or
// closes, at which point the type's discard hook runs exactly once.
func (l *Local) NewExternal(payload any, typeID int) *data.External {
	l.mu.Lock()
	var hook func(any)
	if typeID >= 1 && typeID <= len(l.extTypes) {
		hook = l.extTypes[typeID-1].OnDiscard
	}
	l.mu.Unlock()

	h := l.entities.Insert(typeID, &trackedPayload{payload: payload, onDiscard: hook})
	return data.NewExternal(payload, typeID, uint64(h))
}

// NewMultifield allocates a sequence store of length Void fields with a
// stable handle. The store stays tracked until the instance resets or
// closes.
func (l *Local) NewMultifield(length int) *data.Multifield {
	if length < 0 {
		length = 0
	}
	entry := &multifieldEntry{}
	h := l.entities.Insert(multifieldEntity, entry)
	entry.m = data.NewMultifield(length, uint64(h))
	return entry.m
}
