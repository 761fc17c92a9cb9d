package state

// Frame is one logical screen on the host navigation stack. Selections are
// keyed by collection id so several collections can share a screen.
type Frame struct {
	ID         string
	Selections map[string]int
}

// FramePatch replaces the remembered selection of one collection.
type FramePatch struct {
	Collection string
	Selected   int
}

// FrameStore is the host navigation stack as seen by a collection. GetFrame
// returns the current top frame.
type FrameStore interface {
	GetFrame() (Frame, bool)
	SetFrame(FramePatch)
}

// Memory reads and writes one collection's slot in the current frame.
type Memory struct {
	store      FrameStore
	collection string
}

// NewMemory binds a collection id to a frame store. A nil store yields a
// memory that never remembers anything.
func NewMemory(store FrameStore, collection string) *Memory {
	return &Memory{store: store, collection: collection}
}

// Load returns the remembered selection for the current frame.
func (m *Memory) Load() (int, bool) {
	if m == nil || m.store == nil {
		return NoSelection, false
	}
	frame, ok := m.store.GetFrame()
	if !ok || frame.Selections == nil {
		return NoSelection, false
	}
	idx, ok := frame.Selections[m.collection]
	if !ok || idx < 0 {
		return NoSelection, false
	}
	return idx, true
}

// Store writes index into the current frame when it differs from the
// remembered value. It reports whether a write happened.
func (m *Memory) Store(index int) bool {
	if m == nil || m.store == nil || index < 0 {
		return false
	}
	if prev, ok := m.Load(); ok && prev == index {
		return false
	}
	if _, ok := m.store.GetFrame(); !ok {
		return false
	}
	m.store.SetFrame(FramePatch{Collection: m.collection, Selected: index})
	return true
}
