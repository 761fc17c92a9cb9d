package state

import "sort"

// Listener is notified after a registry mutation or mutation batch.
type Listener func()

// Patch updates selected fields of a registered item. Nil fields are left
// untouched.
type Patch struct {
	Title         *string
	Subtitle      *string
	Keywords      *[]string
	SectionID     *string
	SectionTitle  *string
	Actions       *[]string
	Visible       *bool
	Geometry      *Geometry
	ClearGeometry bool
}

// VisiblePatch returns a patch that only sets visibility.
func VisiblePatch(visible bool) Patch {
	return Patch{Visible: &visible}
}

// GeometryPatch returns a patch that only sets geometry.
func GeometryPatch(offset, size int) Patch {
	return Patch{Geometry: &Geometry{Offset: offset, Size: size}}
}

type subscription struct {
	id int
	fn Listener
}

// Registry assigns stable, mount-ordered indices to items and notifies
// subscribers when the set changes. Indices are never renumbered or reused
// until Reset.
type Registry struct {
	items     map[int]Item
	keys      map[string]int
	nextIndex int

	listeners []subscription
	nextSub   int

	batchDepth int
	dirty      bool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[int]Item),
		keys:  make(map[string]int),
	}
}

// Register attaches an item at the next free index. Registering a key that is
// already attached updates that entry in place and keeps its index; identical
// content is a no-op.
func (r *Registry) Register(item Item) int {
	if idx, ok := r.reregister(item); ok {
		return idx
	}
	idx := r.nextIndex
	r.nextIndex++
	r.attach(idx, item)
	return idx
}

// RegisterAt attaches an item using an explicit order. The allocator advances
// past order but never moves backwards.
func (r *Registry) RegisterAt(order int, item Item) int {
	if order < 0 {
		return r.Register(item)
	}
	if idx, ok := r.reregister(item); ok {
		return idx
	}
	if existing, ok := r.items[order]; ok && existing.Key != "" {
		delete(r.keys, existing.Key)
	}
	if order >= r.nextIndex {
		r.nextIndex = order + 1
	}
	r.attach(order, item)
	return order
}

func (r *Registry) reregister(item Item) (int, bool) {
	if item.Key == "" {
		return 0, false
	}
	idx, ok := r.keys[item.Key]
	if !ok {
		return 0, false
	}
	existing := r.items[idx]
	item.Index = idx
	item.Visible = existing.Visible
	if item.Geometry == nil {
		item.Geometry = existing.Geometry
	}
	if sameContent(existing, item) {
		return idx, true
	}
	r.items[idx] = cloneItem(item)
	r.changed()
	return idx, true
}

func (r *Registry) attach(idx int, item Item) {
	item.Index = idx
	r.items[idx] = cloneItem(item)
	if item.Key != "" {
		r.keys[item.Key] = idx
	}
	r.changed()
}

// Update applies patch to the item at index. It reports whether anything
// changed; unchanged patches do not notify.
func (r *Registry) Update(index int, patch Patch) bool {
	item, ok := r.items[index]
	if !ok {
		return false
	}
	next := cloneItem(item)
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		next.Subtitle = *patch.Subtitle
	}
	if patch.Keywords != nil {
		next.Keywords = append([]string(nil), (*patch.Keywords)...)
	}
	if patch.SectionID != nil {
		next.SectionID = *patch.SectionID
	}
	if patch.SectionTitle != nil {
		next.SectionTitle = *patch.SectionTitle
	}
	if patch.Actions != nil {
		next.Actions = append([]string(nil), (*patch.Actions)...)
	}
	if patch.Visible != nil {
		next.Visible = *patch.Visible
	}
	if patch.ClearGeometry {
		next.Geometry = nil
	} else if patch.Geometry != nil {
		g := *patch.Geometry
		next.Geometry = &g
	}
	if next.Visible == item.Visible && sameContent(item, next) {
		return false
	}
	r.items[index] = next
	r.changed()
	return true
}

// Unregister detaches the item at index. Surviving indices are untouched.
func (r *Registry) Unregister(index int) bool {
	item, ok := r.items[index]
	if !ok {
		return false
	}
	delete(r.items, index)
	if item.Key != "" && r.keys[item.Key] == index {
		delete(r.keys, item.Key)
	}
	r.changed()
	return true
}

// Reset detaches every item and restarts the index allocator, as a full
// remount does.
func (r *Registry) Reset() {
	if len(r.items) == 0 && r.nextIndex == 0 {
		return
	}
	r.items = make(map[int]Item)
	r.keys = make(map[string]int)
	r.nextIndex = 0
	r.changed()
}

// Snapshot returns every attached item ordered by index.
func (r *Registry) Snapshot() []Item {
	out := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Get returns the item registered at index.
func (r *Registry) Get(index int) (Item, bool) {
	item, ok := r.items[index]
	if !ok {
		return Item{}, false
	}
	return cloneItem(item), true
}

// FindKey returns the item registered under key.
func (r *Registry) FindKey(key string) (Item, bool) {
	if key == "" {
		return Item{}, false
	}
	idx, ok := r.keys[key]
	if !ok {
		return Item{}, false
	}
	return r.Get(idx)
}

// Len reports the number of attached items.
func (r *Registry) Len() int {
	return len(r.items)
}

// NextIndex reports the index the next Register call will allocate.
func (r *Registry) NextIndex() int {
	return r.nextIndex
}

// Subscribe registers fn for change notifications and returns a function that
// removes it again.
func (r *Registry) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	id := r.nextSub
	r.nextSub++
	r.listeners = append(r.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range r.listeners {
			if sub.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Batch runs fn and delivers at most one notification once the outermost
// batch finishes.
func (r *Registry) Batch(fn func()) {
	r.batchDepth++
	defer func() {
		r.batchDepth--
		if r.batchDepth == 0 && r.dirty {
			r.notify()
		}
	}()
	fn()
}

func (r *Registry) changed() {
	r.dirty = true
	if r.batchDepth == 0 {
		r.notify()
	}
}

func (r *Registry) notify() {
	r.dirty = false
	listeners := append([]subscription(nil), r.listeners...)
	for _, sub := range listeners {
		sub.fn()
	}
}
