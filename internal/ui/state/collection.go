package state

// Callbacks are fired synchronously by a Collection. None of them are awaited.
type Callbacks struct {
	// OnSelectionChange receives the key of the new selection; selected is
	// false when the selection became empty.
	OnSelectionChange  func(key string, selected bool)
	OnSearchTextChange func(text string)
	OnLoadMore         func()
}

// Options configure a Collection.
type Options struct {
	ID               string
	DisableFiltering bool
	Matcher          Matcher
	Pagination       PaginationConfig
	Frames           FrameStore
	Scroller         Scroller
	Callbacks        Callbacks
}

// Collection is the selection controller for one list. It owns a registry
// subscription while mounted and is the only writer of the selection.
type Collection struct {
	id        string
	registry  *Registry
	matcher   Matcher
	memory    *Memory
	scroller  Scroller
	callbacks Callbacks

	state        State
	searchCursor int

	mounted     bool
	applying    bool
	unsubscribe func()
}

// NewCollection creates a collection over registry. A nil registry gets a
// fresh one.
func NewCollection(registry *Registry, opts Options) *Collection {
	if registry == nil {
		registry = NewRegistry()
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &Collection{
		id:        opts.ID,
		registry:  registry,
		matcher:   matcher,
		memory:    NewMemory(opts.Frames, opts.ID),
		scroller:  opts.Scroller,
		callbacks: opts.Callbacks,
		state:     NewState(opts.Pagination, !opts.DisableFiltering),
	}
}

// Mount subscribes to the registry and seeds the selection from frame
// memory. Seeding does not fire OnSelectionChange.
func (c *Collection) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.unsubscribe = c.registry.Subscribe(c.onRegistryChange)
	idx, ok := c.memory.Load()
	c.dispatch(SeedEvent{Index: idx, Remembered: ok})
}

// Unmount drops the registry subscription. Remembered selections stay in the
// frame store.
func (c *Collection) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Mounted reports whether the collection is listening to its registry.
func (c *Collection) Mounted() bool {
	return c.mounted
}

func (c *Collection) onRegistryChange() {
	if c.applying || !c.mounted {
		return
	}
	c.dispatch(ItemsChangedEvent{})
}

func (c *Collection) dispatch(ev Event) {
	next, effects := Reduce(c.state, c.registry.Snapshot(), ev, c.matcher)
	c.state = next
	c.run(effects)
}

func (c *Collection) run(effects []Effect) {
	for _, eff := range effects {
		if v, ok := eff.(VisibilityEffect); ok {
			c.applyVisibility(v)
		}
	}
	for _, eff := range effects {
		switch e := eff.(type) {
		case ScrollEffect:
			c.scroll(e.Geometry)
		case RememberEffect:
			c.memory.Store(e.Index)
		case SelectionChangedEffect:
			if c.callbacks.OnSelectionChange != nil {
				c.callbacks.OnSelectionChange(e.Key, e.Index != NoSelection)
			}
		case SearchTextEffect:
			if c.callbacks.OnSearchTextChange != nil {
				c.callbacks.OnSearchTextChange(e.Text)
			}
		case LoadMoreEffect:
			if c.callbacks.OnLoadMore != nil {
				c.callbacks.OnLoadMore()
			}
		}
	}
}

func (c *Collection) applyVisibility(v VisibilityEffect) {
	c.applying = true
	defer func() { c.applying = false }()
	c.registry.Batch(func() {
		for _, change := range v.Changes {
			c.registry.Update(change.Index, VisiblePatch(change.Visible))
		}
	})
}

func (c *Collection) scroll(g *Geometry) {
	if c.scroller == nil {
		return
	}
	vp := Viewport{ContentOffset: c.scroller.ContentOffset(), Height: c.scroller.ViewportHeight()}
	if target, ok := PlanScroll(g, vp); ok {
		c.scroller.ScrollTo(target)
	}
}

func (c *Collection) changed(before State) bool {
	return c.state.Selected != before.Selected
}

// Move moves the selection one visible item up (direction < 0) or down,
// wrapping at either end unless more items can be loaded.
func (c *Collection) Move(direction int) bool {
	before := c.state
	c.dispatch(MoveEvent{Direction: direction})
	return c.changed(before)
}

// JumpFirst selects the first visible item.
func (c *Collection) JumpFirst() bool {
	before := c.state
	c.dispatch(JumpEvent{})
	return c.changed(before)
}

// JumpLast selects the last visible item.
func (c *Collection) JumpLast() bool {
	before := c.state
	c.dispatch(JumpEvent{Last: true})
	return c.changed(before)
}

// PageUp moves the selection n visible items up without wrapping.
func (c *Collection) PageUp(n int) bool {
	if n < 1 {
		n = 1
	}
	before := c.state
	c.dispatch(PageEvent{Delta: -n})
	return c.changed(before)
}

// PageDown moves the selection n visible items down without wrapping.
func (c *Collection) PageDown(n int) bool {
	if n < 1 {
		n = 1
	}
	before := c.state
	c.dispatch(PageEvent{Delta: n})
	return c.changed(before)
}

// SelectByKey selects the item registered under key, whether or not it is
// currently visible.
func (c *Collection) SelectByKey(key string) bool {
	before := c.state
	c.dispatch(SelectKeyEvent{Key: key})
	return c.changed(before)
}

// SetSearchText replaces the search text and places the caret at its end.
func (c *Collection) SetSearchText(text string) {
	c.SetSearchInput(text, len([]rune(text)))
}

// SetSearchInput replaces the search text and caret position. Visibility and
// the selection reset are applied before any listener runs.
func (c *Collection) SetSearchInput(text string, cursor int) {
	if cursor < 0 {
		cursor = 0
	}
	if n := len([]rune(text)); cursor > n {
		cursor = n
	}
	c.searchCursor = cursor
	c.dispatch(SearchEvent{Text: text})
}

// SearchText returns the current search text.
func (c *Collection) SearchText() string {
	return c.state.SearchText
}

// SetHasMore records whether the data source can supply more items.
func (c *Collection) SetHasMore(hasMore bool) {
	c.dispatch(HasMoreEvent{HasMore: hasMore})
}

// HasMore reports whether the data source can supply more items.
func (c *Collection) HasMore() bool {
	return c.state.Pagination.HasMore
}

// SetFilteringEnabled toggles filtering. While disabled every item is visible.
func (c *Collection) SetFilteringEnabled(enabled bool) {
	c.dispatch(FilteringEvent{Enabled: enabled})
}

// FilteringEnabled reports whether search text hides items.
func (c *Collection) FilteringEnabled() bool {
	return c.state.FilteringEnabled
}

// SetScroller replaces the scroll container.
func (c *Collection) SetScroller(s Scroller) {
	c.scroller = s
}

// ScrollToSelected re-centres the selection, typically after layout assigned
// geometry. It reports false when the selection has no geometry.
func (c *Collection) ScrollToSelected() bool {
	item, ok := c.Selected()
	if !ok || item.Geometry == nil {
		return false
	}
	c.scroll(item.Geometry)
	return true
}

// Selected returns the selected item when it is still attached.
func (c *Collection) Selected() (Item, bool) {
	if c.state.Selected == NoSelection {
		return Item{}, false
	}
	return c.registry.Get(c.state.Selected)
}

// SelectedIndex returns the selected registry index or NoSelection.
func (c *Collection) SelectedIndex() int {
	return c.state.Selected
}

// SelectedKey returns the key of the selected item.
func (c *Collection) SelectedKey() string {
	item, ok := c.Selected()
	if !ok {
		return ""
	}
	return item.Key
}

// SelectedActions returns the actions attached to the selected item.
func (c *Collection) SelectedActions() []string {
	item, ok := c.Selected()
	if !ok {
		return nil
	}
	return item.Actions
}

// IsSelected reports whether index is the active selection.
func (c *Collection) IsSelected(index int) bool {
	return index != NoSelection && index == c.state.Selected
}

// Items returns every attached item in index order.
func (c *Collection) Items() []Item {
	return c.registry.Snapshot()
}

// VisibleItems returns the visible items in index order.
func (c *Collection) VisibleItems() []Item {
	return visibleOf(c.registry.Snapshot())
}

// VisiblePosition returns the selection's position within the visible items
// and the visible count. The position is -1 without a visible selection.
func (c *Collection) VisiblePosition() (int, int) {
	visible := c.VisibleItems()
	return positionOf(visible, c.state.Selected), len(visible)
}

// Sections groups the visible items into runs of equal section id.
func (c *Collection) Sections() []Section {
	return GroupSections(c.VisibleItems(), NormalizeQuery(c.state.SearchText) != "")
}

// State returns a copy of the controller state.
func (c *Collection) State() State {
	return c.state
}

// ID returns the collection id used as its frame memory slot.
func (c *Collection) ID() string {
	return c.id
}

// Registry returns the registry backing the collection.
func (c *Collection) Registry() *Registry {
	return c.registry
}
