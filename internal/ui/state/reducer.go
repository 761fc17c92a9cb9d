package state

// State is the selection state of one collection. It is only changed by
// Reduce.
type State struct {
	Selected int
	// SelectedKey is the key of the item at Selected when it was selected.
	SelectedKey      string
	SearchText       string
	FilteringEnabled bool
	// Pending marks a selection restored from frame memory before any item
	// was registered.
	Pending    bool
	Pagination Pagination
}

// NewState returns the state of a freshly mounted collection.
func NewState(cfg PaginationConfig, filteringEnabled bool) State {
	return State{
		Selected:         NoSelection,
		FilteringEnabled: filteringEnabled,
		Pagination:       Pagination{Config: cfg.normalized()},
	}
}

// Event is an input to Reduce.
type Event interface{ isEvent() }

type (
	// MoveEvent moves the selection by one visible item, wrapping at the ends.
	MoveEvent struct{ Direction int }
	// JumpEvent selects the first or last visible item.
	JumpEvent struct{ Last bool }
	// PageEvent moves the selection by Delta visible items without wrapping.
	PageEvent struct{ Delta int }
	// SearchEvent replaces the search text.
	SearchEvent struct{ Text string }
	// SelectKeyEvent selects an item by key, visible or not.
	SelectKeyEvent struct{ Key string }
	// ItemsChangedEvent follows every registry notification.
	ItemsChangedEvent struct{}
	HasMoreEvent      struct{ HasMore bool }
	FilteringEvent    struct{ Enabled bool }
	// SeedEvent initialises the selection on mount.
	SeedEvent struct {
		Index      int
		Remembered bool
	}
)

func (MoveEvent) isEvent()         {}
func (JumpEvent) isEvent()         {}
func (PageEvent) isEvent()         {}
func (SearchEvent) isEvent()       {}
func (SelectKeyEvent) isEvent()    {}
func (ItemsChangedEvent) isEvent() {}
func (HasMoreEvent) isEvent()      {}
func (FilteringEvent) isEvent()    {}
func (SeedEvent) isEvent()         {}

// Effect is a side effect requested by Reduce. Effects are executed in order
// by the owning Collection.
type Effect interface{ isEffect() }

// VisibilityChange flips the visibility of one registered item.
type VisibilityChange struct {
	Index   int
	Visible bool
}

type (
	// VisibilityEffect is applied to the registry as one batch.
	VisibilityEffect struct{ Changes []VisibilityChange }
	ScrollEffect     struct {
		Index    int
		Geometry *Geometry
	}
	RememberEffect struct{ Index int }
	// SelectionChangedEffect reports a new selection; Index is NoSelection
	// when nothing is selected.
	SelectionChangedEffect struct {
		Index int
		Key   string
	}
	SearchTextEffect struct{ Text string }
	LoadMoreEffect   struct{}
)

func (VisibilityEffect) isEffect()       {}
func (ScrollEffect) isEffect()           {}
func (RememberEffect) isEffect()         {}
func (SelectionChangedEffect) isEffect() {}
func (SearchTextEffect) isEffect()       {}
func (LoadMoreEffect) isEffect()         {}

// Reduce applies ev to s given the registry snapshot items (ordered by index)
// and returns the next state plus the effects to run.
func Reduce(s State, items []Item, ev Event, matcher Matcher) (State, []Effect) {
	switch e := ev.(type) {
	case MoveEvent:
		return reduceMove(s, items, e.Direction)
	case JumpEvent:
		return reduceJump(s, items, e.Last)
	case PageEvent:
		return reducePage(s, items, e.Delta)
	case SearchEvent:
		return reduceSearch(s, items, e.Text, matcher)
	case SelectKeyEvent:
		return reduceSelectKey(s, items, e.Key)
	case ItemsChangedEvent:
		return reduceItemsChanged(s, items, matcher)
	case HasMoreEvent:
		s.Pagination.SetHasMore(e.HasMore)
		return s, nil
	case FilteringEvent:
		return reduceFiltering(s, items, e.Enabled, matcher)
	case SeedEvent:
		return reduceSeed(s, items, e, matcher)
	}
	return s, nil
}

func reduceMove(s State, items []Item, direction int) (State, []Effect) {
	visible := visibleOf(items)
	if len(visible) == 0 || direction == 0 {
		return s, nil
	}
	pos := positionOf(visible, s.Selected)
	if pos < 0 {
		return land(s, visible, 0, false)
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	next := pos + step
	if step > 0 && next >= len(visible) && s.Pagination.HasMore {
		if s.Pagination.Observe(len(visible)-1, len(visible)) {
			return s, []Effect{LoadMoreEffect{}}
		}
		return s, nil
	}
	if next < 0 {
		next = len(visible) - 1
	} else if next >= len(visible) {
		next = 0
	}
	return land(s, visible, next, true)
}

func reduceJump(s State, items []Item, last bool) (State, []Effect) {
	visible := visibleOf(items)
	if len(visible) == 0 {
		return s, nil
	}
	pos := 0
	if last {
		pos = len(visible) - 1
	}
	return land(s, visible, pos, true)
}

func reducePage(s State, items []Item, delta int) (State, []Effect) {
	visible := visibleOf(items)
	if len(visible) == 0 || delta == 0 {
		return s, nil
	}
	pos := positionOf(visible, s.Selected)
	if pos < 0 {
		return land(s, visible, 0, false)
	}
	next := pos + delta
	if next < 0 {
		next = 0
	}
	if next >= len(visible) {
		next = len(visible) - 1
	}
	return land(s, visible, next, true)
}

func reduceSearch(s State, items []Item, text string, matcher Matcher) (State, []Effect) {
	if text == s.SearchText {
		return s, nil
	}
	s.SearchText = text
	items, effects := recompute(s, items, matcher)
	s, more := resetToFirst(s, items)
	effects = append(effects, more...)
	effects = append(effects, SearchTextEffect{Text: text})
	return s, effects
}

func reduceFiltering(s State, items []Item, enabled bool, matcher Matcher) (State, []Effect) {
	if enabled == s.FilteringEnabled {
		return s, nil
	}
	s.FilteringEnabled = enabled
	items, effects := recompute(s, items, matcher)
	if len(effects) == 0 {
		return s, nil
	}
	s, more := resetToFirst(s, items)
	return s, append(effects, more...)
}

func reduceSelectKey(s State, items []Item, key string) (State, []Effect) {
	if key == "" {
		return s, nil
	}
	for _, item := range items {
		if item.Key != key {
			continue
		}
		if item.Index == s.Selected && !s.Pending {
			return s, nil
		}
		s.Selected = item.Index
		s.SelectedKey = item.Key
		s.Pending = false
		effects := selectionEffects(item)
		visible := visibleOf(items)
		if pos := positionOf(visible, item.Index); pos >= 0 {
			if s.Pagination.Observe(pos, len(visible)) {
				effects = append(effects, LoadMoreEffect{})
			}
		}
		return s, effects
	}
	return s, nil
}

func reduceItemsChanged(s State, items []Item, matcher Matcher) (State, []Effect) {
	items, effects := recompute(s, items, matcher)
	visible := visibleOf(items)
	if s.Pending {
		if len(items) == 0 {
			return s, effects
		}
		s.Pending = false
		if pos := positionOf(visible, s.Selected); pos >= 0 {
			s.SelectedKey = visible[pos].Key
			if g := visible[pos].Geometry; g != nil {
				effects = append(effects, ScrollEffect{Index: s.Selected, Geometry: g})
			}
			return s, effects
		}
		s.Selected = NoSelection
		s.SelectedKey = ""
	}
	if pos := positionOf(visible, s.Selected); pos >= 0 && visible[pos].Key == s.SelectedKey {
		return s, effects
	}
	// The selection was removed, hidden or its index now holds another item.
	stale := s.Selected != NoSelection
	s.Selected = NoSelection
	s.SelectedKey = ""
	if len(visible) == 0 {
		if stale {
			effects = append(effects, SelectionChangedEffect{Index: NoSelection})
		}
		return s, effects
	}
	s, more := land(s, visible, 0, false)
	return s, append(effects, more...)
}

func reduceSeed(s State, items []Item, e SeedEvent, matcher Matcher) (State, []Effect) {
	items, effects := recompute(s, items, matcher)
	s.Pending = false
	s.SelectedKey = ""
	if len(items) == 0 {
		s.Selected = NoSelection
		if e.Remembered && e.Index >= 0 {
			s.Selected = e.Index
			s.Pending = true
		}
		return s, effects
	}
	visible := visibleOf(items)
	s.Selected = NoSelection
	pos := -1
	if e.Remembered {
		pos = positionOf(visible, e.Index)
	}
	if pos < 0 && len(visible) > 0 {
		pos = 0
	}
	if pos >= 0 {
		s.Selected = visible[pos].Index
		s.SelectedKey = visible[pos].Key
		if g := visible[pos].Geometry; g != nil {
			effects = append(effects, ScrollEffect{Index: s.Selected, Geometry: g})
		}
	}
	return s, effects
}

// land selects visible[pos]. observe feeds the landing position to the
// pagination latch.
func land(s State, visible []Item, pos int, observe bool) (State, []Effect) {
	target := visible[pos]
	var effects []Effect
	if target.Index != s.Selected || s.Pending {
		s.Selected = target.Index
		s.SelectedKey = target.Key
		s.Pending = false
		effects = selectionEffects(target)
	}
	if observe && s.Pagination.Observe(pos, len(visible)) {
		effects = append(effects, LoadMoreEffect{})
	}
	return s, effects
}

func resetToFirst(s State, items []Item) (State, []Effect) {
	if len(items) == 0 && s.Pending {
		return s, nil
	}
	visible := visibleOf(items)
	if len(visible) == 0 {
		s.Pending = false
		if s.Selected == NoSelection {
			return s, nil
		}
		s.Selected = NoSelection
		s.SelectedKey = ""
		return s, []Effect{SelectionChangedEffect{Index: NoSelection}}
	}
	return land(s, visible, 0, false)
}

func selectionEffects(item Item) []Effect {
	return []Effect{
		ScrollEffect{Index: item.Index, Geometry: item.Geometry},
		RememberEffect{Index: item.Index},
		SelectionChangedEffect{Index: item.Index, Key: item.Key},
	}
}

// recompute refreshes the Visible flag of every item for the current search
// and filtering settings.
func recompute(s State, items []Item, matcher Matcher) ([]Item, []Effect) {
	out := make([]Item, len(items))
	var changes []VisibilityChange
	for i, item := range items {
		visible := ComputeVisibility(item, s.SearchText, s.FilteringEnabled, matcher)
		if visible != item.Visible {
			item.Visible = visible
			changes = append(changes, VisibilityChange{Index: item.Index, Visible: visible})
		}
		out[i] = item
	}
	if len(changes) == 0 {
		return out, nil
	}
	return out, []Effect{VisibilityEffect{Changes: changes}}
}

func visibleOf(items []Item) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Visible {
			visible = append(visible, item)
		}
	}
	return visible
}

func positionOf(visible []Item, index int) int {
	if index == NoSelection {
		return -1
	}
	for i, item := range visible {
		if item.Index == index {
			return i
		}
	}
	return -1
}
