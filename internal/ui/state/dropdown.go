package state

// Focus identifies which element receives keyboard input.
type Focus int

const (
	FocusHost Focus = iota
	FocusPopup
)

func (f Focus) String() string {
	if f == FocusPopup {
		return "popup"
	}
	return "host"
}

// DropdownOptions configure a Dropdown.
type DropdownOptions struct {
	ID      string
	Matcher Matcher
	// Value is the initially committed key.
	Value              string
	Scroller           Scroller
	OnChange           func(key string)
	OnCancel           func()
	OnOpenChange       func(open bool)
	OnSearchTextChange func(text string)
}

// Dropdown is a modal picker with its own registry and selection controller.
// Indices inside the popup are independent of the host collection.
type Dropdown struct {
	opts     DropdownOptions
	registry *Registry
	list     *Collection

	open  bool
	focus Focus
	value string
	title string
}

// NewDropdown builds a closed dropdown with an empty popup registry.
func NewDropdown(opts DropdownOptions) *Dropdown {
	registry := NewRegistry()
	d := &Dropdown{
		opts:     opts,
		registry: registry,
		focus:    FocusHost,
		value:    opts.Value,
	}
	d.list = NewCollection(registry, Options{
		ID:       opts.ID,
		Matcher:  opts.Matcher,
		Scroller: opts.Scroller,
		Callbacks: Callbacks{
			OnSearchTextChange: opts.OnSearchTextChange,
		},
	})
	d.list.Mount()
	return d
}

// Open shows the popup, moves focus to its search field and selects the
// committed value when it is registered.
func (d *Dropdown) Open() bool {
	if d.open {
		return false
	}
	d.open = true
	d.focus = FocusPopup
	d.list.SetSearchText("")
	if d.value == "" || !d.selectValue() {
		d.list.JumpFirst()
	}
	if d.opts.OnOpenChange != nil {
		d.opts.OnOpenChange(true)
	}
	return true
}

func (d *Dropdown) selectValue() bool {
	if _, ok := d.registry.FindKey(d.value); !ok {
		return false
	}
	d.list.SelectByKey(d.value)
	return true
}

// Close hides the popup and hands focus back to the host.
func (d *Dropdown) Close() bool {
	if !d.open {
		return false
	}
	d.open = false
	d.focus = FocusHost
	d.list.SetSearchText("")
	if d.opts.OnOpenChange != nil {
		d.opts.OnOpenChange(false)
	}
	return true
}

// Toggle opens a closed dropdown and closes an open one.
func (d *Dropdown) Toggle() {
	if d.open {
		d.Close()
		return
	}
	d.Open()
}

// Confirm commits the popup selection: OnChange runs with its key, then the
// popup closes. Nothing happens while closed or without a selection.
func (d *Dropdown) Confirm() (string, bool) {
	if !d.open {
		return "", false
	}
	item, ok := d.list.Selected()
	if !ok {
		return "", false
	}
	if d.opts.OnChange != nil {
		d.opts.OnChange(item.Key)
	}
	d.value = item.Key
	d.title = item.Title
	d.Close()
	return item.Key, true
}

// Cancel closes the popup without committing. The previous value and title
// are kept.
func (d *Dropdown) Cancel() bool {
	if !d.Close() {
		return false
	}
	if d.opts.OnCancel != nil {
		d.opts.OnCancel()
	}
	return true
}

// Move moves the popup selection while open.
func (d *Dropdown) Move(direction int) bool {
	if !d.open {
		return false
	}
	return d.list.Move(direction)
}

// SetSearchText filters the popup items while open.
func (d *Dropdown) SetSearchText(text string) {
	if !d.open {
		return
	}
	d.list.SetSearchText(text)
}

// SearchText returns the popup search text.
func (d *Dropdown) SearchText() string {
	return d.list.SearchText()
}

// SetValue sets the committed value without firing OnChange.
func (d *Dropdown) SetValue(key string) {
	d.value = key
	d.title = ""
	if item, ok := d.registry.FindKey(key); ok {
		d.title = item.Title
	}
}

// Value returns the committed key.
func (d *Dropdown) Value() string {
	return d.value
}

// Title returns the title of the committed item.
func (d *Dropdown) Title() string {
	if d.title != "" || d.value == "" {
		return d.title
	}
	if item, ok := d.registry.FindKey(d.value); ok {
		return item.Title
	}
	return ""
}

// IsOpen reports whether the popup is showing.
func (d *Dropdown) IsOpen() bool {
	return d.open
}

// Focus reports which element owns keyboard input.
func (d *Dropdown) Focus() Focus {
	return d.focus
}

// Sections groups the visible popup items. Headers are hidden while the
// popup search text is non-empty.
func (d *Dropdown) Sections() []Section {
	return d.list.Sections()
}

// Registry exposes the popup registry.
func (d *Dropdown) Registry() *Registry {
	return d.registry
}

// Collection exposes the popup selection controller.
func (d *Dropdown) Collection() *Collection {
	return d.list
}
