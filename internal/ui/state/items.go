package state

import "reflect"

// NoSelection marks a collection without an active item.
const NoSelection = -1

// Geometry is the position of a rendered item along the scroll axis, relative
// to the origin of the scrollable content.
type Geometry struct {
	Offset int
	Size   int
}

// Item is one selectable entry tracked by a Registry.
type Item struct {
	Key          string
	Index        int
	Title        string
	Subtitle     string
	Keywords     []string
	SectionID    string
	SectionTitle string
	Actions      []string
	Data         interface{}
	Visible      bool
	Geometry     *Geometry
}

// SearchableText returns the ordered fields used for filtering.
func (i Item) SearchableText() []string {
	fields := make([]string, 0, 3+len(i.Keywords))
	if i.Title != "" {
		fields = append(fields, i.Title)
	}
	if i.Subtitle != "" {
		fields = append(fields, i.Subtitle)
	}
	for _, kw := range i.Keywords {
		if kw != "" {
			fields = append(fields, kw)
		}
	}
	if i.SectionTitle != "" {
		fields = append(fields, i.SectionTitle)
	}
	return fields
}

// CloneItems produces a copy of the provided items that shares no slices or
// geometry with the originals.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	for i, item := range items {
		dup[i] = cloneItem(item)
	}
	return dup
}

func cloneItem(item Item) Item {
	if item.Keywords != nil {
		item.Keywords = append([]string(nil), item.Keywords...)
	}
	if item.Actions != nil {
		item.Actions = append([]string(nil), item.Actions...)
	}
	if item.Geometry != nil {
		g := *item.Geometry
		item.Geometry = &g
	}
	return item
}

// sameContent compares everything an author supplies on registration.
// Index and Visible are owned by the registry and the filter respectively.
func sameContent(a, b Item) bool {
	if a.Key != b.Key || a.Title != b.Title || a.Subtitle != b.Subtitle {
		return false
	}
	if a.SectionID != b.SectionID || a.SectionTitle != b.SectionTitle {
		return false
	}
	if !equalStrings(a.Keywords, b.Keywords) || !equalStrings(a.Actions, b.Actions) {
		return false
	}
	if !equalGeometry(a.Geometry, b.Geometry) {
		return false
	}
	return reflect.DeepEqual(a.Data, b.Data)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalGeometry(a, b *Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
