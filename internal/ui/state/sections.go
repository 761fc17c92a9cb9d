package state

// Section is a run of consecutive items sharing a section id.
type Section struct {
	ID         string
	Title      string
	ShowHeader bool
	Items      []Item
}

// GroupSections splits items into runs of equal SectionID without reordering
// them. Headers are hidden while searching.
func GroupSections(items []Item, searching bool) []Section {
	var sections []Section
	for _, item := range items {
		n := len(sections)
		if n > 0 && sections[n-1].ID == item.SectionID {
			sections[n-1].Items = append(sections[n-1].Items, item)
			continue
		}
		title := item.SectionTitle
		if title == "" {
			title = item.SectionID
		}
		sections = append(sections, Section{
			ID:         item.SectionID,
			Title:      title,
			ShowHeader: !searching && item.SectionID != "",
			Items:      []Item{item},
		})
	}
	return sections
}
