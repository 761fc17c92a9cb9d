package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const actionMenuID = "actions"

// actionMenu is the dropdown that picks the action committed with an entry.
// While it is open it owns keyboard input.
type actionMenu struct {
	model    *Model
	dropdown *uistate.Dropdown
	input    textinput.Model
	screen   *screen
	entry    catalog.Entry
}

func newActionMenu(m *Model) *actionMenu {
	a := &actionMenu{model: m}
	input := textinput.New()
	input.Prompt = "» "
	input.Placeholder = "filter actions"
	input.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		input.PromptStyle = styles.FilterPrompt.Copy()
	}
	if styles.FilterPlaceholder != nil {
		input.PlaceholderStyle = styles.FilterPlaceholder.Copy()
	}
	a.input = input
	a.dropdown = uistate.NewDropdown(uistate.DropdownOptions{
		ID:       actionMenuID,
		Matcher:  m.opts.Matcher,
		OnChange: a.commit,
		OnCancel: a.cancelled,
	})
	return a
}

func (a *actionMenu) isOpen() bool {
	return a.dropdown.IsOpen()
}

func (a *actionMenu) open(scr *screen, entry catalog.Entry) tea.Cmd {
	if a.isOpen() {
		return nil
	}
	cat := a.model.catalogs.Catalog()
	registry := a.dropdown.Registry()
	registry.Batch(func() {
		registry.Reset()
		if len(entry.Actions) == 0 {
			registry.Register(uistate.Item{Key: catalog.DefaultAction, Title: catalog.DefaultAction})
			return
		}
		for _, action := range entry.Actions {
			sectionTitle := action.Section
			if cat != nil && action.Section != "" {
				sectionTitle = cat.SectionTitle(action.Section)
			}
			registry.Register(uistate.Item{
				Key:          action.Key,
				Title:        action.Title,
				SectionID:    action.Section,
				SectionTitle: sectionTitle,
			})
		}
	})
	a.screen = scr
	a.entry = entry
	a.dropdown.SetValue(scr.actionFor(entry))
	a.input.Reset()
	cmd := a.input.Focus()
	a.dropdown.Open()
	events.Dropdown.Open(entry.Key)
	return cmd
}

func (a *actionMenu) close() {
	a.input.Blur()
	a.input.Reset()
}

// cancel closes the menu without committing, as when the entry it was opened
// for goes away.
func (a *actionMenu) cancel() {
	if a.dropdown.Cancel() {
		a.close()
	}
}

func (a *actionMenu) commit(action string) {
	if a.screen == nil {
		return
	}
	a.screen.actions[a.entry.Key] = action
	title := action
	if item, ok := a.dropdown.Registry().FindKey(action); ok && item.Title != "" {
		title = item.Title
	}
	a.model.setInfo(fmt.Sprintf("Action for %s: %s", a.entry.Title, title))
	events.Dropdown.Commit(a.entry.Key, action)
}

func (a *actionMenu) cancelled() {
	events.Dropdown.Cancel(a.entry.Key)
}

// handle consumes key presses while the menu is open.
func (a *actionMenu) handle(msg tea.Msg) (bool, tea.Cmd) {
	if !a.isOpen() {
		return false, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	keys := a.model.keys
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return true, tea.Quit
	case key.Matches(keyMsg, keys.Back), key.Matches(keyMsg, keys.Actions):
		a.cancel()
	case key.Matches(keyMsg, keys.Enter):
		if _, ok := a.dropdown.Confirm(); ok {
			a.close()
		}
	case key.Matches(keyMsg, keys.Up):
		a.dropdown.Move(-1)
	case key.Matches(keyMsg, keys.Down):
		a.dropdown.Move(1)
	default:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(keyMsg)
		a.dropdown.SetSearchText(a.input.Value())
		return true, cmd
	}
	return true, nil
}

func (a *actionMenu) view(width int) string {
	lines := make([]string, 0, 8)
	title := "Actions: " + a.entry.Title
	if styles.DropdownTitle != nil {
		title = styles.DropdownTitle.Render(title)
	}
	lines = append(lines, title, a.input.View())
	list := a.dropdown.Collection()
	value := a.dropdown.Value()
	sections := a.dropdown.Sections()
	if len(sections) == 0 {
		lines = append(lines, renderLines([]styledLine{{text: "No matching actions", style: styles.Info}}))
	}
	for _, section := range sections {
		if section.ShowHeader {
			lines = append(lines, renderLines([]styledLine{{text: section.Title, style: styles.SectionHeader}}))
		}
		for _, item := range section.Items {
			label := item.Title
			if item.Key == value {
				label += " ✓"
			}
			lines = append(lines, renderLines([]styledLine{buildItemLine(label, list.IsSelected(item.Index), 0)}))
		}
	}
	box := *styles.Dropdown
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(strings.Join(lines, "\n"))
}
