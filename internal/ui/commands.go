package ui

import (
	"strings"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/logging"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type pageLoadedMsg struct {
	screenID   string
	generation int
	offset     int
	page       catalog.Page
	err        error
}

func (m *Model) loadPageCmd(scr *screen) tea.Cmd {
	req := backend.PageRequest{
		Path:   append([]string(nil), scr.path...),
		Offset: len(scr.entries),
		Limit:  m.opts.PageSize,
	}
	id, generation := scr.id, scr.generation
	ctx, pager := m.ctx, m.pager
	return func() tea.Msg {
		page, err := pager.Fetch(ctx, req)
		if err != nil {
			logging.Error(err)
		}
		return pageLoadedMsg{screenID: id, generation: generation, offset: req.Offset, page: page, err: err}
	}
}

func (m *Model) handlePageLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(pageLoadedMsg)
	if !ok {
		return nil
	}
	scr := m.screenByID(loaded.screenID)
	if scr == nil || scr.generation != loaded.generation {
		return nil
	}
	scr.loading = false
	if loaded.err != nil {
		m.errMsg = loaded.err.Error()
		m.forceClearInfo()
		return nil
	}
	if loaded.offset != len(scr.entries) {
		return nil
	}
	m.appendEntries(scr, loaded.page.Entries)
	scr.total = loaded.page.Total
	scr.list.SetHasMore(loaded.page.HasMore)
	events.Pagination.Loaded(scr.id, len(loaded.page.Entries), loaded.page.Total, loaded.page.HasMore)
	return nil
}

func (m *Model) commitCmd(scr *screen, entry catalog.Entry) tea.Cmd {
	path := append(append([]string(nil), scr.path...), entry.Key)
	choice := command.Choice{
		Key:    entry.Key,
		Path:   path,
		Title:  entry.Title,
		Action: scr.actionFor(entry),
	}
	return m.bus.Execute(command.Request{
		ID:      strings.Join(path, "/"),
		Label:   entry.Title,
		Handler: command.Commit,
		Choice:  choice,
	})
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	choice := result.Choice
	m.choice = &choice
	m.forceClearInfo()
	events.Action.Success(result.Info)
	return tea.Quit
}
