package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/ui"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("pick cancelled")

// Config describes user-provided application options.
type Config struct {
	CatalogPath   string
	Width         int
	Height        int
	ShowFooter    bool
	RootPath      []string
	PageSize      int
	PageDelay     time.Duration
	Match         string
	Filtering     bool
	Pagination    uistate.PaginationConfig
	WatchInterval time.Duration
	// Output receives the rendered UI. Nil renders to stdout.
	Output        io.Writer
}

// Result is the committed pick.
type Result struct {
	Key    string
	Path   []string
	Action string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (Result, error) {
	interval := cfg.WatchInterval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	watcher, err := backend.NewWatcher(cfg.CatalogPath, interval)
	if err != nil {
		return Result{}, fmt.Errorf("watch catalog: %w", err)
	}
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := ui.NewModel(ui.Options{
		Context:          ctx,
		Width:            cfg.Width,
		Height:           cfg.Height,
		ShowFooter:       cfg.ShowFooter,
		RootPath:         cfg.RootPath,
		PageSize:         cfg.PageSize,
		PageDelay:        cfg.PageDelay,
		Matcher:          uistate.MatcherFor(cfg.Match),
		DisableFiltering: !cfg.Filtering,
		Pagination:       cfg.Pagination,
		Watcher:          watcher,
	})
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}
	program := tea.NewProgram(model, opts...)
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return Result{}, ErrCancelled
	}
	if err != nil {
		return Result{}, err
	}
	m, ok := final.(*ui.Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	if err := m.Err(); err != nil {
		return Result{}, err
	}
	choice, ok := m.Choice()
	if !ok {
		return Result{}, ErrCancelled
	}
	return Result{Key: choice.Key, Path: choice.Path, Action: choice.Action}, nil
}
