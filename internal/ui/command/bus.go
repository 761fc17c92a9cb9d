package command

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-picker/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Choice is a committed pick: the entry at Path with the chosen action.
type Choice struct {
	Key    string
	Path   []string
	Title  string
	Action string
}

// ActionResult reports the outcome of an executed action.
type ActionResult struct {
	Choice Choice
	Info   string
	Err    error
}

// Handler runs an action for a choice.
type Handler func(Choice) tea.Cmd

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
	Choice  Choice
}

// Bus coordinates the execution of picker actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Handler(req.Choice)
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Commit is the default handler: it reports the choice back as a successful
// ActionResult.
func Commit(choice Choice) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(choice.Key) == "" {
			return ActionResult{Choice: choice, Err: fmt.Errorf("nothing selected")}
		}
		return ActionResult{Choice: choice, Info: fmt.Sprintf("%s\t%s", choice.Key, choice.Action)}
	}
}
