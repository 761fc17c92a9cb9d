package state

import (
	"sync"

	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/google/uuid"
)

// NavFrame is one screen on the navigation stack.
type NavFrame struct {
	ID         string
	Path       []string
	Selections map[string]int
}

// NavStack is the picker's navigation stack. It exposes its top frame to
// collections through uistate.FrameStore.
type NavStack struct {
	mu     sync.Mutex
	frames []NavFrame
}

var _ uistate.FrameStore = (*NavStack)(nil)

func NewNavStack() *NavStack {
	return &NavStack{}
}

// Push adds a frame for path and returns it.
func (n *NavStack) Push(path []string) NavFrame {
	n.mu.Lock()
	defer n.mu.Unlock()
	frame := NavFrame{
		ID:         uuid.NewString(),
		Path:       append([]string(nil), path...),
		Selections: map[string]int{},
	}
	n.frames = append(n.frames, frame)
	return cloneFrame(frame)
}

// Pop removes the top frame. The root frame is never removed.
func (n *NavStack) Pop() (NavFrame, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.frames) <= 1 {
		return NavFrame{}, false
	}
	top := n.frames[len(n.frames)-1]
	n.frames = n.frames[:len(n.frames)-1]
	return cloneFrame(top), true
}

func (n *NavStack) Top() (NavFrame, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.frames) == 0 {
		return NavFrame{}, false
	}
	return cloneFrame(n.frames[len(n.frames)-1]), true
}

func (n *NavStack) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.frames)
}

// Frames returns a copy of the stack, root first.
func (n *NavStack) Frames() []NavFrame {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NavFrame, len(n.frames))
	for i, f := range n.frames {
		out[i] = cloneFrame(f)
	}
	return out
}

// GetFrame returns the top frame.
func (n *NavStack) GetFrame() (uistate.Frame, bool) {
	top, ok := n.Top()
	if !ok {
		return uistate.Frame{}, false
	}
	return uistate.Frame{ID: top.ID, Selections: top.Selections}, true
}

// SetFrame updates the top frame's remembered selection.
func (n *NavStack) SetFrame(patch uistate.FramePatch) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.frames) == 0 {
		return
	}
	top := &n.frames[len(n.frames)-1]
	if top.Selections == nil {
		top.Selections = map[string]int{}
	}
	top.Selections[patch.Collection] = patch.Selected
}

func cloneFrame(f NavFrame) NavFrame {
	dup := NavFrame{ID: f.ID, Path: append([]string(nil), f.Path...)}
	dup.Selections = make(map[string]int, len(f.Selections))
	for k, v := range f.Selections {
		dup.Selections[k] = v
	}
	return dup
}
