package state

import (
	"errors"
	"testing"

	"github.com/atomicstack/popup-picker/internal/catalog"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavStackPushPop(t *testing.T) {
	nav := NewNavStack()
	_, ok := nav.GetFrame()
	assert.False(t, ok)

	root := nav.Push(nil)
	child := nav.Push([]string{"web"})
	require.Equal(t, 2, nav.Depth())
	assert.NotEqual(t, root.ID, child.ID)
	assert.NotEmpty(t, child.ID)

	top, ok := nav.GetFrame()
	require.True(t, ok)
	assert.Equal(t, child.ID, top.ID)

	popped, ok := nav.Pop()
	require.True(t, ok)
	assert.Equal(t, []string{"web"}, popped.Path)

	_, ok = nav.Pop()
	assert.False(t, ok, "root frame must stay")
	assert.Equal(t, 1, nav.Depth())
}

func TestNavStackRemembersPerFrame(t *testing.T) {
	nav := NewNavStack()
	nav.Push(nil)
	nav.SetFrame(uistate.FramePatch{Collection: "list", Selected: 4})

	nav.Push([]string{"child"})
	frame, _ := nav.GetFrame()
	_, remembered := frame.Selections["list"]
	assert.False(t, remembered, "child frame starts empty")
	nav.SetFrame(uistate.FramePatch{Collection: "list", Selected: 1})

	nav.Pop()
	frame, _ = nav.GetFrame()
	assert.Equal(t, 4, frame.Selections["list"])
}

func TestNavStackWorksWithMemory(t *testing.T) {
	nav := NewNavStack()
	nav.Push(nil)
	mem := uistate.NewMemory(nav, "list")

	assert.True(t, mem.Store(2))
	assert.False(t, mem.Store(2))
	idx, ok := mem.Load()
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestNavStackFramesAreCopies(t *testing.T) {
	nav := NewNavStack()
	nav.Push([]string{"a"})
	frames := nav.Frames()
	frames[0].Path[0] = "mutated"
	frames[0].Selections["x"] = 9

	top, _ := nav.Top()
	assert.Equal(t, []string{"a"}, top.Path)
	assert.NotContains(t, top.Selections, "x")
}

func TestCatalogStoreKeepsLastGoodCatalog(t *testing.T) {
	store := NewCatalogStore()
	assert.Nil(t, store.Catalog())

	doc := &catalog.Catalog{Title: "one"}
	store.SetCatalog(doc)
	assert.Equal(t, 1, store.Version())

	boom := errors.New("boom")
	store.SetErr(boom)
	assert.Same(t, doc, store.Catalog())
	assert.ErrorIs(t, store.Err(), boom)

	store.SetCatalog(&catalog.Catalog{Title: "two"})
	assert.NoError(t, store.Err())
	assert.Equal(t, 2, store.Version())
}
