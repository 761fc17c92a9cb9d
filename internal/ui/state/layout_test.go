package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanScrollCentresItem(t *testing.T) {
	target, ok := PlanScroll(&Geometry{Offset: 10, Size: 1}, Viewport{Height: 6})
	assert.True(t, ok)
	assert.Equal(t, 7, target)
}

func TestPlanScrollFloorsAtZero(t *testing.T) {
	target, ok := PlanScroll(&Geometry{Offset: 1, Size: 1}, Viewport{Height: 10})
	assert.True(t, ok)
	assert.Equal(t, 0, target)
}

func TestPlanScrollSubtractsContentOffset(t *testing.T) {
	target, ok := PlanScroll(&Geometry{Offset: 25, Size: 1}, Viewport{ContentOffset: 5, Height: 4})
	assert.True(t, ok)
	assert.Equal(t, 18, target)
}

func TestPlanScrollWithoutGeometry(t *testing.T) {
	_, ok := PlanScroll(nil, Viewport{Height: 4})
	assert.False(t, ok)
}

func TestGroupSectionsKeepsConsecutiveRuns(t *testing.T) {
	items := []Item{
		{Index: 0, Key: "a", SectionID: "web", SectionTitle: "Web"},
		{Index: 1, Key: "b", SectionID: "web", SectionTitle: "Web"},
		{Index: 2, Key: "c", SectionID: "data"},
		{Index: 3, Key: "d", SectionID: "web", SectionTitle: "Web"},
		{Index: 4, Key: "e"},
	}
	sections := GroupSections(items, false)
	if assert.Len(t, sections, 4) {
		assert.Equal(t, "Web", sections[0].Title)
		assert.Len(t, sections[0].Items, 2)
		assert.Equal(t, "data", sections[1].Title, "id stands in for a missing title")
		assert.Equal(t, "web", sections[2].ID)
		assert.True(t, sections[2].ShowHeader)
		assert.False(t, sections[3].ShowHeader, "unsectioned run has no header")
	}

	for _, section := range GroupSections(items, true) {
		assert.False(t, section.ShowHeader)
	}
}

func TestMemoryStoresOnlyChanges(t *testing.T) {
	frames := &fakeFrames{}
	frames.push("root")
	mem := NewMemory(frames, "list")

	_, ok := mem.Load()
	assert.False(t, ok)

	assert.True(t, mem.Store(3))
	assert.False(t, mem.Store(3))
	assert.False(t, mem.Store(NoSelection))
	assert.Equal(t, 1, frames.writes)

	idx, ok := mem.Load()
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	other := NewMemory(frames, "actions")
	_, ok = other.Load()
	assert.False(t, ok, "slots are per collection")
}

func TestMemoryWithoutFrame(t *testing.T) {
	mem := NewMemory(&fakeFrames{}, "list")
	assert.False(t, mem.Store(1))

	var nilStore *Memory
	_, ok := nilStore.Load()
	assert.False(t, ok)
	assert.False(t, NewMemory(nil, "list").Store(2))
}
