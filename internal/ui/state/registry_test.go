package state

import "testing"

func countNotifications(r *Registry) *int {
	n := 0
	r.Subscribe(func() { n++ })
	return &n
}

func TestRegisterAssignsMountOrder(t *testing.T) {
	r := NewRegistry()
	a := r.Register(Item{Key: "a", Title: "A"})
	b := r.Register(Item{Title: "anonymous"})
	c := r.Register(Item{Key: "c", Title: "C"})
	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("expected indices 0,1,2 got %d,%d,%d", a, b, c)
	}
	if r.NextIndex() != 3 {
		t.Fatalf("expected next index 3, got %d", r.NextIndex())
	}
}

func TestReregisterIdenticalContentIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Register(Item{Key: "a", Title: "A", Keywords: []string{"x"}})
	n := countNotifications(r)
	idx := r.Register(Item{Key: "a", Title: "A", Keywords: []string{"x"}})
	if idx != 0 {
		t.Fatalf("expected existing index, got %d", idx)
	}
	if *n != 0 {
		t.Fatalf("expected no notification, got %d", *n)
	}
	if r.Len() != 1 || r.NextIndex() != 1 {
		t.Fatalf("expected registry unchanged, len=%d next=%d", r.Len(), r.NextIndex())
	}
}

func TestReregisterChangedContentKeepsIndex(t *testing.T) {
	r := NewRegistry()
	r.Register(Item{Key: "a", Title: "A"})
	r.Register(Item{Key: "b", Title: "B"})
	r.Update(0, GeometryPatch(4, 1))
	n := countNotifications(r)

	idx := r.Register(Item{Key: "a", Title: "Renamed"})
	if idx != 0 {
		t.Fatalf("expected index 0 kept, got %d", idx)
	}
	if *n != 1 {
		t.Fatalf("expected one notification, got %d", *n)
	}
	item, _ := r.Get(0)
	if item.Title != "Renamed" {
		t.Fatalf("expected title updated, got %q", item.Title)
	}
	if item.Geometry == nil || item.Geometry.Offset != 4 {
		t.Fatalf("expected geometry preserved, got %#v", item.Geometry)
	}
}

func TestUnregisterNeverReusesIndices(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"a", "b", "c"} {
		r.Register(Item{Key: key})
	}
	if !r.Unregister(1) {
		t.Fatalf("expected unregister to succeed")
	}
	if r.Unregister(1) {
		t.Fatalf("expected second unregister to fail")
	}
	d := r.Register(Item{Key: "d"})
	if d != 3 {
		t.Fatalf("expected fresh index 3, got %d", d)
	}
	snap := r.Snapshot()
	got := []int{snap[0].Index, snap[1].Index, snap[2].Index}
	if len(snap) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected snapshot indices %v", got)
	}
	if _, ok := r.FindKey("b"); ok {
		t.Fatalf("expected key b released")
	}
}

func TestRegisterAtOrdersSnapshot(t *testing.T) {
	r := NewRegistry()
	r.RegisterAt(5, Item{Key: "late"})
	r.RegisterAt(2, Item{Key: "early"})
	if r.NextIndex() != 6 {
		t.Fatalf("expected allocator past 5, got %d", r.NextIndex())
	}
	next := r.Register(Item{Key: "auto"})
	if next != 6 {
		t.Fatalf("expected auto index 6, got %d", next)
	}
	snap := r.Snapshot()
	if snap[0].Key != "early" || snap[1].Key != "late" || snap[2].Key != "auto" {
		t.Fatalf("unexpected order %q %q %q", snap[0].Key, snap[1].Key, snap[2].Key)
	}
}

func TestBatchNotifiesOnce(t *testing.T) {
	r := NewRegistry()
	n := countNotifications(r)
	r.Batch(func() {
		r.Register(Item{Key: "a"})
		r.Batch(func() {
			r.Register(Item{Key: "b"})
		})
		r.Update(0, VisiblePatch(true))
	})
	if *n != 1 {
		t.Fatalf("expected one notification, got %d", *n)
	}
	r.Batch(func() {})
	if *n != 1 {
		t.Fatalf("expected empty batch to stay silent, got %d", *n)
	}
}

func TestUpdateWithoutChangeIsSilent(t *testing.T) {
	r := NewRegistry()
	idx := r.Register(Item{Key: "a", Title: "A"})
	r.Update(idx, VisiblePatch(true))
	n := countNotifications(r)
	if r.Update(idx, VisiblePatch(true)) {
		t.Fatalf("expected unchanged patch to report false")
	}
	title := "A"
	if r.Update(idx, Patch{Title: &title}) {
		t.Fatalf("expected unchanged title to report false")
	}
	if r.Update(42, VisiblePatch(true)) {
		t.Fatalf("expected unknown index to report false")
	}
	if *n != 0 {
		t.Fatalf("expected no notifications, got %d", *n)
	}
	if !r.Update(idx, Patch{ClearGeometry: true, Keywords: &[]string{"k"}}) {
		t.Fatalf("expected keyword change to apply")
	}
	item, _ := r.Get(idx)
	if item.Index != idx || len(item.Keywords) != 1 {
		t.Fatalf("unexpected item after update %#v", item)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	r := NewRegistry()
	n := 0
	unsubscribe := r.Subscribe(func() { n++ })
	r.Register(Item{Key: "a"})
	unsubscribe()
	r.Register(Item{Key: "b"})
	if n != 1 {
		t.Fatalf("expected one notification before unsubscribe, got %d", n)
	}
}

func TestResetRestartsAllocator(t *testing.T) {
	r := NewRegistry()
	r.Register(Item{Key: "a"})
	r.Register(Item{Key: "b"})
	r.Reset()
	if r.Len() != 0 || r.NextIndex() != 0 {
		t.Fatalf("expected empty registry, len=%d next=%d", r.Len(), r.NextIndex())
	}
	if idx := r.Register(Item{Key: "a"}); idx != 0 {
		t.Fatalf("expected index 0 after reset, got %d", idx)
	}
}

func TestSnapshotIsolatesCallers(t *testing.T) {
	r := NewRegistry()
	r.Register(Item{Key: "a", Keywords: []string{"x"}})
	snap := r.Snapshot()
	snap[0].Keywords[0] = "mutated"
	item, _ := r.Get(0)
	if item.Keywords[0] != "x" {
		t.Fatalf("expected registry copy untouched, got %q", item.Keywords[0])
	}
}
