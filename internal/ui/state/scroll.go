package state

// Viewport describes the scroll container an item is centred in.
type Viewport struct {
	ContentOffset int
	Height        int
}

// Scroller is implemented by the rendering layer's scroll container.
type Scroller interface {
	ContentOffset() int
	ViewportHeight() int
	ScrollTo(offset int)
}

// PlanScroll returns the offset that centres an item with geometry g in vp.
// It reports false when the item has not been laid out yet.
func PlanScroll(g *Geometry, vp Viewport) (int, bool) {
	if g == nil {
		return 0, false
	}
	relative := g.Offset - vp.ContentOffset
	target := relative - vp.Height/2
	if target < 0 {
		target = 0
	}
	return target, true
}
