package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/popup-picker/internal/catalog"
)

// Source provides the catalog a Pager reads from.
type Source interface {
	Catalog() *catalog.Catalog
}

// PageRequest names one page of a catalog level.
type PageRequest struct {
	Path   []string
	Offset int
	Limit  int
}

// Pager serves catalog levels one page at a time. Successive fetches are
// spaced at least delay apart, which lets the picker behave like it is
// talking to a slow remote listing.
type Pager struct {
	source   Source
	throttle *throttle
}

// NewPager returns a pager reading from source.
func NewPager(source Source, delay time.Duration) *Pager {
	return &Pager{source: source, throttle: newThrottle(delay)}
}

// Fetch returns the requested page. It blocks until the delay since the
// previous fetch has passed or ctx ends.
func (p *Pager) Fetch(ctx context.Context, req PageRequest) (catalog.Page, error) {
	if p == nil || p.source == nil {
		return catalog.Page{}, fmt.Errorf("backend: pager has no source")
	}
	c := p.source.Catalog()
	if c == nil {
		return catalog.Page{}, fmt.Errorf("backend: catalog not loaded")
	}
	if err := p.throttle.wait(ctx); err != nil {
		return catalog.Page{}, fmt.Errorf("backend: page %v@%d: %w", req.Path, req.Offset, err)
	}
	page, err := c.Page(req.Path, req.Offset, req.Limit)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("backend: page %v@%d: %w", req.Path, req.Offset, err)
	}
	return page, nil
}
