package state

import "math"

// PaginationConfig tunes how close to the tail of the visible set a
// load-more request fires.
type PaginationConfig struct {
	Ratio        float64
	MinThreshold int
	MaxThreshold int
}

// DefaultPaginationConfig returns the stock ratio of 0.2 clamped to [1, 5].
func DefaultPaginationConfig() PaginationConfig {
	return PaginationConfig{Ratio: 0.2, MinThreshold: 1, MaxThreshold: 5}
}

func (c PaginationConfig) normalized() PaginationConfig {
	def := DefaultPaginationConfig()
	if c.Ratio <= 0 {
		c.Ratio = def.Ratio
	}
	if c.MinThreshold < 1 {
		c.MinThreshold = def.MinThreshold
	}
	if c.MaxThreshold < c.MinThreshold {
		c.MaxThreshold = c.MinThreshold
	}
	return c
}

// Threshold returns clamp(round(total*Ratio), MinThreshold, MaxThreshold).
func (c PaginationConfig) Threshold(total int) int {
	c = c.normalized()
	if total <= 0 {
		return c.MinThreshold
	}
	t := int(math.Round(float64(total) * c.Ratio))
	if t < c.MinThreshold {
		return c.MinThreshold
	}
	if t > c.MaxThreshold {
		return c.MaxThreshold
	}
	return t
}

// Pagination is the one-shot load-more latch for a collection.
type Pagination struct {
	Config           PaginationConfig
	HasMore          bool
	Triggered        bool
	LastVisibleCount int
}

// Observe records the selection position within the visible set and reports
// whether a load-more request should be issued. The latch re-arms whenever the
// visible count changes.
func (p *Pagination) Observe(visiblePos, totalVisible int) bool {
	if totalVisible != p.LastVisibleCount {
		p.LastVisibleCount = totalVisible
		p.Triggered = false
	}
	if !p.HasMore || p.Triggered || totalVisible <= 0 {
		return false
	}
	if totalVisible-visiblePos > p.Config.Threshold(totalVisible) {
		return false
	}
	p.Triggered = true
	return true
}

// SetHasMore updates whether the data source has more items.
func (p *Pagination) SetHasMore(hasMore bool) {
	p.HasMore = hasMore
	if !hasMore {
		p.Triggered = false
	}
}
