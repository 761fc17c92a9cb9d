package state

import (
	"sync"

	"github.com/atomicstack/popup-picker/internal/catalog"
)

type CatalogStore interface {
	Catalog() *catalog.Catalog
	SetCatalog(*catalog.Catalog)
	Err() error
	SetErr(error)
	Version() int
}

type catalogStore struct {
	mu      sync.RWMutex
	current *catalog.Catalog
	err     error
	version int
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (c *catalogStore) Catalog() *catalog.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetCatalog replaces the current catalog and clears any load error.
func (c *catalogStore) SetCatalog(doc *catalog.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = doc
	c.err = nil
	c.version++
}

func (c *catalogStore) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// SetErr records a failed reload. The last good catalog is kept.
func (c *catalogStore) SetErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *catalogStore) Version() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
