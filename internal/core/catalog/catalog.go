// Package catalog holds the in-memory product set and the pure filter and
// sort operations applied to it.
package catalog

import (
	"slices"
	"sync"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

// A Catalog keeps the full product set of a session and the active view
// derived from it.
type Catalog struct {
	mu     sync.RWMutex
	all    []domain.Product
	active []domain.Product
}

func New() *Catalog {
	return &Catalog{}
}

// Load replaces the full set and resets the active view to it.
func (c *Catalog) Load(ps []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = slices.Clone(ps)
	c.active = slices.Clone(ps)
}

func (c *Catalog) All() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.all)
}

func (c *Catalog) Active() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.active)
}

// SetActive stores a view previously derived from All.
func (c *Catalog) SetActive(ps []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = slices.Clone(ps)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.all)
}
