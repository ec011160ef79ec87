// Package controls keeps the user's current filter and sort selection and
// derives the active catalog view from it.
package controls

import (
	"github.com/niksmo/makeup-catalog/internal/core/catalog"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

// Controls is driven from a single UI loop and is not safe for concurrent use.
type Controls struct {
	catalog  *catalog.Catalog
	sorter   catalog.Sorter
	criteria domain.Criteria
	sortKey  domain.SortKey
	lastName string
	evals    int
}

func New(c *catalog.Catalog, s catalog.Sorter, foldName bool) *Controls {
	return &Controls{
		catalog:  c,
		sorter:   s,
		criteria: domain.Criteria{FoldName: foldName},
		sortKey:  domain.SortRating,
	}
}

func (c *Controls) Criteria() domain.Criteria { return c.criteria }

func (c *Controls) SortKey() domain.SortKey { return c.sortKey }

// Evaluations counts how many times the filter has run.
func (c *Controls) Evaluations() int { return c.evals }

func (c *Controls) Active() []domain.Product {
	return c.catalog.Active()
}

func (c *Controls) Options() domain.Options {
	return catalog.OptionsOf(c.catalog.All())
}

// CommitName applies a settled name input. It reports false and leaves the
// view alone when text equals the last evaluated value.
func (c *Controls) CommitName(text string) bool {
	if text == c.lastName {
		return false
	}
	c.lastName = text
	c.criteria.Name = text
	c.apply()
	return true
}

func (c *Controls) SetBrand(brand string) {
	c.criteria.Brand = brand
	c.apply()
}

func (c *Controls) SetType(productType string) {
	c.criteria.Type = productType
	c.apply()
}

// SetSort reorders the active view only; the filter is not re-run.
func (c *Controls) SetSort(key domain.SortKey) {
	c.sortKey = domain.ParseSortKey(string(key))
	c.catalog.SetActive(c.sorter.Sort(c.catalog.Active(), c.sortKey))
}

// Reset re-derives the view after the catalog has been (re)loaded.
func (c *Controls) Reset() {
	c.apply()
}

func (c *Controls) apply() {
	c.evals++
	filtered := catalog.Filter(c.catalog.All(), c.criteria)
	c.catalog.SetActive(c.sorter.Sort(filtered, c.sortKey))
}
