package catalog

import (
	"cmp"
	"slices"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A Sorter orders products by a [domain.SortKey].
//
// Names are compared with the collation rules of the configured language.
type Sorter struct {
	tag language.Tag
}

func NewSorter(tag language.Tag) Sorter {
	return Sorter{tag}
}

// Sort returns a new stably ordered slice; ps is left untouched.
// Unknown keys order by rating.
func (s Sorter) Sort(ps []domain.Product, key domain.SortKey) []domain.Product {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, s.compareFn(key))
	return out
}

func (s Sorter) compareFn(key domain.SortKey) func(a, b domain.Product) int {
	switch key {
	case domain.SortPriceAsc:
		return byPrice
	case domain.SortPriceDesc:
		return reverse(byPrice)
	case domain.SortNameAsc:
		return s.byName()
	case domain.SortNameDesc:
		return reverse(s.byName())
	default:
		return reverse(byRating)
	}
}

func byPrice(a, b domain.Product) int {
	return cmp.Compare(a.EffectivePrice(), b.EffectivePrice())
}

func byRating(a, b domain.Product) int {
	return cmp.Compare(a.EffectiveRating(), b.EffectiveRating())
}

// byName builds a collator per sort run, collators keep internal buffers.
func (s Sorter) byName() func(a, b domain.Product) int {
	c := collate.New(s.tag)
	return func(a, b domain.Product) int {
		return c.CompareString(a.Name, b.Name)
	}
}

func reverse(fn func(a, b domain.Product) int) func(a, b domain.Product) int {
	return func(a, b domain.Product) int {
		return fn(b, a)
	}
}
