package domain

import (
	"strings"
	"time"
)

type Product struct {
	ID          string
	Name        string
	Brand       string
	ProductType string
	Category    string
	ImageLink   string
	Price       *float64
	Rating      *float64
}

// EffectivePrice returns the price, or 0 when the product has none.
func (p Product) EffectivePrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// EffectiveRating returns the rating, or 0 when the product has none.
func (p Product) EffectiveRating() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Criteria narrows a catalog. Empty fields are not applied.
type Criteria struct {
	Name     string
	Brand    string
	Type     string
	FoldName bool
}

func (c Criteria) IsZero() bool {
	return c.Name == "" && c.Brand == "" && c.Type == ""
}

// Key is the canonical representation used to group equal searches.
func (c Criteria) Key() string {
	name := c.Name
	if c.FoldName {
		name = strings.ToLower(name)
	}
	return "name=" + name +
		";brand=" + strings.ToLower(c.Brand) +
		";type=" + strings.ToLower(c.Type)
}

type SortKey string

const (
	SortRating    SortKey = "Rating"
	SortPriceAsc  SortKey = "PriceAsc"
	SortPriceDesc SortKey = "PriceDesc"
	SortNameAsc   SortKey = "NameAsc"
	SortNameDesc  SortKey = "NameDesc"
)

// SortKeys lists the keys in the order they are offered to the user.
var SortKeys = []SortKey{
	SortRating, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc,
}

// ParseSortKey falls back to SortRating for anything unrecognized.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortRating
}

func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Lowest price"
	case SortPriceDesc:
		return "Highest price"
	case SortNameAsc:
		return "Name A-Z"
	case SortNameDesc:
		return "Name Z-A"
	default:
		return "Best rated"
	}
}

type Option struct {
	Label string
	Value string
}

type Options struct {
	Brands []Option
	Types  []Option
}

type SearchEvent struct {
	Criteria Criteria
	Sort     SortKey
	Results  int
	At       time.Time
}

type SearchStat struct {
	Key   string
	Count int64
}
