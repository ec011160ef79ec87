package catalog

import (
	"slices"
	"strings"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

// OptionsOf collects the distinct brands and product types of ps.
func OptionsOf(ps []domain.Product) domain.Options {
	return domain.Options{
		Brands: distinct(ps, func(p domain.Product) string { return p.Brand }),
		Types:  distinct(ps, func(p domain.Product) string { return p.ProductType }),
	}
}

// distinct deduplicates case-insensitively, drops empty values and keeps
// the first spelling seen as the label.
func distinct(
	ps []domain.Product, field func(domain.Product) string,
) []domain.Option {
	seen := make(map[string]struct{})
	var out []domain.Option
	for _, p := range ps {
		label := strings.TrimSpace(field(p))
		key := NormalizeKey(label)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, domain.Option{Label: label, Value: key})
	}

	slices.SortFunc(out, func(a, b domain.Option) int {
		return strings.Compare(a.Value, b.Value)
	})
	return out
}
