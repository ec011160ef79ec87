package catalog

import (
	"strings"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

// Filter returns the products satisfying every non-empty field of c.
//
// The input is never modified; with no criteria set a copy of ps is returned.
func Filter(ps []domain.Product, c domain.Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if match(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func match(p domain.Product, c domain.Criteria) bool {
	return matchName(p.Name, c.Name, c.FoldName) &&
		matchKey(p.Brand, c.Brand) &&
		matchKey(p.ProductType, c.Type)
}

func matchName(name, sub string, fold bool) bool {
	if sub == "" {
		return true
	}
	if fold {
		return strings.Contains(strings.ToLower(name), strings.ToLower(sub))
	}
	return strings.Contains(name, sub)
}

// matchKey compares against the lowercased option value offered to users.
func matchKey(v, want string) bool {
	if want == "" {
		return true
	}
	return NormalizeKey(v) == NormalizeKey(want)
}

func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
