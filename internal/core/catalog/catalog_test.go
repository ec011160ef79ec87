package catalog

import (
	"testing"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func ptr(v float64) *float64 { return &v }

func nyxCatalog() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Matte Lipstick", Brand: "Nyx",
			ProductType: "lipstick", Price: ptr(10), Rating: ptr(4),
		},
		{
			ID: "2", Name: "Gloss", Brand: "Nyx",
			ProductType: "lip_liner", Price: ptr(5), Rating: ptr(5),
		},
	}
}

func mixedCatalog() []domain.Product {
	return []domain.Product{
		{ID: "a", Name: "Blush Rose", Brand: "Maybelline", ProductType: "blush", Price: ptr(7.5), Rating: ptr(3)},
		{ID: "b", Name: "Eyeliner Pro", Brand: "covergirl", ProductType: "eyeliner", Price: ptr(12)},
		{ID: "c", Name: "Lip Gloss", Brand: "NYX", ProductType: "lipstick", Rating: ptr(4.5)},
		{ID: "d", Name: "Mascara", ProductType: "mascara", Price: ptr(7.5), Rating: ptr(3)},
		{ID: "e", Name: "", Brand: "nyx", ProductType: "Lipstick", Price: ptr(1)},
		{ID: "f", Name: "Ébano Liner", Brand: "Maybelline", ProductType: "eyeliner", Price: ptr(9), Rating: ptr(5)},
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestCatalog(t *testing.T) {
	t.Run("LoadResetsActive", func(t *testing.T) {
		c := New()
		assert.Empty(t, c.All())
		assert.Empty(t, c.Active())

		c.Load(nyxCatalog())
		c.SetActive(c.All()[:1])
		require.Len(t, c.Active(), 1)

		c.Load(mixedCatalog())
		assert.Equal(t, 6, c.Len())
		assert.Equal(t, ids(c.All()), ids(c.Active()))
	})

	t.Run("ReturnsCopies", func(t *testing.T) {
		c := New()
		c.Load(nyxCatalog())

		all := c.All()
		all[0].Name = "changed"
		assert.Equal(t, "Matte Lipstick", c.All()[0].Name)
	})
}

func TestFilter(t *testing.T) {
	t.Run("NyxScenario", func(t *testing.T) {
		ps := nyxCatalog()

		byBrand := Filter(ps, domain.Criteria{Brand: "nyx"})
		assert.Equal(t, []string{"1", "2"}, ids(byBrand))

		byName := Filter(ps, domain.Criteria{Name: "Gloss"})
		assert.Equal(t, []string{"2"}, ids(byName))
	})

	t.Run("NameIsCaseSensitive", func(t *testing.T) {
		ps := nyxCatalog()
		assert.Empty(t, Filter(ps, domain.Criteria{Name: "gloss"}))

		folded := Filter(ps, domain.Criteria{Name: "gloss", FoldName: true})
		assert.Equal(t, []string{"2"}, ids(folded))
	})

	t.Run("NoCriteriaReturnsAll", func(t *testing.T) {
		ps := mixedCatalog()
		assert.Equal(t, ids(ps), ids(Filter(ps, domain.Criteria{})))
	})

	t.Run("Conjunctive", func(t *testing.T) {
		ps := mixedCatalog()
		cases := []domain.Criteria{
			{Brand: "nyx"},
			{Type: "lipstick"},
			{Brand: "nyx", Type: "lipstick"},
			{Brand: "maybelline", Type: "eyeliner"},
			{Name: "Liner", Type: "eyeliner"},
			{Name: "Lip", Brand: "nyx", Type: "lipstick"},
			{Brand: "unknown"},
		}
		for _, c := range cases {
			got := Filter(ps, c)
			for _, p := range got {
				assert.Contains(t, ps, p)
				if c.Name != "" {
					assert.Contains(t, p.Name, c.Name)
				}
				if c.Brand != "" {
					assert.Equal(t, c.Brand, NormalizeKey(p.Brand))
				}
				if c.Type != "" {
					assert.Equal(t, c.Type, NormalizeKey(p.ProductType))
				}
			}
			assert.Equal(t, ids(got), ids(Filter(got, c)), "idempotent for %+v", c)
		}
	})

	t.Run("BrandAndTypeFoldCase", func(t *testing.T) {
		got := Filter(mixedCatalog(), domain.Criteria{Brand: "NYX", Type: "LIPSTICK"})
		assert.Equal(t, []string{"c", "e"}, ids(got))
	})

	t.Run("MissingBrandNeverMatchesBrandFilter", func(t *testing.T) {
		got := Filter(mixedCatalog(), domain.Criteria{Type: "mascara", Brand: "nyx"})
		assert.Empty(t, got)
	})
}

func TestSorter(t *testing.T) {
	s := NewSorter(language.BrazilianPortuguese)

	t.Run("NyxPriceAsc", func(t *testing.T) {
		got := s.Sort(nyxCatalog(), domain.SortPriceAsc)
		assert.Equal(t, []string{"2", "1"}, ids(got))
	})

	t.Run("RatingNonIncreasing", func(t *testing.T) {
		got := s.Sort(mixedCatalog(), domain.SortRating)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t,
				got[i-1].EffectiveRating(), got[i].EffectiveRating())
		}
	})

	t.Run("StableOnEqualKeys", func(t *testing.T) {
		got := s.Sort(mixedCatalog(), domain.SortPriceAsc)
		assert.Equal(t, []string{"c", "e", "a", "d", "f", "b"}, ids(got))

		got = s.Sort(mixedCatalog(), domain.SortPriceDesc)
		assert.Equal(t, []string{"b", "f", "a", "d", "e", "c"}, ids(got))

		got = s.Sort(mixedCatalog(), domain.SortRating)
		assert.Equal(t, []string{"f", "c", "a", "d", "b", "e"}, ids(got))
	})

	t.Run("NameUsesCollation", func(t *testing.T) {
		got := s.Sort(mixedCatalog(), domain.SortNameAsc)
		assert.Equal(t, []string{"e", "a", "f", "b", "c", "d"}, ids(got))
	})

	t.Run("NameDescIgnoresPriorOrder", func(t *testing.T) {
		ps := mixedCatalog()
		direct := s.Sort(ps, domain.SortNameDesc)
		chained := s.Sort(s.Sort(ps, domain.SortNameAsc), domain.SortNameDesc)
		assert.Equal(t, ids(direct), ids(chained))
	})

	t.Run("UnknownKeyFallsBackToRating", func(t *testing.T) {
		ps := mixedCatalog()
		assert.Equal(t,
			ids(s.Sort(ps, domain.SortRating)),
			ids(s.Sort(ps, domain.SortKey("Popularity"))),
		)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		ps := mixedCatalog()
		before := ids(ps)
		_ = s.Sort(ps, domain.SortNameDesc)
		assert.Equal(t, before, ids(ps))
	})
}

func TestOptionsOf(t *testing.T) {
	opts := OptionsOf(mixedCatalog())

	assert.Equal(t, []domain.Option{
		{Label: "covergirl", Value: "covergirl"},
		{Label: "Maybelline", Value: "maybelline"},
		{Label: "NYX", Value: "nyx"},
	}, opts.Brands)

	assert.Equal(t, []domain.Option{
		{Label: "blush", Value: "blush"},
		{Label: "eyeliner", Value: "eyeliner"},
		{Label: "lipstick", Value: "lipstick"},
		{Label: "mascara", Value: "mascara"},
	}, opts.Types)
}
