package render

import (
	"strconv"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

// Blank is shown for absent detail values.
const Blank = "\u00a0"

const DefaultFallbackImage = "/img/unavailable.png"

type Detail struct {
	Label string
	Value string
}

// A Card is the display projection of one product.
type Card struct {
	ID            string
	Name          string
	Brand         string
	ShowBrand     bool
	ImageURL      string
	FallbackImage string
	Price         string
	Details       []Detail
}

type Projector struct {
	price         PriceFormatter
	fallbackImage string
}

func NewProjector(price PriceFormatter, fallbackImage string) Projector {
	if fallbackImage == "" {
		fallbackImage = DefaultFallbackImage
	}
	return Projector{price, fallbackImage}
}

// Cards keeps the order of ps.
func (pr Projector) Cards(ps []domain.Product) []Card {
	cards := make([]Card, len(ps))
	for i, p := range ps {
		cards[i] = pr.Card(p)
	}
	return cards
}

func (pr Projector) Card(p domain.Product) Card {
	img := p.ImageLink
	if img == "" {
		img = pr.fallbackImage
	}

	return Card{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		ShowBrand:     p.Brand != "",
		ImageURL:      img,
		FallbackImage: pr.fallbackImage,
		Price:         pr.price.Format(p.EffectivePrice()),
		Details: []Detail{
			{"Brand", orBlank(p.Brand)},
			{"Price", numberOrBlank(p.Price)},
			{"Rating", numberOrBlank(p.Rating)},
			{"Category", orBlank(p.Category)},
			{"Product Type", orBlank(p.ProductType)},
		},
	}
}

func orBlank(s string) string {
	if s == "" {
		return Blank
	}
	return s
}

func numberOrBlank(v *float64) string {
	if v == nil {
		return Blank
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
