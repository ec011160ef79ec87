package httphandler

import "github.com/niksmo/makeup-catalog/internal/core/domain"

type (
	Product struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Brand        string   `json:"brand"`
		ProductType  string   `json:"product_type"`
		Category     string   `json:"category"`
		ImageLink    string   `json:"image_link"`
		Price        *float64 `json:"price"`
		Rating       *float64 `json:"rating"`
		DisplayPrice string   `json:"display_price"`
	}

	Option struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	Options struct {
		Brands []Option `json:"brands"`
		Types  []Option `json:"types"`
	}

	SearchStat struct {
		Key   string `json:"key"`
		Count int64  `json:"count"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}
)

func toOptions(opts []domain.Option) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		out[i] = Option{Label: o.Label, Value: o.Value}
	}
	return out
}

func toSearchStats(stats []domain.SearchStat) []SearchStat {
	out := make([]SearchStat, len(stats))
	for i, s := range stats {
		out[i] = SearchStat{Key: s.Key, Count: s.Count}
	}
	return out
}
