package port

import (
	"context"
	"sync"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound

type CatalogLoader interface {
	LoadCatalog(context.Context) error
}

type CatalogQuerier interface {
	QueryCatalog(
		context.Context, domain.Criteria, domain.SortKey,
	) ([]domain.Product, error)
	CatalogOptions() (domain.Options, error)
}

type SearchStatsGetter interface {
	TopSearches(ctx context.Context, n int) ([]domain.SearchStat, error)
}

// Outbound

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type CatalogProducer interface {
	ProduceCatalog(context.Context, []domain.Product) error
}

type SearchEventProducer interface {
	ProduceSearchEvent(context.Context, domain.SearchEvent) error
}

type SearchStatsReader interface {
	TopSearches(n int) ([]domain.SearchStat, error)
}

type SearchStatsProcessor interface {
	runnerContextWg
	closer
}
