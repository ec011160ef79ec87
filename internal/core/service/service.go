package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/makeup-catalog/internal/core/catalog"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
)

var _ port.CatalogLoader = (*Service)(nil)
var _ port.CatalogQuerier = (*Service)(nil)
var _ port.SearchStatsGetter = (*Service)(nil)

// DefaultPublishTimeout bounds every broker publish made on behalf of a
// load or a query.
const DefaultPublishTimeout = time.Second

type Opt func(*Service)

func CatalogProducerOpt(p port.CatalogProducer) Opt {
	return func(s *Service) { s.catalogProducer = p }
}

func SearchEventProducerOpt(p port.SearchEventProducer) Opt {
	return func(s *Service) { s.searchProducer = p }
}

func SearchStatsOpt(
	proc port.SearchStatsProcessor, reader port.SearchStatsReader,
) Opt {
	return func(s *Service) {
		s.statsProc = proc
		s.statsReader = reader
	}
}

// PublishTimeoutOpt overrides [DefaultPublishTimeout]; d <= 0 keeps it.
func PublishTimeoutOpt(d time.Duration) Opt {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// FoldNameOpt makes name filtering case-insensitive.
func FoldNameOpt(fold bool) Opt {
	return func(s *Service) { s.foldName = fold }
}

type Service struct {
	fetcher         port.ProductsFetcher
	catalog         *catalog.Catalog
	sorter          catalog.Sorter
	foldName        bool
	catalogProducer port.CatalogProducer
	searchProducer  port.SearchEventProducer
	statsProc       port.SearchStatsProcessor
	statsReader     port.SearchStatsReader
	publishTimeout  time.Duration

	mu      sync.RWMutex
	loaded  bool
	loadErr error
	now     func() time.Time
}

func New(
	fetcher port.ProductsFetcher,
	c *catalog.Catalog,
	sorter catalog.Sorter,
	opts ...Opt,
) *Service {
	s := &Service{
		fetcher:        fetcher,
		catalog:        c,
		sorter:         sorter,
		publishTimeout: DefaultPublishTimeout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run runs the search stats processor when configured.
//
// Blocks current goroutine while the processor is preparing to ready state.
func (s *Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	if s.statsProc == nil {
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go s.statsProc.Run(ctx, stopFn, &wg)
	wg.Wait()
}

func (s *Service) Close() {
	if s.statsProc != nil {
		s.statsProc.Close()
	}
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) Sorter() catalog.Sorter {
	return s.sorter
}

func (s *Service) FoldName() bool {
	return s.foldName
}

// LoadCatalog fetches the products once and stores them ordered by rating.
// A failed fetch is final: the catalog stays empty and every later query
// reports domain.ErrLoadFailed.
func (s *Service) LoadCatalog(ctx context.Context) error {
	const op = "Service.LoadCatalog"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		s.setLoadResult(err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrLoadFailed, err)
	}

	ps = s.sorter.Sort(ps, domain.SortRating)
	s.catalog.Load(ps)
	s.setLoadResult(nil)
	log.Info("catalog loaded", "nProducts", len(ps))

	if s.catalogProducer != nil {
		pubCtx, cancel := s.publishContext(ctx)
		defer cancel()
		if err := s.catalogProducer.ProduceCatalog(pubCtx, ps); err != nil {
			log.Error("failed to publish catalog snapshot", "err", err)
		}
	}

	return nil
}

func (s *Service) QueryCatalog(
	ctx context.Context, c domain.Criteria, key domain.SortKey,
) ([]domain.Product, error) {
	const op = "Service.QueryCatalog"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.FoldName = s.foldName
	key = domain.ParseSortKey(string(key))
	ps := s.sorter.Sort(catalog.Filter(s.catalog.All(), c), key)

	s.recordSearch(ctx, c, key, len(ps))
	return ps, nil
}

func (s *Service) CatalogOptions() (domain.Options, error) {
	const op = "Service.CatalogOptions"

	if err := s.ready(); err != nil {
		return domain.Options{}, fmt.Errorf("%s: %w", op, err)
	}
	return catalog.OptionsOf(s.catalog.All()), nil
}

func (s *Service) TopSearches(
	ctx context.Context, n int,
) ([]domain.SearchStat, error) {
	const op = "Service.TopSearches"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.statsReader == nil {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrStatsDisabled)
	}

	stats, err := s.statsReader.TopSearches(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// LoadErr returns the fetch failure, if any.
func (s *Service) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrLoadFailed, s.loadErr)
	}
	if !s.loaded {
		return domain.ErrNotLoaded
	}
	return nil
}

func (s *Service) setLoadResult(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = err == nil
	s.loadErr = err
}

func (s *Service) recordSearch(
	ctx context.Context, c domain.Criteria, key domain.SortKey, n int,
) {
	const op = "Service.recordSearch"

	if s.searchProducer == nil || c.IsZero() {
		return
	}

	evt := domain.SearchEvent{
		Criteria: c,
		Sort:     key,
		Results:  n,
		At:       s.now(),
	}
	pubCtx, cancel := s.publishContext(ctx)
	defer cancel()
	if err := s.searchProducer.ProduceSearchEvent(pubCtx, evt); err != nil {
		slog.Error("failed to record search", "op", op, "err", err)
	}
}

// publishContext keeps the caller's values and cancellation but never lets
// a publish outlive publishTimeout.
func (s *Service) publishContext(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.publishTimeout)
}
