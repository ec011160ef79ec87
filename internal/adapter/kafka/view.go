package kafka

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/lovoo/goka"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
)

var _ port.SearchStatsReader = (*SearchStatsView)(nil)

// A SearchStatsView reads the group table of [SearchStatsProcessor].
type SearchStatsView struct {
	gv *goka.View
}

func NewSearchStatsView(
	seedBrokers []string, group string,
) (*SearchStatsView, error) {
	const op = "NewSearchStatsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		searchCountCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &SearchStatsView{gv}, nil
}

func (v *SearchStatsView) Run(ctx context.Context) {
	const op = "SearchStatsView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// TopSearches returns at most n entries ordered by count, most frequent first.
func (v *SearchStatsView) TopSearches(n int) ([]domain.SearchStat, error) {
	const op = "SearchStatsView.TopSearches"

	it, err := v.gv.Iterator()
	if err != nil {
		return nil, opErr(err, op)
	}
	defer it.Release()

	var stats []domain.SearchStat
	for it.Next() {
		val, err := it.Value()
		if err != nil {
			return nil, opErr(err, op)
		}
		c, ok := val.(searchCount)
		if !ok {
			continue
		}
		stats = append(stats, domain.SearchStat{Key: it.Key(), Count: int64(c)})
	}
	if err := it.Err(); err != nil {
		return nil, opErr(err, op)
	}

	return topN(stats, n), nil
}

func topN(stats []domain.SearchStat, n int) []domain.SearchStat {
	slices.SortStableFunc(stats, func(a, b domain.SearchStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
