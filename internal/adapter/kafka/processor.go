package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/makeup-catalog/internal/core/port"
	"github.com/niksmo/makeup-catalog/pkg/schema"
)

var _ port.SearchStatsProcessor = (*SearchStatsProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "runProc"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A searchEventCodec used for serde [schema.SearchEventV1]
type searchEventCodec struct {
	serde Serde
}

func newSearchEventCodec(s Serde) searchEventCodec {
	return searchEventCodec{s}
}

func (c searchEventCodec) Encode(v any) ([]byte, error) {
	const op = "searchEventCodec.Encode"
	if _, ok := v.(schema.SearchEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c searchEventCodec) Decode(data []byte) (any, error) {
	const op = "searchEventCodec.Decode"
	var s schema.SearchEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A searchCount is the number of times a search key was seen.
type searchCount int64

// A searchCountCodec used for serde [searchCount]
type searchCountCodec struct{}

func (searchCountCodec) Encode(v any) ([]byte, error) {
	const op = "searchCountCodec.Encode"
	c, ok := v.(searchCount)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt(nil, int64(c), 10), nil
}

func (searchCountCodec) Decode(data []byte) (any, error) {
	const op = "searchCountCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return searchCount(n), nil
}

// nextCount increments the stored count; a missing or foreign value
// counts as zero.
func nextCount(stored any) searchCount {
	c, _ := stored.(searchCount)
	return c + 1
}

// A SearchStatsProcessor counts search events per criteria key
// from the input stream into its group table.
type SearchStatsProcessor struct {
	opPrefix string
	proc     processor
}

func NewSearchStatsProc(
	seedBrokers []string,
	inputStream string,
	group string,
	searchEventSerde Serde,
) (*SearchStatsProcessor, error) {
	const op = "NewSearchStatsProc"

	p := SearchStatsProcessor{opPrefix: "SearchStatsProcessor"}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newSearchEventCodec(searchEventSerde),
			p.processFn,
		),
		goka.Persist(searchCountCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *SearchStatsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *SearchStatsProcessor) Close() {
	p.proc.close()
}

func (p *SearchStatsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	evt, _ := msg.(schema.SearchEventV1)
	n := nextCount(ctx.Value())
	ctx.SetValue(n)

	slog.Debug("search counted",
		"op", makeOp(p.opPrefix, op),
		"key", ctx.Key(),
		"sort", evt.Sort,
		"count", int64(n),
	)
}
