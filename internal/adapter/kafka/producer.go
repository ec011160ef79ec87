package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
	"github.com/niksmo/makeup-catalog/pkg/retry"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CatalogProducer = (*CatalogProducer)(nil)
var _ port.SearchEventProducer = (*SearchEventProducer)(nil)

var produceRetry = retry.RetryConfig{
	MaxAttempts: 3,
	Backoff:     retry.ExponentialBackoff(50 * time.Millisecond),
	ShouldRetry: kerr.IsRetriable,
}

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func newProducer(opPrefix string, opts []ProducerOpt) (producer, Encoder, error) {
	const op = "newProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, opPrefix, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return producer{}, nil, opErr(err, opPrefix, op)
		}
	}

	return producer{opPrefix: opPrefix, cl: options.cl}, options.encoder, nil
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

// produce retries the whole batch while the broker reports retriable errors.
func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	err := retry.Do(ctx, produceRetry, func() error {
		return p.cl.ProduceSync(ctx, rs...).FirstErr()
	})
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CatalogProducer publishes the loaded catalog as a snapshot,
// one record per product keyed by product ID.
type CatalogProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCatalogProducer(opts ...ProducerOpt) (CatalogProducer, error) {
	const opPrefix = "CatalogProducer"

	p, enc, err := newProducer(opPrefix, opts)
	if err != nil {
		return CatalogProducer{}, err
	}
	return CatalogProducer{producer: p, encoder: enc, opPrefix: opPrefix}, nil
}

func (p CatalogProducer) Close() {
	p.producer.close()
}

func (p CatalogProducer) ProduceCatalog(
	ctx context.Context, vs []domain.Product,
) error {
	const op = "ProduceCatalog"
	log := slog.With("op", makeOp(p.opPrefix, op))

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if len(vs) == 0 {
		return nil
	}

	rs, err := p.createRecords(vs)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, rs...); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	log.Info("catalog snapshot published", "nProducts", len(rs))
	return nil
}

func (p CatalogProducer) createRecords(
	vs []domain.Product,
) ([]*kgo.Record, error) {
	const op = "createRecords"

	rs := make([]*kgo.Record, 0, len(vs))
	for _, v := range vs {
		s := catalogProductToSchemaV1(v)
		b, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		rs = append(rs, &kgo.Record{Key: []byte(s.ID), Value: b})
	}
	return rs, nil
}

// A SearchEventProducer publishes one record per user search, keyed by the
// canonical criteria key so equal searches share a partition.
type SearchEventProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewSearchEventProducer(opts ...ProducerOpt) (SearchEventProducer, error) {
	const opPrefix = "SearchEventProducer"

	p, enc, err := newProducer(opPrefix, opts)
	if err != nil {
		return SearchEventProducer{}, err
	}
	return SearchEventProducer{producer: p, encoder: enc, opPrefix: opPrefix}, nil
}

func (p SearchEventProducer) Close() {
	p.producer.close()
}

func (p SearchEventProducer) ProduceSearchEvent(
	ctx context.Context, evt domain.SearchEvent,
) error {
	const op = "ProduceSearchEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	s := searchEventToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Key: []byte(searchEventKey(s)), Value: b}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}
