package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// recordDeliveryTimeout fails a buffered record that could not be
// delivered in time instead of holding it until the context ends.
const recordDeliveryTimeout = 2 * time.Second

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
			kgo.RecordDeliveryTimeout(recordDeliveryTimeout),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already built client, e.g. in tests.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func catalogProductToSchemaV1(v domain.Product) (s schema.CatalogProductV1) {
	s.ID = v.ID
	s.Name = v.Name
	s.Brand = v.Brand
	s.ProductType = v.ProductType
	s.Category = v.Category
	s.ImageLink = v.ImageLink
	s.Price = v.Price
	s.Rating = v.Rating
	return
}

func searchEventToSchemaV1(v domain.SearchEvent) (s schema.SearchEventV1) {
	s.Name = v.Criteria.Name
	s.Brand = v.Criteria.Brand
	s.ProductType = v.Criteria.Type
	s.FoldName = v.Criteria.FoldName
	s.Sort = string(v.Sort)
	s.Results = v.Results
	s.At = v.At
	return
}

func searchEventKey(s schema.SearchEventV1) string {
	return domain.Criteria{
		Name:     s.Name,
		Brand:    s.Brand,
		Type:     s.ProductType,
		FoldName: s.FoldName,
	}.Key()
}
