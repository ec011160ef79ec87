package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (m *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (m *MockProducerClient) Close() {
	m.Called()
}

type MockSerde struct {
	mock.Mock
}

func (m *MockSerde) Encode(v any) ([]byte, error) {
	args := m.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockSerde) Decode(data []byte, v any) error {
	return m.Called(data, v).Error(0)
}

func ptr(v float64) *float64 { return &v }

func TestCatalogProducer(t *testing.T) {
	t.Run("OneRecordPerProduct", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockSerde)

		enc.On("Encode", mock.AnythingOfType("schema.CatalogProductV1")).
			Return([]byte("encoded"), nil)

		cl.On("ProduceSync", mock.Anything, mock.MatchedBy(
			func(rs []*kgo.Record) bool {
				return len(rs) == 2 &&
					string(rs[0].Key) == "1" && string(rs[1].Key) == "2"
			},
		)).Return(kgo.ProduceResults{{}, {}}).Once()
		cl.On("Close").Return()

		p, err := NewCatalogProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)

		err = p.ProduceCatalog(t.Context(), []domain.Product{
			{ID: "1", Name: "Gloss", Price: ptr(5)},
			{ID: "2", Name: "Matte"},
		})
		require.NoError(t, err)

		p.Close()
		cl.AssertExpectations(t)
		enc.AssertNumberOfCalls(t, "Encode", 2)
	})

	t.Run("EmptyCatalogIsNoop", func(t *testing.T) {
		cl := new(MockProducerClient)
		p, err := NewCatalogProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(new(MockSerde)),
		)
		require.NoError(t, err)
		require.NoError(t, p.ProduceCatalog(t.Context(), nil))
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("EncodeError", func(t *testing.T) {
		enc := new(MockSerde)
		enc.On("Encode", mock.Anything).Return(nil, errors.New("bad value"))

		p, err := NewCatalogProducer(
			ProducerWithClientOpt(new(MockProducerClient)), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)
		assert.Error(t, p.ProduceCatalog(t.Context(), []domain.Product{{ID: "1"}}))
	})

	t.Run("RetriesRetriableErrors", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockSerde)
		enc.On("Encode", mock.Anything).Return([]byte("v"), nil)

		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: kerr.NotLeaderForPartition}}).Once()
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{}}).Once()

		p, err := NewCatalogProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)
		require.NoError(t, p.ProduceCatalog(t.Context(), []domain.Product{{ID: "1"}}))
		cl.AssertNumberOfCalls(t, "ProduceSync", 2)
	})

	t.Run("PermanentErrorNotRetried", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockSerde)
		enc.On("Encode", mock.Anything).Return([]byte("v"), nil)

		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: kerr.TopicAuthorizationFailed}})

		p, err := NewCatalogProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)

		err = p.ProduceCatalog(t.Context(), []domain.Product{{ID: "1"}})
		assert.ErrorIs(t, err, kerr.TopicAuthorizationFailed)
		cl.AssertNumberOfCalls(t, "ProduceSync", 1)
	})

	t.Run("MissingOptsPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = NewCatalogProducer(ProducerEncoderOpt(new(MockSerde)))
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := NewCatalogProducer(
			ProducerWithClientOpt(new(MockProducerClient)), ProducerEncoderOpt(nil),
		)
		assert.Error(t, err)
	})
}

func TestSearchEventProducer(t *testing.T) {
	cl := new(MockProducerClient)
	enc := new(MockSerde)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	enc.On("Encode", schema.SearchEventV1{
		Name: "Gloss", Brand: "NYX", Sort: "PriceAsc", Results: 1, At: at,
	}).Return([]byte("v"), nil)

	wantKey := domain.Criteria{Name: "Gloss", Brand: "nyx"}.Key()
	cl.On("ProduceSync", mock.Anything, mock.MatchedBy(
		func(rs []*kgo.Record) bool {
			return len(rs) == 1 && string(rs[0].Key) == wantKey
		},
	)).Return(kgo.ProduceResults{{}})

	p, err := NewSearchEventProducer(
		ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
	)
	require.NoError(t, err)

	err = p.ProduceSearchEvent(t.Context(), domain.SearchEvent{
		Criteria: domain.Criteria{Name: "Gloss", Brand: "NYX"},
		Sort:     domain.SortPriceAsc,
		Results:  1,
		At:       at,
	})
	require.NoError(t, err)
	cl.AssertExpectations(t)
	enc.AssertExpectations(t)
}

func TestSearchCountCodec(t *testing.T) {
	var c searchCountCodec

	b, err := c.Encode(searchCount(41))
	require.NoError(t, err)
	assert.Equal(t, "41", string(b))

	v, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, searchCount(41), v)

	_, err = c.Encode(int64(1))
	assert.ErrorIs(t, err, ErrInvalidValueType)

	_, err = c.Decode([]byte("x"))
	assert.Error(t, err)
}

func TestSearchEventCodec(t *testing.T) {
	serde := new(MockSerde)
	serde.On("Decode", []byte("data"), mock.AnythingOfType("*schema.SearchEventV1")).
		Return(nil)

	c := newSearchEventCodec(serde)

	_, err := c.Encode("not an event")
	assert.ErrorIs(t, err, ErrInvalidValueType)

	v, err := c.Decode([]byte("data"))
	require.NoError(t, err)
	assert.IsType(t, schema.SearchEventV1{}, v)
}

func TestNextCount(t *testing.T) {
	assert.Equal(t, searchCount(1), nextCount(nil))
	assert.Equal(t, searchCount(1), nextCount("garbage"))
	assert.Equal(t, searchCount(6), nextCount(searchCount(5)))
}

func TestTopN(t *testing.T) {
	stats := []domain.SearchStat{
		{Key: "b", Count: 2},
		{Key: "a", Count: 2},
		{Key: "c", Count: 9},
		{Key: "d", Count: 1},
	}

	got := topN(stats, 3)
	assert.Equal(t, []domain.SearchStat{
		{Key: "c", Count: 9},
		{Key: "a", Count: 2},
		{Key: "b", Count: 2},
	}, got)

	assert.Len(t, topN(stats, 0), 4)
}
