// Package makeupapi fetches the product listing from the makeup REST API.
package makeupapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
)

const DefaultURL = "https://makeup-api.herokuapp.com/api/v1/products.json"

var ErrUnexpectedStatus = errors.New("unexpected response status")

var _ port.ProductsFetcher = (*Client)(nil)

type Config struct {
	URL         string
	ProductType string
	Timeout     time.Duration
}

type Client struct {
	httpClient *http.Client
	endpoint   string
}

func New(cfg Config) (Client, error) {
	const op = "makeupapi.New"

	raw := cfg.URL
	if raw == "" {
		raw = DefaultURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.ProductType != "" {
		q := u.Query()
		q.Set("product_type", cfg.ProductType)
		u.RawQuery = q.Encode()
	}

	return Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   u.String(),
	}, nil
}

func (c Client) Endpoint() string {
	return c.endpoint
}

// FetchProducts performs the single catalog request. There is no retry.
func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"
	log := slog.With("op", op)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn("failed to close response body", "err", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%s: %w: %d", op, ErrUnexpectedStatus, res.StatusCode,
		)
	}

	var ps []product
	if err := json.NewDecoder(res.Body).Decode(&ps); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", op, err)
	}

	log.Info("products fetched",
		"nProducts", len(ps), "elapsed", time.Since(start))

	return toDomain(ps), nil
}

func toDomain(ps []product) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, domain.Product{
			ID:          string(p.ID),
			Name:        strings.TrimSpace(deref(p.Name)),
			Brand:       strings.TrimSpace(deref(p.Brand)),
			ProductType: strings.TrimSpace(deref(p.ProductType)),
			Category:    strings.TrimSpace(deref(p.Category)),
			ImageLink:   strings.TrimSpace(deref(p.ImageLink)),
			Price:       p.Price.v,
			Rating:      p.Rating.v,
		})
	}
	return out
}
