package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/makeup-catalog/internal/adapter/render"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
)

// GET / HTML catalog page, query name, brand, type, sort (200 OK, 503 Service unavailable)
// GET v1/products same query, JSON (200 OK, 503 Service unavailable)
// GET v1/options JSON (200 OK, 503 Service unavailable)
// GET v1/searches/top?n=10 JSON (200 OK, 400 Bad request, 404 Not found)
// GET img/unavailable.png

const (
	alertLoadFailed = "Error loading products. Please try again later."
	alertLoading    = "Products are loading, refresh the page in a moment."

	defaultTopN = 10
)

type CatalogHandler struct {
	querier   port.CatalogQuerier
	stats     port.SearchStatsGetter
	projector render.Projector
	html      render.HTML
}

func RegisterCatalog(
	mux *http.ServeMux,
	querier port.CatalogQuerier,
	stats port.SearchStatsGetter,
	projector render.Projector,
	html render.HTML,
) {
	h := CatalogHandler{querier, stats, projector, html}
	mux.HandleFunc("GET /{$}", h.GetPage)
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/options", h.GetOptions)
	mux.HandleFunc("GET /v1/searches/top", h.GetTopSearches)
	mux.Handle("GET /img/", http.FileServerFS(render.Assets()))
}

func (h CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetPage"
	log := slog.With("op", op)

	c, key := criteriaFromQuery(r)

	status := http.StatusOK
	var alert string
	ps, err := h.querier.QueryCatalog(r.Context(), c, key)
	if err != nil {
		status, alert = errorStatus(err), failureMessage(err)
		log.Warn("failed to query catalog", "err", err)
	}

	var opts domain.Options
	if err == nil {
		opts, err = h.querier.CatalogOptions()
		if err != nil {
			log.Warn("failed to get options", "err", err)
		}
	}

	page := render.NewPage(h.projector.Cards(ps), opts, c, key)
	page.Alert = alert

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.html.Render(w, page); err != nil {
		log.Error("failed to render page", "err", err)
	}
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	c, key := criteriaFromQuery(r)
	ps, err := h.querier.QueryCatalog(r.Context(), c, key)
	if err != nil {
		log.Warn("failed to query catalog", "err", err)
		writeError(w, err)
		return
	}

	cards := h.projector.Cards(ps)
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{
			ID:           p.ID,
			Name:         p.Name,
			Brand:        p.Brand,
			ProductType:  p.ProductType,
			Category:     p.Category,
			ImageLink:    p.ImageLink,
			Price:        p.Price,
			Rating:       p.Rating,
			DisplayPrice: cards[i].Price,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h CatalogHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetOptions"

	opts, err := h.querier.CatalogOptions()
	if err != nil {
		slog.Warn("failed to get options", "op", op, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Options{
		Brands: toOptions(opts.Brands),
		Types:  toOptions(opts.Types),
	})
}

func (h CatalogHandler) GetTopSearches(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetTopSearches"

	n := defaultTopN
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{"invalid n"})
			return
		}
		n = parsed
	}

	stats, err := h.stats.TopSearches(r.Context(), n)
	if err != nil {
		slog.Warn("failed to get top searches", "op", op, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchStats(stats))
}

func criteriaFromQuery(r *http.Request) (domain.Criteria, domain.SortKey) {
	q := r.URL.Query()
	c := domain.Criteria{
		Name:  q.Get("name"),
		Brand: q.Get("brand"),
		Type:  q.Get("type"),
	}
	return c, domain.ParseSortKey(q.Get("sort"))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrStatsDisabled):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLoadFailed),
		errors.Is(err, domain.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotLoaded):
		return alertLoading
	case errors.Is(err, domain.ErrStatsDisabled):
		return domain.ErrStatsDisabled.Error()
	case errors.Is(err, domain.ErrLoadFailed):
		return alertLoadFailed
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), ErrorResponse{failureMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
