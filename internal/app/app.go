package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/makeup-catalog/config"
	"github.com/niksmo/makeup-catalog/internal/adapter/httphandler"
	"github.com/niksmo/makeup-catalog/internal/adapter/kafka"
	"github.com/niksmo/makeup-catalog/internal/adapter/makeupapi"
	"github.com/niksmo/makeup-catalog/internal/adapter/render"
	"github.com/niksmo/makeup-catalog/internal/adapter/tui"
	"github.com/niksmo/makeup-catalog/internal/core/catalog"
	"github.com/niksmo/makeup-catalog/internal/core/controls"
	"github.com/niksmo/makeup-catalog/internal/core/service"
	"github.com/niksmo/makeup-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"golang.org/x/text/language"
)

type serdes struct {
	catalogProduct schema.Serde
	searchEvent    schema.Serde
}

type producers struct {
	catalog kafka.CatalogProducer
	search  kafka.SearchEventProducer
}

type broker struct {
	serdes    serdes
	producers producers
	statsProc *kafka.SearchStatsProcessor
	statsView *kafka.SearchStatsView
}

type Opt func(*App)

// LogOutputOpt redirects the JSON log, e.g. away from a terminal UI.
func LogOutputOpt(w io.Writer) Opt {
	return func(app *App) { app.logOutput = w }
}

type App struct {
	ctx       context.Context
	cfg       config.Config
	logOutput io.Writer

	fetcher   makeupapi.Client
	projector render.Projector
	broker    *broker
	service   *service.Service

	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config, opts ...Opt) *App {
	app := &App{ctx: ctx, cfg: cfg, logOutput: os.Stderr}
	for _, opt := range opts {
		opt(app)
	}

	app.initLogger()
	app.initOutboundAdapters()
	if cfg.Broker.Enabled {
		app.initBroker()
	}
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(app.logOutput, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	fetcher, err := makeupapi.New(makeupapi.Config{
		URL:         app.cfg.Source.URL,
		ProductType: app.cfg.Source.ProductType,
		Timeout:     app.cfg.Source.Timeout,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	price, err := render.NewPriceFormatter(
		app.cfg.Display.Locale,
		app.cfg.Display.Currency,
		app.cfg.Display.ExchangeRate,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.fetcher = fetcher
	app.projector = render.NewProjector(price, app.cfg.Display.FallbackImage)
}

func (app *App) initBroker() {
	app.broker = &broker{}
	app.initSerdes()
	app.initProducers()
	app.initSearchStats()
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	topics := app.cfg.Broker.Topics
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaIdentifier := schema.NewSchemaIdentifier(srClient)

	catalogProductSerde, err := schema.NewSerdeCatalogProductV1(
		ctx,
		schema.SubjectOpt(topics.CatalogProducts+"-value"),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	searchEventSerde, err := schema.NewSerdeSearchEventV1(
		ctx,
		schema.SubjectOpt(topics.SearchEvents+"-value"),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.serdes.catalogProduct = catalogProductSerde
	app.broker.serdes.searchEvent = searchEventSerde
}

func (app *App) initProducers() {
	const op = "App.initProducers"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics

	catalogProducer, err := kafka.NewCatalogProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.CatalogProducts),
		kafka.ProducerEncoderOpt(app.broker.serdes.catalogProduct),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	searchProducer, err := kafka.NewSearchEventProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.SearchEvents),
		kafka.ProducerEncoderOpt(app.broker.serdes.searchEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.producers.catalog = catalogProducer
	app.broker.producers.search = searchProducer
}

func (app *App) initSearchStats() {
	const op = "App.initSearchStats"

	seedBrokers := app.cfg.Broker.SeedBrokers
	group := app.cfg.Broker.Consumers.SearchStatsGroup

	statsProc, err := kafka.NewSearchStatsProc(
		seedBrokers,
		app.cfg.Broker.Topics.SearchEvents,
		group,
		app.broker.serdes.searchEvent,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	statsView, err := kafka.NewSearchStatsView(seedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.statsProc = statsProc
	app.broker.statsView = statsView
}

func (app *App) initCoreService() {
	tag := language.Make(app.cfg.Display.Locale)

	opts := []service.Opt{service.FoldNameOpt(app.cfg.Controls.FoldNameCase)}
	if app.broker != nil {
		opts = append(opts,
			service.CatalogProducerOpt(app.broker.producers.catalog),
			service.SearchEventProducerOpt(app.broker.producers.search),
			service.SearchStatsOpt(app.broker.statsProc, app.broker.statsView),
			service.PublishTimeoutOpt(app.cfg.Broker.PublishTimeout),
		)
	}

	app.service = service.New(
		app.fetcher, catalog.New(), catalog.NewSorter(tag), opts...,
	)
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	html, err := render.NewHTML()
	if err != nil {
		app.fallDown(op, err)
	}

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(
		mux, app.service, app.service, app.projector, html,
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, mux)
}

// Run starts the web surface. The catalog is fetched in the background;
// until it arrives pages report that products are loading.
func (app *App) Run(stopFn context.CancelFunc) {
	app.runBroker(stopFn)
	go app.loadCatalog()
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

// RunTerminal blocks in the terminal surface until the user quits.
func (app *App) RunTerminal(stopFn context.CancelFunc) error {
	const op = "App.RunTerminal"

	app.runBroker(stopFn)

	ctl := controls.New(
		app.service.Catalog(), app.service.Sorter(), app.service.FoldName(),
	)
	input := controls.NewDebouncedInput(app.cfg.Controls.NameDebounce)
	defer input.Stop()

	m := tui.New(
		app.ctx, app.service, ctl, input, app.projector,
		tui.LoadTimeoutOpt(app.cfg.Source.Timeout),
	)
	if err := tui.Run(app.ctx, m); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (app *App) runBroker(stopFn context.CancelFunc) {
	if app.broker == nil {
		return
	}
	app.service.Run(app.ctx, stopFn)
	go app.broker.statsView.Run(app.ctx)
}

func (app *App) loadCatalog() {
	const op = "App.loadCatalog"

	ctx, cancel := context.WithTimeout(app.ctx, app.cfg.Source.Timeout)
	defer cancel()

	if err := app.service.LoadCatalog(ctx); err != nil {
		slog.Error("failed to load catalog", "op", op, "err", err)
	}
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	if app.broker != nil {
		app.broker.producers.catalog.Close()
		app.broker.producers.search.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
