package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "CATALOG_CONFIG_FILE"
	defaultConfigFile = "/config.yaml"
)

type consumers struct {
	SearchStatsGroup string `mapstructure:"search_stats_group"`
}

type topics struct {
	CatalogProducts string `mapstructure:"catalog_products"`
	SearchEvents    string `mapstructure:"search_events"`
}

type broker struct {
	Enabled            bool          `mapstructure:"enabled"`
	PublishTimeout     time.Duration `mapstructure:"publish_timeout"`
	SeedBrokers        []string      `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string      `mapstructure:"schema_registry_urls"`
	Topics             topics        `mapstructure:"topics"`
	Consumers          consumers     `mapstructure:"consumers"`
}

type source struct {
	URL         string        `mapstructure:"url"`
	ProductType string        `mapstructure:"product_type"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type display struct {
	ExchangeRate  float64 `mapstructure:"exchange_rate"`
	Currency      string  `mapstructure:"currency"`
	Locale        string  `mapstructure:"locale"`
	FallbackImage string  `mapstructure:"fallback_image"`
}

type controls struct {
	NameDebounce time.Duration `mapstructure:"name_debounce"`
	FoldNameCase bool          `mapstructure:"fold_name_case"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Source         source     `mapstructure:"source"`
	Display        display    `mapstructure:"display"`
	Controls       controls   `mapstructure:"controls"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads path over the defaults. A missing file at the default
// location is not an error.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	err := v.ReadInConfig()
	if err != nil {
		if !(path == defaultConfigFile && errors.Is(err, fs.ErrNotExist)) {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err = v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", ":8080")

	v.SetDefault("source.url", "https://makeup-api.herokuapp.com/api/v1/products.json")
	v.SetDefault("source.product_type", "")
	v.SetDefault("source.timeout", "30s")

	v.SetDefault("display.exchange_rate", 5.5)
	v.SetDefault("display.currency", "BRL")
	v.SetDefault("display.locale", "pt-BR")
	v.SetDefault("display.fallback_image", "/img/unavailable.png")

	v.SetDefault("controls.name_debounce", "400ms")
	v.SetDefault("controls.fold_name_case", false)

	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.publish_timeout", "1s")
	v.SetDefault("broker.seed_brokers", []string{"localhost:9092"})
	v.SetDefault("broker.schema_registry_urls", []string{"http://localhost:8081"})
	v.SetDefault("broker.topics.catalog_products", "catalog-products")
	v.SetDefault("broker.topics.search_events", "search-events")
	v.SetDefault("broker.consumers.search_stats_group", "search-stats")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", defaultConfigFile, "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Source:
	URL=%q
	ProductType=%q
	Timeout=%q

	Display:
	ExchangeRate=%v
	Currency=%q
	Locale=%q
	FallbackImage=%q

	Controls:
	NameDebounce=%q
	FoldNameCase=%v

	BrokerConfig:
	Enabled=%v
	PublishTimeout=%q
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogProducts=%q
		SearchEvents=%q
	Consumers:
		SearchStatsGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Source.URL,
		c.Source.ProductType,
		c.Source.Timeout,
		c.Display.ExchangeRate,
		c.Display.Currency,
		c.Display.Locale,
		c.Display.FallbackImage,
		c.Controls.NameDebounce,
		c.Controls.FoldNameCase,
		c.Broker.Enabled,
		c.Broker.PublishTimeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogProducts,
		c.Broker.Topics.SearchEvents,
		c.Broker.Consumers.SearchStatsGroup,
	)
}
