package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	BaseConfig
	ClickHouse    ClickHouse
	Elasticsearch Elasticsearch
}

type BaseConfig struct {
	IsProduction  bool          `env:"PRODUCTION"     envDefault:"false"`
	LogLevel      slog.Level    `env:"LOG_LEVEL"      envDefault:"INFO"`
	SnapshotStore SnapshotStore `env:"SNAPSHOT_STORE" envDefault:""`
	QueryAPI      QueryAPI
}

type QueryAPI struct {
	BaseURL string        `env:"QUERY_API_BASE_URL,notEmpty"`
	Timeout time.Duration `env:"QUERY_API_TIMEOUT"  envDefault:"30s"`
}

type ClickHouse struct {
	Address      string `env:"CLICKHOUSE_ADDRESS"`
	DatabaseName string `env:"CLICKHOUSE_DB_NAME"`
	Username     string `env:"CLICKHOUSE_USERNAME"`
	Password     string `env:"CLICKHOUSE_PASSWORD"`
	Debug        bool   `env:"CLICKHOUSE_DEBUG_ENABLED"`
}

type Elasticsearch struct {
	Address string `env:"ELASTICSEARCH_ADDRESS,notEmpty"`
	Debug   bool   `env:"ELASTICSEARCH_DEBUG_ENABLED" envDefault:"false"`
}

// Where fetched result sets are saved, if anywhere.
type SnapshotStore string

const (
	SnapshotStoreNone          SnapshotStore = ""
	SnapshotStoreClickHouse    SnapshotStore = "clickhouse"
	SnapshotStoreElasticsearch SnapshotStore = "elasticsearch"
)

// Loads variables from a .env file in the working directory, if there is one, then parses the
// config from the environment. Database variables are only required for the configured
// SNAPSHOT_STORE.
func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config

	if err := env.ParseWithOptions(&config.BaseConfig, parseOptions); err != nil {
		return Config{}, err
	}

	switch config.SnapshotStore {
	case SnapshotStoreNone:
	case SnapshotStoreClickHouse:
		if err := env.ParseWithOptions(&config.ClickHouse, parseOptions); err != nil {
			return Config{}, err
		}
	case SnapshotStoreElasticsearch:
		if err := env.ParseWithOptions(&config.Elasticsearch, parseOptions); err != nil {
			return Config{}, err
		}
	default:
		err := fmt.Errorf(
			"must be one of: '%s', '%s' or empty",
			SnapshotStoreClickHouse,
			SnapshotStoreElasticsearch,
		)
		return Config{}, wrap.Errorf(
			err,
			"unsupported value '%s' for SNAPSHOT_STORE in env",
			config.SnapshotStore,
		)
	}

	return config, nil
}
