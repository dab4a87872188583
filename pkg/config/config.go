package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Snapshot source selectors.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Data     DataConfig
	Model    ModelConfig
	Engine   EngineConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DataConfig struct {
	// Source selects where the static snapshot is loaded from:
	// SourceCSV (Dir holds ratings.csv, movies.csv, tags.csv, links.csv)
	// or SourcePostgres (equivalent tables).
	Source string
	Dir    string
}

type ModelConfig struct {
	// Path to the exported latent-factor model artifact.
	Path string
}

type EngineConfig struct {
	// MatchStrategy: "tags" (primary) or "cosine".
	MatchStrategy string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	CacheTTLSecs int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ReelSense API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			Source: getEnv("DATA_SOURCE", SourceCSV),
			Dir:    getEnv("DATA_DIR", "data"),
		},
		Model: ModelConfig{
			Path: getEnv("MODEL_PATH", "svd_model.json"),
		},
		Engine: EngineConfig{
			MatchStrategy: getEnv("MATCH_STRATEGY", "tags"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "reelsense"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:      getEnv("REDIS_ENABLED", "false") == "true",
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           0,
			CacheTTLSecs: 300,
		},
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid REDIS_DB")
		}
		cfg.Redis.DB = db
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid CACHE_TTL_SECONDS")
		}
		cfg.Redis.CacheTTLSecs = ttl
	}

	if cfg.Data.Source != SourceCSV && cfg.Data.Source != SourcePostgres {
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.Data.Source)
	}
	if cfg.Data.Source == SourceCSV && cfg.Data.Dir == "" {
		return nil, errors.New("missing data dir")
	}
	if cfg.Data.Source == SourcePostgres && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}
	if cfg.Model.Path == "" {
		return nil, errors.New("missing model path")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
