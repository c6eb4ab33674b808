package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Embedding  EmbeddingConfig
	Artifacts  ArtifactsConfig
	Export     ExportConfig
	Similarity SimilarityConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type EmbeddingConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type ArtifactsConfig struct {
	Dir string
}

type ExportConfig struct {
	Path string
}

type SimilarityConfig struct {
	TopK      int
	Threshold float64
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "fundraising")
	v.SetDefault("DATABASE_PASSWORD", "fundraising")
	v.SetDefault("DATABASE_NAME", "fundraising")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("EMBEDDING_URL", "http://localhost:11434")
	v.SetDefault("EMBEDDING_MODEL", "all-minilm")
	v.SetDefault("EMBEDDING_TIMEOUT", "30s")
	v.SetDefault("ARTIFACTS_DIR", "data/models")
	v.SetDefault("EXPORT_PATH", "data_exports/campaigns.csv")
	v.SetDefault("SIMILARITY_TOP_K", 3)
	v.SetDefault("SIMILARITY_THRESHOLD", 0.3)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	connLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 30 * time.Minute
	}
	embedTimeout, err := time.ParseDuration(v.GetString("EMBEDDING_TIMEOUT"))
	if err != nil {
		embedTimeout = 30 * time.Second
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Embedding: EmbeddingConfig{
			URL:     v.GetString("EMBEDDING_URL"),
			Model:   v.GetString("EMBEDDING_MODEL"),
			Timeout: embedTimeout,
		},
		Artifacts: ArtifactsConfig{
			Dir: v.GetString("ARTIFACTS_DIR"),
		},
		Export: ExportConfig{
			Path: v.GetString("EXPORT_PATH"),
		},
		Similarity: SimilarityConfig{
			TopK:      v.GetInt("SIMILARITY_TOP_K"),
			Threshold: v.GetFloat64("SIMILARITY_THRESHOLD"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
