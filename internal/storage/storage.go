// Package storage provides the key-value store that résumés, preferences,
// job statuses and digests are persisted in.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/secrets"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	defaultPath        = "careerdeck.db.json"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "careerdeck:"
	redisPasswordEnv   = "CAREERDECK_REDIS_PASSWORD"
	postgresDSNEnv     = "CAREERDECK_POSTGRES_DSN"
)

var (
	// ErrNotFound is returned by Get when a key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt is returned by GetJSON when a stored value does not decode.
	ErrCorrupt = errors.New("stored value is unreadable")
)

// Store maps string keys to JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type Config struct {
	Backend  string          `mapstructure:"backend"`
	Path     string          `mapstructure:"path"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	PasswordFile string `mapstructure:"password-file"`
	DB           int    `mapstructure:"db"`
	Prefix       string `mapstructure:"prefix"`
}

type PostgresConfig struct {
	DSN     string `mapstructure:"dsn"`
	DSNFile string `mapstructure:"dsn-file"`
	Table   string `mapstructure:"table"`
}

// New builds the store selected by cfg. A nil cfg uses the file backend.
func New(ctx context.Context, cfg *Config, logger *zap.Logger) (Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case "", BackendFile:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = defaultPath
		}
		logger.Debug("using file storage", zap.String("path", path))
		return NewFile(path), nil
	case BackendMemory:
		logger.Debug("using in-memory storage")
		return NewMemory(), nil
	case BackendRedis:
		rc := cfg.Redis
		if rc == nil {
			rc = &RedisConfig{}
		}

		password := ""
		if rc.PasswordFile != "" || rc.Password != "" || os.Getenv(redisPasswordEnv) != "" {
			var err error
			password, err = secrets.Load(secrets.Source{
				Name:  "redis password",
				Value: rc.Password,
				Env:   redisPasswordEnv,
				File:  rc.PasswordFile,
			})
			if err != nil {
				return nil, err
			}
		}

		addr := strings.TrimSpace(rc.Addr)
		if addr == "" {
			addr = defaultRedisAddr
		}
		prefix := rc.Prefix
		if prefix == "" {
			prefix = defaultRedisPrefix
		}

		logger.Debug("using redis storage", zap.String("addr", addr), zap.Int("db", rc.DB), zap.String("prefix", prefix))
		return NewRedis(ctx, addr, password, rc.DB, prefix)
	case BackendPostgres:
		pc := cfg.Postgres
		if pc == nil {
			pc = &PostgresConfig{}
		}

		dsn, err := secrets.Load(secrets.Source{
			Name:  "postgres dsn",
			Value: pc.DSN,
			Env:   postgresDSNEnv,
			File:  pc.DSNFile,
		})
		if err != nil {
			return nil, err
		}

		logger.Debug("using postgres storage", zap.String("table", pc.Table))
		return NewPostgres(ctx, dsn, pc.Table)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}

// GetJSON decodes the value stored under key into target.
func GetJSON(ctx context.Context, s Store, key string, target any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s: %w: %w", key, ErrCorrupt, err)
	}
	return nil
}

// SetJSON stores value under key as JSON.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
