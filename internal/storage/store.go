// Package storage provides the string key-value stores that layouts are
// persisted to.
//
// Backends:
//   - memory: process-local map, used in tests and with backend "memory"
//   - file: one file per key under a directory (default)
//   - sqlite: a single table in a SQLite database (modernc.org/sqlite)
//   - redis: string keys in Redis, optionally prefixed
//
// All backends share the same contract: Get reports a missing key with
// ok == false and a nil error.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RegionsKey is the key under which the region sequence is stored.
const RegionsKey = "regions"

var (
	// ErrInvalidKey is returned for empty keys or keys a backend cannot hold.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// KeyValueStore is a string-keyed store of string values.
type KeyValueStore interface {
	// Get returns the value for key. A missing key yields ok == false, err == nil.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend       string `toml:"backend"`
	Path          string `toml:"path"` // directory for "file", database file for "sqlite"
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	KeyPrefix     string `toml:"key_prefix"` // redis only
}

// NewConfig returns the storage defaults.
func NewConfig() Config {
	return Config{
		Backend:   BackendFile,
		RedisAddr: "localhost:6379",
		KeyPrefix: "tilegrid:",
	}
}

// DefaultPath returns the default data location for backend under the
// user config directory, or "" if it cannot be determined.
func DefaultPath(appName, backend string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	switch backend {
	case BackendSQLite:
		return filepath.Join(dir, appName, appName+".db")
	default:
		return filepath.Join(dir, appName, "layouts")
	}
}

// Open builds the backend described by cfg.
func Open(ctx context.Context, cfg Config) (KeyValueStore, error) {
	var (
		kv  KeyValueStore
		err error
	)
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		kv = NewMemoryStore()
	case BackendFile, "":
		kv, err = asStore(NewFileStore(cfg.Path))
	case BackendSQLite:
		kv, err = asStore(OpenSQLiteStore(ctx, cfg.Path))
	case BackendRedis:
		kv, err = asStore(NewRedisStore(ctx, RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		}))
	default:
		err = fmt.Errorf("open %q: %w", cfg.Backend, ErrUnknownBackend)
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}

// asStore drops the concrete pointer on error so callers never see a
// non-nil interface wrapping a nil store.
func asStore[S KeyValueStore](s S, err error) (KeyValueStore, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key: %w", ErrInvalidKey)
	}
	return nil
}
