package storage

import (
	"context"
	"errors"
	"strings"
)

// KV is the local key-value storage both repos sit on. Values are opaque strings.
type KV interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Close() error
}

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// NewByEngine opens the KV backend named by engine at path.
func NewByEngine(ctx context.Context, engine string, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return NewSQLiteKV(ctx, path)
	case EngineJSON:
		return NewFileKV(path)
	default:
		return nil, errors.New("unsupported storage engine: " + engine)
	}
}
