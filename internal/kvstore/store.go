// Package kvstore is the key-value storage behind defaults and templates.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv_not_found")

// Store holds raw JSON values under string keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
