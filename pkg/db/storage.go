package db

import (
	"context"
	"fmt"
)

type Version int

const (
	CurrentVersion = 1

	versionKey = "footyfeed/version"
)

// Storage is a flat key/value store. Get returns model.ErrNotFound for missing keys.
type Storage interface {
	Close() error
	Version() (int, error)

	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key, missing keys are not an error
	Delete(ctx context.Context, key string) error
}

func fullKey(key string) string {
	return fmt.Sprintf("footyfeed/v%d/%s", CurrentVersion, key)
}
