package storage

import "errors"

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'potato init' first")
)

// Provider is a durable key-value store holding raw JSON records.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by stores with a migrated SQL schema.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}
