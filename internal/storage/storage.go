package storage

import (
	"strings"

	"github.com/julianstephens/potato/internal/utils"
)

// Kind names a storage backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindJSON     Kind = "json"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindMemory   Kind = "memory"
)

// DetectKind picks the backend for a --store value from its prefix or extension.
func DetectKind(target string) Kind {
	switch {
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return KindRedis
	case target == ":memory:":
		return KindMemory
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// New returns an unopened provider for target. File paths may start with ~.
func New(target string) (Provider, error) {
	switch DetectKind(target) {
	case KindPostgres:
		if _, err := ValidateConnString(target); err != nil {
			return nil, err
		}
		return NewPostgresStore(target), nil
	case KindRedis:
		return NewRedisStore(target)
	case KindMemory:
		return NewMemoryStore(), nil
	}

	path, err := utils.ExpandPath(target)
	if err != nil {
		return nil, err
	}
	if DetectKind(path) == KindJSON {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// IsFileBacked reports whether the provider lives in a single local file.
func IsFileBacked(p Provider) bool {
	switch p.(type) {
	case *SQLiteStore, *JSONStore:
		return true
	default:
		return false
	}
}

// KindOf names the backend behind p.
func KindOf(p Provider) Kind {
	switch p.(type) {
	case *SQLiteStore:
		return KindSQLite
	case *JSONStore:
		return KindJSON
	case *PostgresStore:
		return KindPostgres
	case *RedisStore:
		return KindRedis
	case *MemoryStore:
		return KindMemory
	default:
		return Kind("unknown")
	}
}
