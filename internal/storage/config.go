package storage

import "fmt"

const (
	TypeFile     = "file"
	TypeMemory   = "memory"
	TypePostgres = "postgres"
	TypeRedis    = "redis"
)

// Config holds storage configuration
type Config struct {
	Type        string // "file", "memory", "postgres" or "redis"
	Dir         string // Directory for file storage
	PostgresDSN string
	Table       string // Document table for postgres storage
	RedisAddr   string
	RedisDB     int
	KeyPrefix   string // Namespace for redis keys
}

// Validate checks the selected backend has what it needs
func (c Config) Validate() error {
	switch c.Type {
	case TypeFile:
		if c.Dir == "" {
			return fmt.Errorf("storage directory is required for file storage")
		}
	case TypeMemory:
	case TypePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres connection string is required for postgres storage")
		}
	case TypeRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for redis storage")
		}
	default:
		return fmt.Errorf("unsupported storage type %q", c.Type)
	}
	return nil
}
