package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/storage"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Photos    PhotoConfig     `yaml:"photos"`
	Log       LogConfig       `yaml:"log"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	CORS      CORSConfig      `yaml:"cors"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects the document store backend
type StorageConfig struct {
	Type string `yaml:"type"` // "file", "memory", "postgres" or "redis"
	Dir  string `yaml:"dir"`  // For file storage
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	Table    string `yaml:"table"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// PhotoConfig limits return photo uploads
type PhotoConfig struct {
	MaxFileSizeMB int64 `yaml:"max_file_size_mb"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

type CatalogConfig struct {
	Cars []domain.Car `yaml:"cars"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`        // Run jobs inside the server process
	FleetSnapshot string `yaml:"fleet_snapshot"` // Six-field cron expression
}

// Load reads configuration from a YAML file. A .env file in the working
// directory, when present, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("STORAGE_DIR"); val != "" {
		c.Storage.Dir = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		fmt.Sscanf(val, "%d", &c.Redis.DB)
	}

	// Photos
	if val := os.Getenv("PHOTO_MAX_FILE_SIZE_MB"); val != "" {
		fmt.Sscanf(val, "%d", &c.Photos.MaxFileSizeMB)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// CORS
	if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORS.AllowedOrigins = splitList(val)
	}

	// Scheduler
	if val := os.Getenv("SCHEDULER_ENABLED"); val != "" {
		c.Scheduler.Enabled = val == "true" || val == "1"
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Storage defaults
	if c.Storage.Type == "" {
		c.Storage.Type = storage.TypeFile
	}
	if c.Storage.Type == storage.TypeFile && c.Storage.Dir == "" {
		c.Storage.Dir = "./data"
	}
	if c.Storage.Type == storage.TypePostgres {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}
	if err := c.StorageConfig().Validate(); err != nil {
		return err
	}

	// Photo defaults
	if c.Photos.MaxFileSizeMB < 0 {
		return fmt.Errorf("invalid photo size limit: %d MB", c.Photos.MaxFileSizeMB)
	}
	if c.Photos.MaxFileSizeMB == 0 {
		c.Photos.MaxFileSizeMB = 5
	}

	// Catalog validation
	seen := make(map[string]bool, len(c.Catalog.Cars))
	for i, car := range c.Catalog.Cars {
		if strings.TrimSpace(car.Name) == "" {
			return fmt.Errorf("catalog entry %d has no name", i)
		}
		if car.Rate <= 0 {
			return fmt.Errorf("catalog entry %q must have a positive rate", car.Name)
		}
		if seen[car.Name] {
			return fmt.Errorf("duplicate catalog entry %q", car.Name)
		}
		seen[car.Name] = true
	}

	// CORS defaults
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	// Scheduler defaults
	if c.Scheduler.FleetSnapshot == "" {
		c.Scheduler.FleetSnapshot = "0 0 * * * *" // Hourly
	}

	return nil
}

// StorageConfig maps the storage, database and redis sections onto storage.Config
func (c *Config) StorageConfig() storage.Config {
	cfg := storage.Config{
		Type:      c.Storage.Type,
		Dir:       c.Storage.Dir,
		Table:     c.Database.Table,
		RedisAddr: c.Redis.Addr,
		RedisDB:   c.Redis.DB,
		KeyPrefix: c.Redis.KeyPrefix,
	}
	if c.Storage.Type == storage.TypePostgres {
		cfg.PostgresDSN = c.GetDatabaseConnectionString()
	}
	return cfg
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxPhotoBytes returns the per-photo upload limit in bytes
func (c *Config) MaxPhotoBytes() int64 {
	return c.Photos.MaxFileSizeMB << 20
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
