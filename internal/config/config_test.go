package config

import (
	"os"
	"path/filepath"
	"testing"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  host: 127.0.0.1
  port: 8080
storage:
  type: file
  dir: /tmp/carrental
photos:
  max_file_size_mb: 2
log:
  level: debug
catalog:
  cars:
    - name: Toyota Corolla
      rate: 100
    - name: Honda Civic
      rate: 180
cors:
  allowed_origins:
    - http://localhost:3000
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, int64(2<<20), cfg.MaxPhotoBytes())
	assert.Equal(t, []domain.Car{{Name: "Toyota Corolla", Rate: 100}, {Name: "Honda Civic", Rate: 180}}, cfg.Catalog.Cars)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, storage.Config{Type: storage.TypeFile, Dir: "/tmp/carrental"}, cfg.StorageConfig())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, storage.TypeFile, cfg.Storage.Type)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Equal(t, int64(5), cfg.Photos.MaxFileSizeMB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Catalog.Cars)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)

	sc := cfg.StorageConfig()
	assert.Equal(t, storage.TypeRedis, sc.Type)
	assert.Equal(t, "localhost:6379", sc.RedisAddr)
	assert.Equal(t, 2, sc.RedisDB)
}

func TestParse_Postgres(t *testing.T) {
	yml := `
server:
  port: 8080
storage:
  type: postgres
database:
  host: db
  port: 5432
  user: rentals
  password: secret
  database: carrental
`
	cfg, err := Parse([]byte(yml))
	require.NoError(t, err)
	assert.Equal(t, "postgres://rentals:secret@db:5432/carrental?sslmode=disable", cfg.StorageConfig().PostgresDSN)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"Bad yaml", "server: [\n"},
		{"Missing port", "server:\n  host: x\n"},
		{"Port out of range", "server:\n  port: 70000\n"},
		{"Unknown storage", "server:\n  port: 80\nstorage:\n  type: s3\n"},
		{"Postgres without host", "server:\n  port: 80\nstorage:\n  type: postgres\n"},
		{"Redis without addr", "server:\n  port: 80\nstorage:\n  type: redis\n"},
		{"Negative photo limit", "server:\n  port: 80\nphotos:\n  max_file_size_mb: -1\n"},
		{"Catalog without rate", "server:\n  port: 80\ncatalog:\n  cars:\n    - name: A\n"},
		{"Catalog without name", "server:\n  port: 80\ncatalog:\n  cars:\n    - rate: 10\n"},
		{"Duplicate catalog entry", "server:\n  port: 80\ncatalog:\n  cars:\n    - {name: A, rate: 1}\n    - {name: A, rate: 2}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
