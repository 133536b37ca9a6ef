package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_FILE_SIZE", "ALLOWED_EXTENSIONS", "REDIS_ADDR", "QDRANT_URL", "LOG_JSON", "EMBEDDING_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, []string{"pdf", "docx"}, cfg.Storage.AllowedExtensions)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbedModel)
	assert.Equal(t, 10*time.Second, cfg.Gemini.Timeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Qdrant.URL)
	assert.Equal(t, uint64(768), cfg.Qdrant.VectorSize)
	assert.False(t, cfg.Logging.JSON)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("ALLOWED_EXTENSIONS", " .PDF , docx,, ")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("EMBEDDING_TIMEOUT", "not-a-duration")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, []string{"pdf", "docx"}, cfg.Storage.AllowedExtensions)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, 10*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "autocv"}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=autocv sslmode=disable", cfg.GetDatabaseDSN())
}
