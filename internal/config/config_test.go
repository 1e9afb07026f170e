package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"DB_HOST", "DB_PORT", "JWT_EXP_HOURS", "UPLOAD_DIR", "MAX_UPLOAD_MB", "PORT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 6, cfg.JWTExpHours)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_EXP_HOURS", "12")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://marks.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 12, cfg.JWTExpHours)
	assert.Equal(t, []string{"http://localhost:3000", "https://marks.example.com"}, cfg.CORSOrigins)
}
