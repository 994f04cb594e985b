package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		addProduction bool
		want          []string
	}{
		{"trims and drops empties", " http://a.test , ,http://b.test", false, []string{"http://a.test", "http://b.test"}},
		{"wildcard wins", "http://a.test,*", true, []string{"*"}},
		{"adds production origin", "http://a.test", true, []string{"http://a.test", productionOrigin}},
		{"no duplicate production origin", productionOrigin, true, []string{productionOrigin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrigins(tt.raw, tt.addProduction))
		})
	}
}

func TestLoad_RequiresSecretOutsideDebug(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("SECRET_KEY", "short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")
	t.Setenv("NEWS_TIMEOUT", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, 8*time.Second, cfg.NewsTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Minio.Enabled())
}
