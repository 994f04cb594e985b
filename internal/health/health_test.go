package health

import (
	"net/http"
	"testing"

	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoHandler(t *testing.T) {
	app := testutil.NewApp()
	app.Get("/", InfoHandler("Mbaymi API"))

	var got InfoResponse
	code := testutil.Do(t, app, http.MethodGet, "/", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Mbaymi API", got.Name)
	assert.Equal(t, Version, got.Version)
	assert.Equal(t, "running", got.Status)
}

func TestHealthHandler(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	app.Get("/health", HealthHandler(db, "Mbaymi API"))

	var got HealthResponse
	code := testutil.Do(t, app, http.MethodGet, "/health", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", got.Status)
	assert.True(t, got.Checks["database"].OK)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	app := testutil.NewApp()
	app.Get("/health", HealthHandler(db, "Mbaymi API"))

	var got HealthResponse
	code := testutil.Do(t, app, http.MethodGet, "/health", nil, &got)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", got.Status)
	assert.Equal(t, "unreachable", got.Checks["database"].Err)
}
