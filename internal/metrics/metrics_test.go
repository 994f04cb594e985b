package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mbaymi-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()
	app := testutil.NewApp()
	app.Use(m.Middleware())
	app.Get("/api/farms/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "404" {
			return fiber.NewError(fiber.StatusNotFound, "Farm not found")
		}
		return c.JSON(fiber.Map{"id": c.Params("id")})
	})
	app.Get("/metrics", m.Handler())

	for _, target := range []string{"/api/farms/1", "/api/farms/2", "/api/farms/404"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, promtest.ToFloat64(m.requests.WithLabelValues("GET", "/api/farms/:id", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.requests.WithLabelValues("GET", "/api/farms/:id", "404")))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/farms/:id",status="404"} 1`)
	assert.Contains(t, string(body), "http_request_duration_seconds_bucket")
}

func TestMiddleware_ErrorBodyStillRendered(t *testing.T) {
	m := New()
	app := testutil.NewApp()
	app.Use(m.Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	})

	var got map[string]string
	code := testutil.Do(t, app, http.MethodGet, "/boom", nil, &got)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", got["error"])
}
