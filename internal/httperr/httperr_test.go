package httperr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: Handler})
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "name is required") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fmt.Errorf("load: %w", gorm.ErrRecordNotFound) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: relation \"farms\" does not exist") })
	app.Get("/farm", func(c *fiber.Ctx) error { return NotFound(gorm.ErrRecordNotFound, "farm not found") })

	cases := []struct {
		path string
		code int
		body string
	}{
		{"/bad", http.StatusBadRequest, `{"error":"name is required"}`},
		{"/missing", http.StatusNotFound, `{"error":"not found"}`},
		{"/boom", http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"/farm", http.StatusNotFound, `{"error":"farm not found"}`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tc.code, resp.StatusCode, tc.path)
		assert.JSONEq(t, tc.body, string(b), tc.path)
	}
}
