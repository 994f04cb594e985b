// Package health serves the service banner and the liveness probe.
package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	Version     = "0.1.0"
	pingTimeout = 800 * time.Millisecond
)

var appStart = time.Now()

type InfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type Check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	UptimeSec int              `json:"uptime_sec"`
	Checks    map[string]Check `json:"checks"`
	Time      string           `json:"time"`
}

// GET /
func InfoHandler(appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(InfoResponse{
			Name:        appName,
			Version:     Version,
			Description: "Agricultural platform for farmers and livestock breeders",
			Status:      "running",
		})
	}
}

// GET /health
// 503 when the database does not answer a ping.
func HealthHandler(db *gorm.DB, appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
		defer cancel()

		dbCheck := pingDB(ctx, db)

		resp := HealthResponse{
			Status:    "healthy",
			Message:   appName + " is running",
			UptimeSec: int(time.Since(appStart).Seconds()),
			Checks:    map[string]Check{"database": dbCheck},
			Time:      time.Now().Format(time.RFC3339),
		}
		status := fiber.StatusOK
		if !dbCheck.OK {
			resp.Status = "unhealthy"
			resp.Message = appName + " cannot reach its database"
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(resp)
	}
}

func pingDB(ctx context.Context, db *gorm.DB) Check {
	if db == nil {
		return Check{Err: "not configured"}
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("health: database handle", "error", err)
		return Check{Err: "unavailable"}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("health: database ping", "error", err)
		return Check{Err: "unreachable"}
	}
	return Check{OK: true}
}
