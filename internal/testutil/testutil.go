// Package testutil provides database and HTTP helpers for package tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mbaymi-backend/internal/database"
	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database. The pool holds a single
// connection so every query sees the same in-memory schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@mbaymi.test",
		PasswordHash: "x",
		Role:         models.RoleFarmer,
		Region:       "Thiès",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func CreateFarm(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Farm {
	t.Helper()
	f := models.Farm{UserID: ownerID, Name: name, Location: "Thiès"}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func CreateCrop(t *testing.T, db *gorm.DB, farmID uint, name string) models.Crop {
	t.Helper()
	c := models.Crop{FarmID: farmID, CropName: name, Status: models.CropGrowing}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// CreatePost stores a post with an explicit creation time so ordering is stable.
func CreatePost(t *testing.T, db *gorm.DB, farm models.Farm, title string, at time.Time) models.FarmPost {
	t.Helper()
	p := models.FarmPost{
		FarmID:    farm.ID,
		UserID:    farm.UserID,
		Title:     title,
		PostType:  models.PostCropUpdate,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Do sends a request to app with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func Do(t *testing.T, app *fiber.App, method, target string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

// NewApp returns a Fiber app using the server's error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: httperr.Handler})
}
