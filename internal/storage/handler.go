package storage

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20

type UploadResponse struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// POST /api/uploads
// multipart field "file"; stored under a random name keeping the extension.
func UploadHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		if file.Size == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "file is empty")
		}
		if file.Size > maxUploadSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "file is too large")
		}

		contentType := file.Header.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, "image/") {
			return fiber.NewError(fiber.StatusBadRequest, "only image uploads are accepted")
		}

		src, err := file.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read file")
		}
		defer src.Close()

		name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
		url, err := store.Save(c.UserContext(), name, contentType, src, file.Size)
		if err != nil {
			return err
		}
		slog.Info("file uploaded", "name", name, "size", file.Size)

		return c.Status(fiber.StatusCreated).JSON(UploadResponse{
			URL:         url,
			Name:        name,
			Size:        file.Size,
			ContentType: contentType,
		})
	}
}
