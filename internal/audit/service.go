package audit

import (
	"encoding/json"
	"fmt"

	"mbaymi-backend/internal/auth"
	"mbaymi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      *uint
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
}

// WriteLog stores an audit entry using tx, so the entry commits or rolls back
// together with the change it describes.
func WriteLog(tx *gorm.DB, opts LogOptions) error {
	beforeStr := "null"
	if opts.Before != nil {
		b, err := json.Marshal(opts.Before)
		if err != nil {
			return fmt.Errorf("audit snapshot: %w", err)
		}
		beforeStr = string(b)
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
	}
	if err := tx.Create(&log).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Actor returns the authenticated caller for audit entries, or nil.
func Actor(c *fiber.Ctx) *uint {
	if id, ok := auth.CurrentUserID(c); ok {
		return &id
	}
	return nil
}
