package audit

import (
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      *uint              `json:"user_id"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"before_data"`
}

// GET /api/audit-logs?entity_type=farm&entity_id=1&user_id=2
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := request.Page(c)
		if err != nil {
			return err
		}

		dbq := db.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if c.Query("entity_id") != "" {
			eid, err := request.QueryID(c, "entity_id")
			if err != nil {
				return err
			}
			dbq = dbq.Where("entity_id = ?", eid)
		}
		if c.Query("user_id") != "" {
			uid, err := request.QueryID(c, "user_id")
			if err != nil {
				return err
			}
			dbq = dbq.Where("user_id = ?", uid)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Order("id DESC").
			Offset(skip).Limit(limit).
			Find(&logs).Error; err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          log.ID,
				CreatedAt:   log.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      log.UserID,
				EntityType:  log.EntityType,
				EntityID:    log.EntityID,
				Action:      log.Action,
				Description: log.Description,
				BeforeData:  log.BeforeData,
			})
		}

		return c.JSON(resp)
	}
}
