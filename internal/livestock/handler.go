package livestock

import (
	"fmt"
	"strings"
	"time"

	"mbaymi-backend/internal/audit"
	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LivestockRequest struct {
	FarmID              *uint      `json:"farm_id"`
	AnimalType          string     `json:"animal_type" validate:"required,max=50"`
	Breed               string     `json:"breed" validate:"max=100"`
	Quantity            *int       `json:"quantity" validate:"omitempty,gte=1"`
	AgeMonths           *int       `json:"age_months" validate:"omitempty,gte=0"`
	WeightKg            *float64   `json:"weight_kg" validate:"omitempty,gte=0"`
	HealthStatus        string     `json:"health_status" validate:"max=50"`
	LastVaccinationDate *time.Time `json:"last_vaccination_date"`
	FeedingType         string     `json:"feeding_type" validate:"max=100"`
	Location            string     `json:"location" validate:"max=200"`
	Notes               string     `json:"notes" validate:"max=500"`
}

type LivestockResponse struct {
	ID                  uint       `json:"id"`
	UserID              uint       `json:"user_id"`
	FarmID              *uint      `json:"farm_id"`
	AnimalType          string     `json:"animal_type"`
	Breed               string     `json:"breed"`
	Quantity            int        `json:"quantity"`
	AgeMonths           *int       `json:"age_months"`
	WeightKg            *float64   `json:"weight_kg"`
	HealthStatus        string     `json:"health_status"`
	LastVaccinationDate *time.Time `json:"last_vaccination_date"`
	FeedingType         string     `json:"feeding_type"`
	Location            string     `json:"location"`
	Notes               string     `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func toResponse(l models.Livestock) LivestockResponse {
	return LivestockResponse{
		ID:                  l.ID,
		UserID:              l.UserID,
		FarmID:              l.FarmID,
		AnimalType:          l.AnimalType,
		Breed:               l.Breed,
		Quantity:            l.Quantity,
		AgeMonths:           l.AgeMonths,
		WeightKg:            l.WeightKg,
		HealthStatus:        l.HealthStatus,
		LastVaccinationDate: l.LastVaccinationDate,
		FeedingType:         l.FeedingType,
		Location:            l.Location,
		Notes:               l.Notes,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func (r LivestockRequest) apply(l *models.Livestock) {
	l.FarmID = r.FarmID
	l.AnimalType = strings.ToLower(strings.TrimSpace(r.AnimalType))
	l.Breed = r.Breed
	l.Quantity = 1
	if r.Quantity != nil {
		l.Quantity = *r.Quantity
	}
	l.AgeMonths = r.AgeMonths
	l.WeightKg = r.WeightKg
	l.HealthStatus = r.HealthStatus
	if l.HealthStatus == "" {
		l.HealthStatus = "healthy"
	}
	l.LastVaccinationDate = r.LastVaccinationDate
	l.FeedingType = r.FeedingType
	l.Location = r.Location
	l.Notes = r.Notes
}

// checkFarm verifies that a referenced farm exists and belongs to userID.
func checkFarm(db *gorm.DB, farmID *uint, userID uint) error {
	if farmID == nil {
		return nil
	}
	var n int64
	if err := db.Model(&models.Farm{}).Where("id = ? AND user_id = ?", *farmID, userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Farm not found")
	}
	return nil
}

// POST /api/livestock?user_id=1
func CreateLivestockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.QueryID(c, "user_id")
		if err != nil {
			return err
		}
		var body LivestockRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var user models.User
		if err := db.Select("id").First(&user, userID).Error; err != nil {
			return httperr.NotFound(err, "User not found")
		}
		if err := checkFarm(db, body.FarmID, userID); err != nil {
			return err
		}

		l := models.Livestock{UserID: userID}
		body.apply(&l)
		if err := db.Create(&l).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(l))
	}
}

// GET /api/livestock/:id
func GetLivestockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var l models.Livestock
		if err := db.First(&l, id).Error; err != nil {
			return httperr.NotFound(err, "Livestock not found")
		}
		return c.JSON(toResponse(l))
	}
}

// GET /api/livestock/user/:user_id
func ListUserLivestockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "user_id")
		if err != nil {
			return err
		}
		var items []models.Livestock
		if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		resp := make([]LivestockResponse, 0, len(items))
		for _, l := range items {
			resp = append(resp, toResponse(l))
		}
		return c.JSON(resp)
	}
}

// PUT /api/livestock/:id
func UpdateLivestockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body LivestockRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var l models.Livestock
		if err := db.First(&l, id).Error; err != nil {
			return httperr.NotFound(err, "Livestock not found")
		}
		if err := checkFarm(db, body.FarmID, l.UserID); err != nil {
			return err
		}
		body.apply(&l)
		if err := db.Save(&l).Error; err != nil {
			return err
		}
		return c.JSON(toResponse(l))
	}
}

// DELETE /api/livestock/:id
func DeleteLivestockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		actor := audit.Actor(c)

		err = db.Transaction(func(tx *gorm.DB) error {
			var l models.Livestock
			if err := tx.First(&l, id).Error; err != nil {
				return httperr.NotFound(err, "Livestock not found")
			}
			if err := tx.Delete(&l).Error; err != nil {
				return err
			}
			return audit.WriteLog(tx, audit.LogOptions{
				UserID:      actor,
				EntityType:  "livestock",
				EntityID:    l.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Livestock deleted: %d %s", l.Quantity, l.AnimalType),
				Before:      toResponse(l),
			})
		})
		if err != nil {
			return err
		}
		return c.JSON(StatusResponse{Status: "deleted"})
	}
}
