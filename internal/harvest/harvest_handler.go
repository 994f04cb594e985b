package harvest

import (
	"time"

	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HarvestRequest struct {
	FarmID            uint       `json:"farm_id" validate:"required"`
	CropID            *uint      `json:"crop_id"`
	EstimatedQuantity *float64   `json:"estimated_quantity" validate:"omitempty,gte=0"`
	ActualQuantity    *float64   `json:"actual_quantity" validate:"omitempty,gte=0"`
	HarvestDate       *time.Time `json:"harvest_date"`
	Notes             string     `json:"notes" validate:"max=1000"`
}

type HarvestResponse struct {
	ID                uint      `json:"id"`
	FarmID            uint      `json:"farm_id"`
	CropID            *uint     `json:"crop_id"`
	EstimatedQuantity *float64  `json:"estimated_quantity"`
	ActualQuantity    *float64  `json:"actual_quantity"`
	HarvestDate       time.Time `json:"harvest_date"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
}

func toHarvestResponse(h models.Harvest) HarvestResponse {
	return HarvestResponse{
		ID:                h.ID,
		FarmID:            h.FarmID,
		CropID:            h.CropID,
		EstimatedQuantity: h.EstimatedQuantity,
		ActualQuantity:    h.ActualQuantity,
		HarvestDate:       h.HarvestDate,
		Notes:             h.Notes,
		CreatedAt:         h.CreatedAt,
	}
}

// POST /api/harvests
func CreateHarvestHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body HarvestRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var farm models.Farm
		if err := db.Select("id").First(&farm, body.FarmID).Error; err != nil {
			return httperr.NotFound(err, "Farm not found")
		}
		if body.CropID != nil {
			var n int64
			if err := db.Model(&models.Crop{}).Where("id = ? AND farm_id = ?", *body.CropID, body.FarmID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Crop not found")
			}
		}

		h := models.Harvest{
			FarmID:            body.FarmID,
			CropID:            body.CropID,
			EstimatedQuantity: body.EstimatedQuantity,
			ActualQuantity:    body.ActualQuantity,
			HarvestDate:       time.Now(),
			Notes:             body.Notes,
		}
		if body.HarvestDate != nil {
			h.HarvestDate = *body.HarvestDate
		}
		if err := db.Create(&h).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toHarvestResponse(h))
	}
}

func listHarvests(c *fiber.Ctx, db *gorm.DB, column, param string) error {
	id, err := request.ParamID(c, param)
	if err != nil {
		return err
	}
	var items []models.Harvest
	if err := db.Where(column+" = ?", id).Order("harvest_date DESC").Order("id DESC").Find(&items).Error; err != nil {
		return err
	}
	resp := make([]HarvestResponse, 0, len(items))
	for _, h := range items {
		resp = append(resp, toHarvestResponse(h))
	}
	return c.JSON(resp)
}

// GET /api/harvests/farm/:farm_id
func ListFarmHarvestsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listHarvests(c, db, "farm_id", "farm_id")
	}
}

// GET /api/harvests/crop/:crop_id
func ListCropHarvestsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listHarvests(c, db, "crop_id", "crop_id")
	}
}
