package farm

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

type CropRequest struct {
	CropName            string     `json:"crop_name" validate:"required,max=100"`
	PlantedDate         *time.Time `json:"planted_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date"`
	QuantityPlanted     *float64   `json:"quantity_planted" validate:"omitempty,gte=0"`
	ExpectedYield       *float64   `json:"expected_yield" validate:"omitempty,gte=0"`
	Status              string     `json:"status" validate:"omitempty,oneof=growing harvested failed"`
	Notes               string     `json:"notes" validate:"max=500"`
}

type CropResponse struct {
	ID                  uint              `json:"id"`
	FarmID              uint              `json:"farm_id"`
	CropName            string            `json:"crop_name"`
	PlantedDate         *time.Time        `json:"planted_date"`
	ExpectedHarvestDate *time.Time        `json:"expected_harvest_date"`
	QuantityPlanted     *float64          `json:"quantity_planted"`
	ExpectedYield       *float64          `json:"expected_yield"`
	Status              models.CropStatus `json:"status"`
	Notes               string            `json:"notes"`
	ImageURL            string            `json:"image_url"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type CropPhotoResponse struct {
	Status   string `json:"status"`
	ImageURL string `json:"image_url"`
}

func toCropResponse(c models.Crop) CropResponse {
	return CropResponse{
		ID:                  c.ID,
		FarmID:              c.FarmID,
		CropName:            c.CropName,
		PlantedDate:         c.PlantedDate,
		ExpectedHarvestDate: c.ExpectedHarvestDate,
		QuantityPlanted:     c.QuantityPlanted,
		ExpectedYield:       c.ExpectedYield,
		Status:              c.Status,
		Notes:               c.Notes,
		ImageURL:            c.ImageURL,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (r CropRequest) apply(c *models.Crop) {
	c.CropName = strings.TrimSpace(r.CropName)
	c.PlantedDate = r.PlantedDate
	c.ExpectedHarvestDate = r.ExpectedHarvestDate
	c.QuantityPlanted = r.QuantityPlanted
	c.ExpectedYield = r.ExpectedYield
	c.Notes = r.Notes
	c.Status = models.CropStatus(r.Status)
	if c.Status == "" {
		c.Status = models.CropGrowing
	}
}

// POST /api/farms/:id/crops
func CreateCropHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body CropRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}
		if _, err := loadFarm(db, farmID); err != nil {
			return err
		}

		crop := models.Crop{FarmID: farmID}
		body.apply(&crop)
		if err := db.Create(&crop).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toCropResponse(crop))
	}
}

// GET /api/farms/:id/crops
func ListFarmCropsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var crops []models.Crop
		if err := db.Where("farm_id = ?", farmID).Order("id ASC").Find(&crops).Error; err != nil {
			return err
		}
		resp := make([]CropResponse, 0, len(crops))
		for _, cr := range crops {
			resp = append(resp, toCropResponse(cr))
		}
		return c.JSON(resp)
	}
}

func setCropImage(c *fiber.Ctx, db *gorm.DB, q *gorm.DB) error {
	var body PhotoRequest
	if err := request.Bind(c, &body); err != nil {
		return err
	}
	var crop models.Crop
	if err := q.First(&crop).Error; err != nil {
		return httperr.NotFound(err, "Crop not found")
	}
	if err := db.Model(&crop).Update("image_url", body.ImageURL).Error; err != nil {
		return err
	}
	return c.JSON(CropPhotoResponse{Status: "success", ImageURL: body.ImageURL})
}

// POST /api/farms/:id/crops/:crop_id/photo
func SetFarmCropPhotoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		cropID, err := request.ParamID(c, "crop_id")
		if err != nil {
			return err
		}
		return setCropImage(c, db, db.Where("id = ? AND farm_id = ?", cropID, farmID))
	}
}

// POST /api/crops/:id/photo
func SetCropPhotoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cropID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		return setCropImage(c, db, db.Where("id = ?", cropID))
	}
}

// PUT /api/crops/:id
func UpdateCropHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cropID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body CropRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var crop models.Crop
		if err := db.First(&crop, cropID).Error; err != nil {
			return httperr.NotFound(err, "Crop not found")
		}
		body.apply(&crop)
		if err := db.Save(&crop).Error; err != nil {
			return err
		}
		return c.JSON(toCropResponse(crop))
	}
}

// DELETE /api/crops/:id removes the crop and its problem reports. Activities,
// harvests and posts that referenced it are kept and detached.
func DeleteCropHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cropID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		actor := audit.Actor(c)

		err = db.Transaction(func(tx *gorm.DB) error {
			var crop models.Crop
			if err := tx.First(&crop, cropID).Error; err != nil {
				return httperr.NotFound(err, "Crop not found")
			}

			if err := tx.Where("crop_id = ?", cropID).Delete(&models.CropProblem{}).Error; err != nil {
				return err
			}
			for _, m := range []any{&models.Activity{}, &models.Harvest{}, &models.FarmPost{}} {
				if err := tx.Model(m).Where("crop_id = ?", cropID).Update("crop_id", nil).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&crop).Error; err != nil {
				return err
			}

			return audit.WriteLog(tx, audit.LogOptions{
				UserID:      actor,
				EntityType:  "crop",
				EntityID:    crop.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Crop deleted: %s", crop.CropName),
				Before:      toCropResponse(crop),
			})
		})
		if err != nil {
			return err
		}
		return c.JSON(StatusResponse{Status: "deleted"})
	}
}
