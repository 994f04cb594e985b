package activity

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

type ActivityRequest struct {
	FarmID       uint       `json:"farm_id" validate:"required"`
	CropID       *uint      `json:"crop_id"`
	UserID       *uint      `json:"user_id"`
	ActivityType string     `json:"activity_type" validate:"required,max=100"`
	ActivityDate *time.Time `json:"activity_date"`
	Notes        string     `json:"notes" validate:"max=1000"`
	// nil keeps the stored photos on update; an empty list removes them.
	ImageURLs []string `json:"image_urls" validate:"omitempty,dive,required,max=500"`
}

// UpdateActivityRequest keeps the activity on its farm. A crop_id moves it to
// another crop of that farm; nil keeps the current crop.
type UpdateActivityRequest struct {
	CropID       *uint      `json:"crop_id"`
	ActivityType string     `json:"activity_type" validate:"required,max=100"`
	ActivityDate *time.Time `json:"activity_date"`
	Notes        string     `json:"notes" validate:"max=1000"`
	ImageURLs    []string   `json:"image_urls" validate:"omitempty,dive,required,max=500"`
}

type ActivityResponse struct {
	ID           uint      `json:"id"`
	FarmID       uint      `json:"farm_id"`
	CropID       *uint     `json:"crop_id"`
	UserID       *uint     `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	ActivityDate time.Time `json:"activity_date"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	ImageURLs    []string  `json:"image_urls"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toResponse(a models.Activity, urls []string) ActivityResponse {
	if urls == nil {
		urls = []string{}
	}
	return ActivityResponse{
		ID:           a.ID,
		FarmID:       a.FarmID,
		CropID:       a.CropID,
		UserID:       a.UserID,
		ActivityType: a.ActivityType,
		ActivityDate: a.ActivityDate,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		ImageURLs:    urls,
	}
}

func replacePhotos(tx *gorm.DB, activityID uint, urls []string) error {
	if err := tx.Where("activity_id = ?", activityID).Delete(&models.ActivityPhoto{}).Error; err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	photos := make([]models.ActivityPhoto, 0, len(urls))
	for _, u := range urls {
		photos = append(photos, models.ActivityPhoto{ActivityID: activityID, ImageURL: u})
	}
	return tx.Create(&photos).Error
}

// checkCrop returns a 404 unless cropID is nil or names a crop of farmID.
func checkCrop(tx *gorm.DB, farmID uint, cropID *uint) error {
	if cropID == nil {
		return nil
	}
	var n int64
	if err := tx.Model(&models.Crop{}).Where("id = ? AND farm_id = ?", *cropID, farmID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Crop not found")
	}
	return nil
}

func photoURLs(db *gorm.DB, activityIDs []uint) (map[uint][]string, error) {
	out := map[uint][]string{}
	if len(activityIDs) == 0 {
		return out, nil
	}
	var photos []models.ActivityPhoto
	if err := db.Where("activity_id IN ?", activityIDs).Order("id ASC").Find(&photos).Error; err != nil {
		return nil, err
	}
	for _, p := range photos {
		out[p.ActivityID] = append(out[p.ActivityID], p.ImageURL)
	}
	return out, nil
}

func list(c *fiber.Ctx, db *gorm.DB, column string, id uint) error {
	var items []models.Activity
	if err := db.Where(column+" = ?", id).
		Order("activity_date DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return err
	}

	ids := make([]uint, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	urls, err := photoURLs(db, ids)
	if err != nil {
		return err
	}

	resp := make([]ActivityResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, toResponse(a, urls[a.ID]))
	}
	return c.JSON(resp)
}

// POST /api/activities
func CreateActivityHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ActivityRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		act := models.Activity{
			FarmID:       body.FarmID,
			CropID:       body.CropID,
			UserID:       body.UserID,
			ActivityType: strings.TrimSpace(body.ActivityType),
			Notes:        body.Notes,
			ActivityDate: time.Now(),
		}
		if body.ActivityDate != nil {
			act.ActivityDate = *body.ActivityDate
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var farm models.Farm
			if err := tx.Select("id").First(&farm, body.FarmID).Error; err != nil {
				return httperr.NotFound(err, "Farm not found")
			}
			if err := checkCrop(tx, body.FarmID, body.CropID); err != nil {
				return err
			}
			if err := tx.Create(&act).Error; err != nil {
				return err
			}
			return replacePhotos(tx, act.ID, body.ImageURLs)
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(act, body.ImageURLs))
	}
}

// GET /api/activities/farm/:farm_id
func ListFarmActivitiesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		return list(c, db, "farm_id", farmID)
	}
}

// GET /api/activities/crop/:crop_id
func ListCropActivitiesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cropID, err := request.ParamID(c, "crop_id")
		if err != nil {
			return err
		}
		return list(c, db, "crop_id", cropID)
	}
}

// PUT /api/activities/:id
func UpdateActivityHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateActivityRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var act models.Activity
		var urls []string
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&act, id).Error; err != nil {
				return httperr.NotFound(err, "Activity not found")
			}
			if body.CropID != nil {
				if err := checkCrop(tx, act.FarmID, body.CropID); err != nil {
					return err
				}
				act.CropID = body.CropID
			}
			act.ActivityType = strings.TrimSpace(body.ActivityType)
			act.Notes = body.Notes
			if body.ActivityDate != nil {
				act.ActivityDate = *body.ActivityDate
			}
			if err := tx.Save(&act).Error; err != nil {
				return err
			}

			if body.ImageURLs != nil {
				urls = body.ImageURLs
				return replacePhotos(tx, act.ID, body.ImageURLs)
			}
			byID, err := photoURLs(tx, []uint{act.ID})
			urls = byID[act.ID]
			return err
		})
		if err != nil {
			return err
		}
		return c.JSON(toResponse(act, urls))
	}
}

// DELETE /api/activities/:id
func DeleteActivityHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		actor := audit.Actor(c)

		err = db.Transaction(func(tx *gorm.DB) error {
			var act models.Activity
			if err := tx.First(&act, id).Error; err != nil {
				return httperr.NotFound(err, "Activity not found")
			}
			byID, err := photoURLs(tx, []uint{act.ID})
			if err != nil {
				return err
			}
			if err := replacePhotos(tx, act.ID, nil); err != nil {
				return err
			}
			if err := tx.Delete(&act).Error; err != nil {
				return err
			}
			return audit.WriteLog(tx, audit.LogOptions{
				UserID:      actor,
				EntityType:  "activity",
				EntityID:    act.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Activity deleted: %s", act.ActivityType),
				Before:      toResponse(act, byID[act.ID]),
			})
		})
		if err != nil {
			return err
		}
		return c.JSON(MessageResponse{Message: "Activity deleted successfully"})
	}
}
