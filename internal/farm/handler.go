package farm

import (
	"strings"
	"time"

	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type FarmRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Location     string   `json:"location" validate:"required,max=200"`
	SizeHectares *float64 `json:"size_hectares" validate:"omitempty,gte=0"`
	SoilType     string   `json:"soil_type" validate:"max=50"`
	ImageURL     string   `json:"image_url" validate:"max=500"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type PhotoRequest struct {
	ImageURL string `json:"image_url" validate:"required,max=500"`
}

type PhotoResponse struct {
	ID        uint      `json:"id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type FarmResponse struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	SizeHectares *float64        `json:"size_hectares"`
	SoilType     string          `json:"soil_type"`
	ImageURL     string          `json:"image_url"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Photos       []PhotoResponse `json:"photos"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func toFarmResponse(f models.Farm, photos []models.FarmPhoto) FarmResponse {
	resp := FarmResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		Name:         f.Name,
		Location:     f.Location,
		SizeHectares: f.SizeHectares,
		SoilType:     f.SoilType,
		ImageURL:     f.ImageURL,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
		Photos:       make([]PhotoResponse, 0, len(photos)),
	}
	for _, p := range photos {
		resp.Photos = append(resp.Photos, PhotoResponse{ID: p.ID, ImageURL: p.ImageURL, CreatedAt: p.CreatedAt})
	}
	return resp
}

func (r FarmRequest) apply(f *models.Farm) {
	f.Name = strings.TrimSpace(r.Name)
	f.Location = strings.TrimSpace(r.Location)
	f.SizeHectares = r.SizeHectares
	f.SoilType = r.SoilType
	f.ImageURL = r.ImageURL
	f.Latitude = r.Latitude
	f.Longitude = r.Longitude
}

func loadFarm(db *gorm.DB, id uint) (*models.Farm, error) {
	var f models.Farm
	if err := db.First(&f, id).Error; err != nil {
		return nil, httperr.NotFound(err, "Farm not found")
	}
	return &f, nil
}

func farmPhotos(db *gorm.DB, farmID uint) ([]models.FarmPhoto, error) {
	var photos []models.FarmPhoto
	err := db.Where("farm_id = ?", farmID).Order("created_at DESC").Order("id DESC").Find(&photos).Error
	return photos, err
}

// -------------------------
// Farm CRUD
// -------------------------

// POST /api/farms?user_id=1
func CreateFarmHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.QueryID(c, "user_id")
		if err != nil {
			return err
		}
		var body FarmRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var n int64
		if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		farm := models.Farm{UserID: userID}
		body.apply(&farm)
		if err := db.Create(&farm).Error; err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toFarmResponse(farm, nil))
	}
}

// GET /api/farms/:id
func GetFarmHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		farm, err := loadFarm(db, id)
		if err != nil {
			return err
		}
		photos, err := farmPhotos(db, id)
		if err != nil {
			return err
		}
		return c.JSON(toFarmResponse(*farm, photos))
	}
}

// GET /api/farms/user/:user_id
func ListUserFarmsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "user_id")
		if err != nil {
			return err
		}

		var farms []models.Farm
		if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&farms).Error; err != nil {
			return err
		}

		ids := make([]uint, 0, len(farms))
		for _, f := range farms {
			ids = append(ids, f.ID)
		}
		byFarm := map[uint][]models.FarmPhoto{}
		if len(ids) > 0 {
			var photos []models.FarmPhoto
			if err := db.Where("farm_id IN ?", ids).Order("created_at DESC").Find(&photos).Error; err != nil {
				return err
			}
			for _, p := range photos {
				byFarm[p.FarmID] = append(byFarm[p.FarmID], p)
			}
		}

		resp := make([]FarmResponse, 0, len(farms))
		for _, f := range farms {
			resp = append(resp, toFarmResponse(f, byFarm[f.ID]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/farms/:id
func UpdateFarmHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body FarmRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		farm, err := loadFarm(db, id)
		if err != nil {
			return err
		}
		body.apply(farm)
		if err := db.Save(farm).Error; err != nil {
			return err
		}

		photos, err := farmPhotos(db, id)
		if err != nil {
			return err
		}
		return c.JSON(toFarmResponse(*farm, photos))
	}
}

// -------------------------
// Photos
// -------------------------

// POST /api/farms/:id/photos
func AddFarmPhotoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body PhotoRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}
		if _, err := loadFarm(db, id); err != nil {
			return err
		}

		photo := models.FarmPhoto{FarmID: id, ImageURL: body.ImageURL}
		if err := db.Create(&photo).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(PhotoResponse{ID: photo.ID, ImageURL: photo.ImageURL, CreatedAt: photo.CreatedAt})
	}
}

// GET /api/farms/:id/photos
func ListFarmPhotosHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		photos, err := farmPhotos(db, id)
		if err != nil {
			return err
		}
		return c.JSON(toFarmResponse(models.Farm{}, photos).Photos)
	}
}

// DELETE /api/farms/:id/photos/:photo_id
func DeleteFarmPhotoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		photoID, err := request.ParamID(c, "photo_id")
		if err != nil {
			return err
		}

		res := db.Where("id = ? AND farm_id = ?", photoID, id).Delete(&models.FarmPhoto{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Photo not found")
		}
		return c.JSON(StatusResponse{Status: "deleted"})
	}
}

// DELETE /api/farms/:id/profile clears the farm's profile image.
func ClearFarmImageHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		farm, err := loadFarm(db, id)
		if err != nil {
			return err
		}
		if err := db.Model(farm).Update("image_url", "").Error; err != nil {
			return err
		}
		return c.JSON(StatusResponse{Status: "deleted"})
	}
}
