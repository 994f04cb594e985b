package market

import (
	"strings"
	"time"

	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PriceRequest struct {
	ProductName string     `json:"product_name" validate:"required,max=100"`
	Region      string     `json:"region" validate:"required,max=100"`
	PricePerKg  float64    `json:"price_per_kg" validate:"gt=0"`
	Currency    string     `json:"currency" validate:"max=10"`
	PriceDate   *time.Time `json:"price_date"`
	Source      string     `json:"source" validate:"max=100"`
}

type PriceResponse struct {
	ID          uint      `json:"id"`
	ProductName string    `json:"product_name"`
	Region      string    `json:"region"`
	PricePerKg  float64   `json:"price_per_kg"`
	Currency    string    `json:"currency"`
	PriceDate   time.Time `json:"price_date"`
	Source      string    `json:"source"`
}

func toResponse(p models.MarketPrice) PriceResponse {
	return PriceResponse{
		ID:          p.ID,
		ProductName: p.ProductName,
		Region:      p.Region,
		PricePerKg:  p.PricePerKg,
		Currency:    p.Currency,
		PriceDate:   p.PriceDate,
		Source:      p.Source,
	}
}

func respond(c *fiber.Ctx, q *gorm.DB) error {
	skip, limit, err := request.Page(c)
	if err != nil {
		return err
	}
	var prices []models.MarketPrice
	if err := q.Order("price_date DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Find(&prices).Error; err != nil {
		return err
	}
	resp := make([]PriceResponse, 0, len(prices))
	for _, p := range prices {
		resp = append(resp, toResponse(p))
	}
	return c.JSON(resp)
}

// GET /api/market/prices
func ListPricesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, db)
	}
}

// GET /api/market/prices/region/:region
func RegionPricesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		region := strings.TrimSpace(c.Params("region"))
		if region == "" {
			return fiber.NewError(fiber.StatusBadRequest, "region is required")
		}
		return respond(c, db.Where("LOWER(region) = ?", strings.ToLower(region)))
	}
}

// GET /api/market/prices/:product matches product names case-insensitively.
func ProductPricesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		product := strings.TrimSpace(c.Params("product"))
		if product == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product is required")
		}
		return respond(c, db.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(product)+"%"))
	}
}

// POST /api/market/prices
func CreatePriceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PriceRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		price := models.MarketPrice{
			ProductName: strings.TrimSpace(body.ProductName),
			Region:      strings.TrimSpace(body.Region),
			PricePerKg:  body.PricePerKg,
			Currency:    strings.ToUpper(strings.TrimSpace(body.Currency)),
			PriceDate:   time.Now(),
			Source:      body.Source,
		}
		if price.Currency == "" {
			price.Currency = "CFA"
		}
		if body.PriceDate != nil {
			price.PriceDate = *body.PriceDate
		}
		if err := db.Create(&price).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(price))
	}
}
