package harvest

import (
	"strings"
	"time"

	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SaleRequest struct {
	HarvestID        *uint   `json:"harvest_id"`
	FarmID           *uint   `json:"farm_id"`
	UserID           *uint   `json:"user_id"`
	ProductName      string  `json:"product_name" validate:"required,max=200"`
	Quantity         float64 `json:"quantity" validate:"gt=0"`
	PricePerUnit     float64 `json:"price_per_unit" validate:"gte=0"`
	Currency         string  `json:"currency" validate:"max=10"`
	DeliveryLocation string  `json:"delivery_location" validate:"max=200"`
	Contact          string  `json:"contact" validate:"max=100"`
}

type SaleResponse struct {
	ID               uint      `json:"id"`
	HarvestID        *uint     `json:"harvest_id"`
	FarmID           *uint     `json:"farm_id"`
	UserID           *uint     `json:"user_id"`
	ProductName      string    `json:"product_name"`
	Quantity         float64   `json:"quantity"`
	PricePerUnit     float64   `json:"price_per_unit"`
	Total            float64   `json:"total"`
	Currency         string    `json:"currency"`
	DeliveryLocation string    `json:"delivery_location"`
	Contact          string    `json:"contact"`
	CreatedAt        time.Time `json:"created_at"`
}

func toSaleResponse(s models.Sale) SaleResponse {
	return SaleResponse{
		ID:               s.ID,
		HarvestID:        s.HarvestID,
		FarmID:           s.FarmID,
		UserID:           s.UserID,
		ProductName:      s.ProductName,
		Quantity:         s.Quantity,
		PricePerUnit:     s.PricePerUnit,
		Total:            s.Quantity * s.PricePerUnit,
		Currency:         s.Currency,
		DeliveryLocation: s.DeliveryLocation,
		Contact:          s.Contact,
		CreatedAt:        s.CreatedAt,
	}
}

// POST /api/sales
// A sale tied to a harvest inherits the harvest's farm so farm deletion can
// find it.
func CreateSaleHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaleRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		sale := models.Sale{
			HarvestID:        body.HarvestID,
			FarmID:           body.FarmID,
			UserID:           body.UserID,
			ProductName:      strings.TrimSpace(body.ProductName),
			Quantity:         body.Quantity,
			PricePerUnit:     body.PricePerUnit,
			Currency:         strings.ToUpper(strings.TrimSpace(body.Currency)),
			DeliveryLocation: body.DeliveryLocation,
			Contact:          body.Contact,
		}
		if sale.Currency == "" {
			sale.Currency = "CFA"
		}

		if body.HarvestID != nil {
			var h models.Harvest
			if err := db.First(&h, *body.HarvestID).Error; err != nil {
				return httperr.NotFound(err, "Harvest not found")
			}
			if body.FarmID != nil && *body.FarmID != h.FarmID {
				return fiber.NewError(fiber.StatusBadRequest, "harvest does not belong to farm")
			}
			sale.FarmID = &h.FarmID
		} else if body.FarmID != nil {
			var farm models.Farm
			if err := db.Select("id").First(&farm, *body.FarmID).Error; err != nil {
				return httperr.NotFound(err, "Farm not found")
			}
		}

		if err := db.Create(&sale).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
	}
}

func listSales(c *fiber.Ctx, db *gorm.DB, column, param string) error {
	id, err := request.ParamID(c, param)
	if err != nil {
		return err
	}
	var items []models.Sale
	if err := db.Where(column+" = ?", id).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return err
	}
	resp := make([]SaleResponse, 0, len(items))
	for _, s := range items {
		resp = append(resp, toSaleResponse(s))
	}
	return c.JSON(resp)
}

// GET /api/sales/user/:user_id
func ListUserSalesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listSales(c, db, "user_id", "user_id")
	}
}

// GET /api/sales/harvest/:harvest_id
func ListHarvestSalesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listSales(c, db, "harvest_id", "harvest_id")
	}
}
