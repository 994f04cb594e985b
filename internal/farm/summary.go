package farm

import (
	"time"

	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SummaryResponse struct {
	FarmID            uint           `json:"farm_id"`
	FarmName          string         `json:"farm_name"`
	From              string         `json:"from,omitempty"`
	To                string         `json:"to,omitempty"`
	CropsByStatus     map[string]int `json:"crops_by_status"`
	TotalCrops        int            `json:"total_crops"`
	Harvests          int64          `json:"harvests"`
	EstimatedQuantity float64        `json:"estimated_quantity"`
	ActualQuantity    float64        `json:"actual_quantity"`
	Sales             int64          `json:"sales"`
	SoldQuantity      float64        `json:"sold_quantity"`
	Revenue           float64        `json:"revenue"`
	LivestockHeads    int64          `json:"livestock_heads"`
	OpenProblems      int64          `json:"open_problems"`
	Posts             int64          `json:"posts"`
	Followers         int            `json:"followers"`
}

func parseDay(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be YYYY-MM-DD")
	}
	return &t, nil
}

func inRange(q *gorm.DB, col string, from, to *time.Time) *gorm.DB {
	if from != nil {
		q = q.Where(col+" >= ?", *from)
	}
	if to != nil {
		q = q.Where(col+" < ?", to.AddDate(0, 0, 1))
	}
	return q
}

// GET /api/farms/:id/summary?from=2024-01-01&to=2024-12-31
// Harvest and sale totals honour the optional date range; the other figures
// describe the farm as it is now.
func FarmSummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		from, err := parseDay(c, "from")
		if err != nil {
			return err
		}
		to, err := parseDay(c, "to")
		if err != nil {
			return err
		}
		if from != nil && to != nil && to.Before(*from) {
			return fiber.NewError(fiber.StatusBadRequest, "to must not be before from")
		}

		farm, err := loadFarm(db, id)
		if err != nil {
			return err
		}

		resp := SummaryResponse{
			FarmID:        farm.ID,
			FarmName:      farm.Name,
			CropsByStatus: map[string]int{},
		}
		if from != nil {
			resp.From = from.Format("2006-01-02")
		}
		if to != nil {
			resp.To = to.Format("2006-01-02")
		}

		var statusRows []struct {
			Status string
			Count  int
		}
		if err := db.Model(&models.Crop{}).
			Select("status, COUNT(*) AS count").
			Where("farm_id = ?", id).
			Group("status").
			Scan(&statusRows).Error; err != nil {
			return err
		}
		for _, r := range statusRows {
			resp.CropsByStatus[r.Status] = r.Count
			resp.TotalCrops += r.Count
		}

		var harvest struct {
			Count     int64
			Estimated float64
			Actual    float64
		}
		if err := inRange(db.Model(&models.Harvest{}), "harvest_date", from, to).
			Select("COUNT(*) AS count, COALESCE(SUM(estimated_quantity), 0) AS estimated, COALESCE(SUM(actual_quantity), 0) AS actual").
			Where("farm_id = ?", id).
			Scan(&harvest).Error; err != nil {
			return err
		}
		resp.Harvests, resp.EstimatedQuantity, resp.ActualQuantity = harvest.Count, harvest.Estimated, harvest.Actual

		var sales struct {
			Count    int64
			Quantity float64
			Revenue  float64
		}
		harvestIDs := db.Model(&models.Harvest{}).Select("id").Where("farm_id = ?", id)
		if err := inRange(db.Model(&models.Sale{}), "created_at", from, to).
			Select("COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(quantity * price_per_unit), 0) AS revenue").
			Where("farm_id = ? OR harvest_id IN (?)", id, harvestIDs).
			Scan(&sales).Error; err != nil {
			return err
		}
		resp.Sales, resp.SoldQuantity, resp.Revenue = sales.Count, sales.Quantity, sales.Revenue

		if err := db.Model(&models.Livestock{}).
			Select("COALESCE(SUM(quantity), 0)").
			Where("farm_id = ?", id).
			Scan(&resp.LivestockHeads).Error; err != nil {
			return err
		}
		if err := db.Model(&models.CropProblem{}).
			Where("farm_id = ? AND status <> ?", id, models.ProblemResolved).
			Count(&resp.OpenProblems).Error; err != nil {
			return err
		}
		if err := db.Model(&models.FarmPost{}).Where("farm_id = ?", id).Count(&resp.Posts).Error; err != nil {
			return err
		}

		var profile models.FarmProfile
		if err := db.Where("farm_id = ?", id).Limit(1).Find(&profile).Error; err != nil {
			return err
		}
		resp.Followers = profile.TotalFollowers

		return c.JSON(resp)
	}
}
