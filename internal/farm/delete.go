package farm

import (
	"fmt"

	"mbaymi-backend/internal/audit"
	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RemovedCounts reports how many dependent rows a farm deletion removed.
type RemovedCounts struct {
	Photos         int64 `json:"photos"`
	Crops          int64 `json:"crops"`
	Activities     int64 `json:"activities"`
	ActivityPhotos int64 `json:"activity_photos"`
	Harvests       int64 `json:"harvests"`
	Sales          int64 `json:"sales"`
	Livestock      int64 `json:"livestock"`
	CropProblems   int64 `json:"crop_problems"`
	Posts          int64 `json:"posts"`
	Profiles       int64 `json:"profiles"`
	Followers      int64 `json:"followers"`
}

type DeleteFarmResponse struct {
	Status  string        `json:"status"`
	Removed RemovedCounts `json:"removed"`
}

func ids(tx *gorm.DB, model any, farmID uint) ([]uint, error) {
	var out []uint
	err := tx.Model(model).Where("farm_id = ?", farmID).Pluck("id", &out).Error
	return out, err
}

func del(tx *gorm.DB, n *int64, model any, query string, args ...any) error {
	res := tx.Where(query, args...).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	*n = res.RowsAffected
	return nil
}

// DeleteFarm removes a farm and every row that hangs off it inside one
// transaction, then records the deletion in the audit log.
func DeleteFarm(db *gorm.DB, farmID uint, actor *uint) (RemovedCounts, error) {
	var removed RemovedCounts

	err := db.Transaction(func(tx *gorm.DB) error {
		var farm models.Farm
		if err := tx.First(&farm, farmID).Error; err != nil {
			return httperr.NotFound(err, "Farm not found")
		}

		cropIDs, err := ids(tx, &models.Crop{}, farmID)
		if err != nil {
			return err
		}
		activityIDs, err := ids(tx, &models.Activity{}, farmID)
		if err != nil {
			return err
		}
		harvestIDs, err := ids(tx, &models.Harvest{}, farmID)
		if err != nil {
			return err
		}

		if len(activityIDs) > 0 {
			if err := del(tx, &removed.ActivityPhotos, &models.ActivityPhoto{}, "activity_id IN ?", activityIDs); err != nil {
				return err
			}
		}
		if err := del(tx, &removed.Activities, &models.Activity{}, "farm_id = ?", farmID); err != nil {
			return err
		}

		salesQuery, salesArgs := "farm_id = ?", []any{farmID}
		if len(harvestIDs) > 0 {
			salesQuery, salesArgs = "farm_id = ? OR harvest_id IN ?", []any{farmID, harvestIDs}
		}
		if err := del(tx, &removed.Sales, &models.Sale{}, salesQuery, salesArgs...); err != nil {
			return err
		}
		if err := del(tx, &removed.Harvests, &models.Harvest{}, "farm_id = ?", farmID); err != nil {
			return err
		}

		problemsQuery, problemsArgs := "farm_id = ?", []any{farmID}
		if len(cropIDs) > 0 {
			problemsQuery, problemsArgs = "farm_id = ? OR crop_id IN ?", []any{farmID, cropIDs}
		}
		if err := del(tx, &removed.CropProblems, &models.CropProblem{}, problemsQuery, problemsArgs...); err != nil {
			return err
		}

		steps := []struct {
			n     *int64
			model any
		}{
			{&removed.Photos, &models.FarmPhoto{}},
			{&removed.Crops, &models.Crop{}},
			{&removed.Livestock, &models.Livestock{}},
			{&removed.Posts, &models.FarmPost{}},
			{&removed.Profiles, &models.FarmProfile{}},
			{&removed.Followers, &models.FarmFollowing{}},
		}
		for _, s := range steps {
			if err := del(tx, s.n, s.model, "farm_id = ?", farmID); err != nil {
				return err
			}
		}

		if err := tx.Delete(&farm).Error; err != nil {
			return err
		}

		return audit.WriteLog(tx, audit.LogOptions{
			UserID:      actor,
			EntityType:  "farm",
			EntityID:    farm.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Farm deleted: %s", farm.Name),
			Before: map[string]any{
				"farm":    toFarmResponse(farm, nil),
				"removed": removed,
			},
		})
	})
	return removed, err
}

// DELETE /api/farms/:id
func DeleteFarmHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		removed, err := DeleteFarm(db.WithContext(c.UserContext()), id, audit.Actor(c))
		if err != nil {
			return err
		}
		return c.JSON(DeleteFarmResponse{Status: "deleted", Removed: removed})
	}
}
