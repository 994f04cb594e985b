package harvest

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"mbaymi-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp(db *gorm.DB) *fiber.App {
	app := testutil.NewApp()
	h := app.Group("/api/harvests")
	h.Post("/", CreateHarvestHandler(db))
	h.Get("/farm/:farm_id", ListFarmHarvestsHandler(db))
	h.Get("/crop/:crop_id", ListCropHarvestsHandler(db))
	s := app.Group("/api/sales")
	s.Post("/", CreateSaleHandler(db))
	s.Get("/user/:user_id", ListUserSalesHandler(db))
	s.Get("/harvest/:harvest_id", ListHarvestSalesHandler(db))
	return app
}

func f(v float64) *float64 { return &v }

func TestHarvestsAndSales(t *testing.T) {
	db := testutil.NewDB(t)
	app := newApp(db)
	owner := testutil.CreateUser(t, db, "Ibrahima")
	farm := testutil.CreateFarm(t, db, owner.ID, "Ferme")
	other := testutil.CreateFarm(t, db, owner.ID, "Autre")
	crop := testutil.CreateCrop(t, db, farm.ID, "Riz")

	code := testutil.Do(t, app, http.MethodPost, "/api/harvests/",
		HarvestRequest{FarmID: other.ID, CropID: &crop.ID}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	early := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 1, 0)
	var first, second HarvestResponse
	require.Equal(t, http.StatusCreated, testutil.Do(t, app, http.MethodPost, "/api/harvests/",
		HarvestRequest{FarmID: farm.ID, CropID: &crop.ID, ActualQuantity: f(500), HarvestDate: &early}, &first))
	require.Equal(t, http.StatusCreated, testutil.Do(t, app, http.MethodPost, "/api/harvests/",
		HarvestRequest{FarmID: farm.ID, CropID: &crop.ID, ActualQuantity: f(300), HarvestDate: &late}, &second))

	var harvests []HarvestResponse
	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/harvests/farm/%d", farm.ID), nil, &harvests)
	require.Len(t, harvests, 2)
	assert.Equal(t, second.ID, harvests[0].ID)

	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/harvests/crop/%d", crop.ID), nil, &harvests)
	assert.Len(t, harvests, 2)

	var sale SaleResponse
	code = testutil.Do(t, app, http.MethodPost, "/api/sales/", SaleRequest{
		HarvestID: &first.ID, UserID: &owner.ID, ProductName: "Riz paddy", Quantity: 100, PricePerUnit: 250,
	}, &sale)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "CFA", sale.Currency)
	require.NotNil(t, sale.FarmID)
	assert.Equal(t, farm.ID, *sale.FarmID)
	assert.InDelta(t, 25000.0, sale.Total, 0.001)

	code = testutil.Do(t, app, http.MethodPost, "/api/sales/", SaleRequest{
		HarvestID: &first.ID, FarmID: &other.ID, ProductName: "Riz", Quantity: 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = testutil.Do(t, app, http.MethodPost, "/api/sales/", SaleRequest{ProductName: "Riz", Quantity: 0}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var sales []SaleResponse
	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/sales/user/%d", owner.ID), nil, &sales)
	assert.Len(t, sales, 1)
	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/sales/harvest/%d", second.ID), nil, &sales)
	assert.Empty(t, sales)
}
