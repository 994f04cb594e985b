package market

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketPrices(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	g := app.Group("/api/market")
	g.Get("/prices", ListPricesHandler(db))
	g.Post("/prices", CreatePriceHandler(db))
	g.Get("/prices/region/:region", RegionPricesHandler(db))
	g.Get("/prices/:product", ProductPricesHandler(db))

	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	seed := []PriceRequest{
		{ProductName: "Oignon local", Region: "Dakar", PricePerKg: 450},
		{ProductName: "Riz brisé", Region: "Saint-Louis", PricePerKg: 350},
		{ProductName: "oignon importé", Region: "Thiès", PricePerKg: 500},
	}
	for i := range seed {
		d := day.AddDate(0, 0, i)
		seed[i].PriceDate = &d
		require.Equal(t, http.StatusCreated, testutil.Do(t, app, http.MethodPost, "/api/market/prices", seed[i], nil))
	}

	code := testutil.Do(t, app, http.MethodPost, "/api/market/prices", PriceRequest{ProductName: "Mil", Region: "Kaolack"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var all []PriceResponse
	testutil.Do(t, app, http.MethodGet, "/api/market/prices", nil, &all)
	require.Len(t, all, 3)
	assert.Equal(t, "oignon importé", all[0].ProductName)
	assert.Equal(t, "CFA", all[0].Currency)

	var onions []PriceResponse
	testutil.Do(t, app, http.MethodGet, "/api/market/prices/OIGNON", nil, &onions)
	assert.Len(t, onions, 2)

	var region []PriceResponse
	testutil.Do(t, app, http.MethodGet, "/api/market/prices/region/"+url.PathEscape("Saint-Louis"), nil, &region)
	require.Len(t, region, 1)
	assert.Equal(t, "Riz brisé", region[0].ProductName)
}
