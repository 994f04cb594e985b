package advice

import (
	"net/http"
	"testing"

	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropLookup(t *testing.T) {
	tests := []struct {
		topic string
		title string
	}{
		{"Maïs", "Guide de culture du maïs"},
		{"riz paddy", "Guide de culture du riz"},
		{"ara", "Guide de culture de l'arachide"},
		{"TOMATES cerises", "Guide de culture de la tomate"},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.title, Crop(tt.topic).Title)
		})
	}
}

func TestFirstMatchWinsInTableOrder(t *testing.T) {
	// "a" is contained in maïs, arachide and tomate; maïs comes first.
	assert.Equal(t, "Guide de culture du maïs", Crop("a").Title)
}

func TestUnknownCropGetsGenericAdvice(t *testing.T) {
	a := Crop("manioc")
	assert.Equal(t, "Conseils pour manioc", a.Title)
	assert.Len(t, a.Tips, 5)
	assert.NotNil(t, a.Warnings)
	assert.Empty(t, a.Warnings)
}

func TestLivestockLookup(t *testing.T) {
	assert.Equal(t, "Guide d'élevage des chèvres", Livestock("Goats").Title)
	assert.Equal(t, "Conseils pour l'élevage de camel", Livestock("camel").Title)
}

func TestResultsAreIndependentCopies(t *testing.T) {
	a := Crop("riz")
	a.Tips[0] = "changed"
	assert.NotEqual(t, "changed", Crop("riz").Tips[0])
}

func TestAdviceHandler(t *testing.T) {
	app := testutil.NewApp()
	app.Post("/api/advice", AdviceHandler())

	var got Advice
	code := testutil.Do(t, app, http.MethodPost, "/api/advice", AdviceRequest{Type: "livestock", Topic: "poultry"}, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Guide d'élevage de la volaille", got.Title)

	var errBody map[string]string
	code = testutil.Do(t, app, http.MethodPost, "/api/advice", AdviceRequest{Type: "fishing", Topic: "tilapia"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "type must be one of [crop livestock]", errBody["error"])
}
