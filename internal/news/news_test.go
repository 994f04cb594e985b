package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssFeed(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>t</title>` +
		strings.Join(items, "") + `</channel></rss>`
}

func itemXML(title, pubDate string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>https://example.test/%s</link>`+
		`<description>&lt;a href="x"&gt;%s&lt;/a&gt;&amp;nbsp; details</description><pubDate>%s</pubDate></item>`,
		title, title, title, pubDate)
}

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/crops", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(
			itemXML("c1", "Mon, 02 Jun 2025 10:00:00 GMT"),
			`<item><title>  </title></item>`,
			itemXML("c2", "Mon, 02 Jun 2025 09:00:00 +0000"),
			itemXML("c3", "not a date"),
			itemXML("c4", "Mon, 02 Jun 2025 07:00:00 GMT"),
		))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/garbage", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<rss><channel><item>")
	})
	mux.HandleFunc("/untitled", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(
			`<item><link>https://example.test/u1</link><pubDate>Tue, 03 Jun 2025 08:00:00 GMT</pubDate></item>`,
			`<item><title></title></item>`,
		))
	})
	mux.HandleFunc("/herds", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(itemXML("h1", "Tue, 03 Jun 2025 08:00:00 GMT")))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func fixedNow() time.Time { return time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC) }

func TestCollect_KeepsFeedOrderAndSkipsFailures(t *testing.T) {
	srv := newFeedServer(t)
	agg := NewAggregator(srv.Client(), []Feed{
		{URL: srv.URL + "/broken", Category: "Broken", Description: "b"},
		{URL: srv.URL + "/crops", Category: "Agriculture", Description: "Actualités agricoles"},
		{URL: srv.URL + "/garbage", Category: "Garbage", Description: "g"},
		{URL: srv.URL + "/herds", Category: "Élevage", Description: "Actualités d'élevage"},
	})
	agg.now = fixedNow

	resp := agg.Collect(context.Background())

	require.Equal(t, "success", resp.Status)
	require.Equal(t, 4, resp.Count)
	var titles []string
	for _, a := range resp.Articles {
		titles = append(titles, a.Title)
	}
	assert.Equal(t, []string{"c1", "c2", "c3", "h1"}, titles)

	first := resp.Articles[0]
	assert.Equal(t, "Agriculture", first.Category)
	assert.Equal(t, "Actualités agricoles", first.Source)
	assert.Equal(t, "https://example.test/c1", first.Link)
	assert.Equal(t, "c1 details", first.Description)
	assert.Nil(t, first.ImageURL)
	assert.True(t, first.PubDate.Equal(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)))

	assert.True(t, resp.Articles[1].PubDate.Equal(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, fixedNow(), resp.Articles[2].PubDate)
}

func TestCollect_FallbackWhenEveryFeedFails(t *testing.T) {
	srv := newFeedServer(t)
	agg := NewAggregator(srv.Client(), []Feed{
		{URL: srv.URL + "/broken", Category: "Broken"},
		{URL: srv.URL + "/missing", Category: "Missing"},
	})
	agg.now = fixedNow

	resp := agg.Collect(context.Background())

	assert.Equal(t, "fallback", resp.Status)
	assert.NotEmpty(t, resp.Message)
	require.Len(t, resp.Articles, 5)
	assert.Equal(t, "Alerte Météo", resp.Articles[0].Title)
	assert.Equal(t, "Santé animale", resp.Articles[4].Category)
}

func TestCollect_TimeoutCountsAsFailure(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)

	agg := NewAggregator(&http.Client{Timeout: 50 * time.Millisecond}, []Feed{{URL: slow.URL, Category: "Slow"}})
	resp := agg.Collect(context.Background())

	assert.Equal(t, "fallback", resp.Status)
}

func TestCollect_MissingTitleUsesFeedDescription(t *testing.T) {
	srv := newFeedServer(t)
	agg := NewAggregator(srv.Client(), []Feed{
		{URL: srv.URL + "/untitled", Category: "Local", Description: "Actualités locales Sénégal"},
	})

	resp := agg.Collect(context.Background())

	require.Equal(t, "success", resp.Status)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Actualités locales Sénégal", resp.Articles[0].Title)
	assert.Equal(t, "https://example.test/u1", resp.Articles[0].Link)
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, `Pluie "forte" & vent`, CleanDescription("<p>Pluie &quot;forte&quot;</p>\n\n  &amp; <b>vent</b>"))

	long := strings.Repeat("é", maxDescriptionLen+10)
	got := CleanDescription(long)
	assert.Equal(t, strings.Repeat("é", maxDescriptionLen)+"...", got)

	exact := strings.Repeat("a", maxDescriptionLen)
	assert.Equal(t, exact, CleanDescription(exact))
}

func TestAgriculturalNewsHandler(t *testing.T) {
	srv := newFeedServer(t)
	agg := NewAggregator(srv.Client(), []Feed{{URL: srv.URL + "/herds", Category: "Élevage", Description: "d"}})

	app := testutil.NewApp()
	app.Get("/api/news/agricultural", AgriculturalNewsHandler(agg))

	var got Response
	code := testutil.Do(t, app, http.MethodGet, "/api/news/agricultural", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", got.Status)
	require.Len(t, got.Articles, 1)
	assert.Equal(t, "h1", got.Articles[0].Title)
}
