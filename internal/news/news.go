// Package news aggregates agricultural headlines from a fixed set of RSS feeds.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	itemsPerFeed      = 3
	maxDescriptionLen = 300
)

type Feed struct {
	URL         string
	Category    string
	Description string // shown as the article source
}

var DefaultFeeds = []Feed{
	{URL: "https://news.google.com/rss?q=agriculture&ceid=SN:fr", Category: "Agriculture", Description: "Actualités agricoles"},
	{URL: "https://news.google.com/rss?q=%C3%A9levage+b%C3%A9tail&ceid=SN:fr", Category: "Élevage", Description: "Actualités d'élevage"},
	{URL: "https://news.google.com/rss?q=Senegal+agriculture&ceid=SN:fr", Category: "Local", Description: "Actualités locales Sénégal"},
	{URL: "https://news.google.com/rss?q=agriculture+international&hl=fr", Category: "International", Description: "Actualités internationales"},
}

type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	PubDate     time.Time `json:"pubDate"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	Link        string    `json:"link,omitempty"`
}

type Response struct {
	Status   string    `json:"status"`
	Count    int       `json:"count,omitempty"`
	Message  string    `json:"message,omitempty"`
	Articles []Article `json:"articles"`
}

type rss struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       *string `xml:"title"`
	Description string  `xml:"description"`
	Link        string  `xml:"link"`
	PubDate     string  `xml:"pubDate"`
	Image       struct {
		URL string `xml:"url"`
	} `xml:"image"`
}

type Aggregator struct {
	client *http.Client
	feeds  []Feed
	now    func() time.Time
}

// NewAggregator reads feeds with client. The client's timeout bounds each feed.
func NewAggregator(client *http.Client, feeds []Feed) *Aggregator {
	return &Aggregator{client: client, feeds: feeds, now: time.Now}
}

// Collect fetches every feed concurrently and returns their articles in feed
// order. Failing feeds are skipped; when nothing could be read the fixed
// fallback articles are returned instead.
func (a *Aggregator) Collect(ctx context.Context) Response {
	results := make([][]Article, len(a.feeds))

	var wg sync.WaitGroup
	for i, f := range a.feeds {
		wg.Add(1)
		go func(i int, f Feed) {
			defer wg.Done()
			articles, err := a.fetch(ctx, f)
			if err != nil {
				slog.Warn("news feed skipped", "category", f.Category, "error", err)
				return
			}
			results[i] = articles
		}(i, f)
	}
	wg.Wait()

	var articles []Article
	for _, r := range results {
		articles = append(articles, r...)
	}
	if len(articles) == 0 {
		return Response{
			Status:   "fallback",
			Message:  "Could not fetch live news",
			Articles: fallbackArticles(a.now()),
		}
	}
	return Response{Status: "success", Count: len(articles), Articles: articles}
}

func (a *Aggregator) fetch(ctx context.Context, f Feed) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; mbaymi-news)")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var doc rss
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	articles := make([]Article, 0, itemsPerFeed)
	for _, item := range doc.Items {
		if len(articles) == itemsPerFeed {
			break
		}
		// Without a <title> element the feed description stands in; a blank
		// title skips the item.
		title := f.Description
		if item.Title != nil {
			title = strings.TrimSpace(*item.Title)
		}
		if title == "" {
			continue
		}
		var image *string
		if u := strings.TrimSpace(item.Image.URL); u != "" {
			image = &u
		}
		articles = append(articles, Article{
			Title:       title,
			Description: CleanDescription(item.Description),
			ImageURL:    image,
			PubDate:     a.parseDate(item.PubDate),
			Source:      f.Description,
			Category:    f.Category,
			Link:        strings.TrimSpace(item.Link),
		})
	}
	return articles, nil
}

// CleanDescription turns an HTML snippet into plain text with collapsed
// whitespace, truncated to maxDescriptionLen runes.
func CleanDescription(raw string) string {
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen]) + "..."
	}
	return text
}

func (a *Aggregator) parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return a.now()
}

func fallbackArticles(now time.Time) []Article {
	items := []struct{ title, description, source, category string }{
		{"Alerte Météo", "Pluie prévue ce weekend - Bonne nouvelle pour les cultures", "Météo", "Météo"},
		{"Prix en hausse", "Le maïs atteint 850 FCFA/kg - Plus haut en 30 jours", "Marché", "Prix"},
		{"Alerte Ravageurs", "Attention aux chenilles légionnaires dans votre région", "Alertes", "Santé des cultures"},
		{"Conseil Irrigation", "Augmentez l'irrigation de 20% cette semaine", "Conseils", "Technique"},
		{"Vaccin disponible", "Nouveau vaccin pour le bétail arrivé - Réservez maintenant", "Vétérinaire", "Santé animale"},
	}
	out := make([]Article, len(items))
	for i, it := range items {
		out[i] = Article{
			Title:       it.title,
			Description: it.description,
			PubDate:     now,
			Source:      it.source,
			Category:    it.category,
		}
	}
	return out
}
