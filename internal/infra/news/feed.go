package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://newsapi.org/v2/top-headlines"

// Headline is one cached news item served on the dashboard feed.
type Headline struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// Feed polls a newsapi-compatible endpoint on an interval and serves the last
// good copy. A failed refresh keeps the stale cache rather than dropping it.
type Feed struct {
	endpoint string
	apiKey   string
	country  string
	refresh  time.Duration
	client   *http.Client
	logger   *zap.Logger

	mu        sync.RWMutex
	headlines []Headline
	fetchedAt time.Time
}

func NewFeed(endpoint, apiKey, country string, refresh time.Duration, logger *zap.Logger) *Feed {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if country == "" {
		country = "us"
	}
	if refresh <= 0 {
		refresh = 5 * time.Minute
	}
	return &Feed{
		endpoint: endpoint,
		apiKey:   apiKey,
		country:  country,
		refresh:  refresh,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// Run fetches once immediately and then on every tick until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	if err := f.Fetch(ctx); err != nil {
		f.logger.Warn("initial news fetch failed", zap.Error(err))
	}

	ticker := time.NewTicker(f.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.Fetch(ctx); err != nil {
				f.logger.Warn("news refresh failed, serving stale cache", zap.Error(err))
			}
		}
	}
}

// Headlines returns a copy of the cached items.
func (f *Feed) Headlines() []Headline {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Headline, len(f.headlines))
	copy(out, f.headlines)
	return out
}

// Fetch refreshes the cache from the remote endpoint.
func (f *Feed) Fetch(ctx context.Context) error {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("country", f.country)
	q.Set("apiKey", f.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("news request failed with status %d", resp.StatusCode)
	}

	var body struct {
		Articles []struct {
			Title  string `json:"title"`
			URL    string `json:"url"`
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			PublishedAt time.Time `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding news response: %w", err)
	}

	headlines := make([]Headline, 0, len(body.Articles))
	for _, a := range body.Articles {
		if a.Title == "" {
			continue
		}
		headlines = append(headlines, Headline{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}

	f.mu.Lock()
	f.headlines = headlines
	f.fetchedAt = time.Now()
	f.mu.Unlock()

	return nil
}
