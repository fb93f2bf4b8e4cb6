package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/questlog/questlog/internal/constants"
	"github.com/redis/go-redis/v9"
)

// BoxArtClient looks up cover art for a game title. Implementations return
// an empty string, not an error, when nothing matches.
type BoxArtClient interface {
	LookupBoxArt(ctx context.Context, title string) (string, error)
}

// GiantBombClient queries the GiantBomb search API for game metadata.
type GiantBombClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGiantBombClient(baseURL, apiKey string) *GiantBombClient {
	return &GiantBombClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.MetadataLookupTimeout,
		},
	}
}

// LookupBoxArt searches by free-text title and returns the first candidate's
// image URL, or an empty string when the search has no results.
func (c *GiantBombClient) LookupBoxArt(ctx context.Context, title string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid metadata API URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	q.Set("resources", "game")
	q.Set("limit", "1")
	q.Set("query", title)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("metadata API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Image struct {
				SmallURL string `json:"small_url"`
			} `json:"image"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to parse metadata response: %w", err)
	}

	if len(payload.Results) == 0 {
		return "", nil
	}

	return payload.Results[0].Image.SmallURL, nil
}

// CachedBoxArtClient decorates a BoxArtClient with a Redis cache so repeated
// creates for the same title skip the external API.
type CachedBoxArtClient struct {
	inner BoxArtClient
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedBoxArtClient(inner BoxArtClient, rdb *redis.Client) *CachedBoxArtClient {
	return &CachedBoxArtClient{
		inner: inner,
		rdb:   rdb,
		ttl:   constants.BoxArtCacheTTL,
	}
}

func (c *CachedBoxArtClient) LookupBoxArt(ctx context.Context, title string) (string, error) {
	key := "boxart:" + strings.ToLower(strings.TrimSpace(title))

	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return cached, nil
	}

	boxArt, err := c.inner.LookupBoxArt(ctx, title)
	if err != nil {
		return "", err
	}

	if boxArt != "" {
		// Best effort; a cache write failure never fails the lookup.
		c.rdb.Set(ctx, key, boxArt, c.ttl)
	}

	return boxArt, nil
}
