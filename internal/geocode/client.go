package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client resolves coordinates to a human-readable address via a
// Mapbox-compatible reverse geocoding API. Every failure falls back to a
// fixed-precision "lat, lng" string so callers never block on it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type placesResponse struct {
	Features []struct {
		PlaceName string `json:"place_name"`
	} `json:"features"`
}

func (c *Client) Reverse(ctx context.Context, lat, lng float64) string {
	fallback := fmt.Sprintf("%.4f, %.4f", lat, lng)
	if c == nil || c.baseURL == "" {
		return fallback
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%f,%f.json?access_token=%s",
		c.baseURL, lng, lat, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallback
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}

	var places placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return fallback
	}
	if len(places.Features) == 0 {
		return fallback
	}
	return places.Features[0].PlaceName
}
