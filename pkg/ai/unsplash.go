package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

// ErrNoResults is returned when the image provider has no hit for a keyword
var ErrNoResults = errors.New("unsplash: no results for keyword")

// UnsplashClient is a minimal client for the Unsplash photo search API
type UnsplashClient struct {
	accessKey string
	baseURL   string
	perPage   int
	client    *http.Client
}

// NewUnsplashClient creates an Unsplash client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewUnsplashClient(cfg *config.UnsplashConfig) *UnsplashClient {
	var accessKey string
	if cfg != nil {
		accessKey = cfg.AccessKey
	}
	if accessKey == "" {
		accessKey = os.Getenv("UNSPLASH_ACCESS_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("UNSPLASH_API_URL")
		if base == "" {
			base = "https://api.unsplash.com"
		}
	}

	perPage := 1
	if cfg != nil && cfg.PerPage > 0 {
		perPage = cfg.PerPage
	}

	return &UnsplashClient{
		accessKey: accessKey,
		baseURL:   base,
		perPage:   perPage,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchResponse is a minimal response shape for /search/photos
type SearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImage looks up the first photo for a keyword and downloads its binary.
// Returns ErrNoResults when the provider has no match.
func (c *UnsplashClient) SearchImage(ctx context.Context, keyword string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/search/photos?query=%s&client_id=%s&per_page=%d",
		c.baseURL, url.QueryEscape(keyword), c.accessKey, c.perPage)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	if len(sr.Results) == 0 {
		return nil, ErrNoResults
	}

	return c.download(ctx, sr.Results[0].URLs.Regular)
}

func (c *UnsplashClient) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
