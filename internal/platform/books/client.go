package books

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ThumbnailFetcher resolves an ISBN to a cover-thumbnail URL.
type ThumbnailFetcher interface {
	FetchThumbnail(ctx context.Context, isbn int64) (string, error)
}

// Client queries the Google Books volumes API for cover thumbnails. Failures
// are reported to the caller, who falls back to the placeholder cover; a slow
// or dead API must never hold up a book save, hence the short client timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *Client) FetchThumbnail(ctx context.Context, isbn int64) (string, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("isbn:%d", isbn))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("books.Client.FetchThumbnail: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("books.Client.FetchThumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("books.Client.FetchThumbnail: unexpected status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return "", fmt.Errorf("books.Client.FetchThumbnail: decode: %w", err)
	}
	if len(volumes.Items) == 0 {
		return "", fmt.Errorf("books.Client.FetchThumbnail: no volumes for isbn %d", isbn)
	}

	thumbnail := volumes.Items[0].VolumeInfo.ImageLinks.Thumbnail
	if thumbnail == "" {
		return "", fmt.Errorf("books.Client.FetchThumbnail: volume for isbn %d has no thumbnail", isbn)
	}

	// The API still hands out http:// links for some volumes.
	return strings.Replace(thumbnail, "http://", "https://", 1), nil
}
