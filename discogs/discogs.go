// Package discogs fetches release genres from the discogs database
// search API.
package discogs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vvmm/scrobbledb/request"
)

const (
	defaultBaseURL = "https://api.discogs.com"
	userAgent      = "scrobbledb/1.0"
)

func New(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// ReleaseGenres searches the discogs database for releases matching the
// query and merges the top hit's genres and styles into one list. A
// miss returns no genres and no error.
func (c *Client) ReleaseGenres(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "release")
	params.Set("per_page", "1")

	header := http.Header{}
	header.Set("User-Agent", userAgent)
	header.Set("Authorization", "Discogs token="+c.token)

	var resp struct {
		Results []struct {
			Genre []string `json:"genre"`
			Style []string `json:"style"`
		} `json:"results"`
	}
	if err := request.GetJSON(ctx, c.httpClient, c.baseURL+"/database/search", params, header, &resp); err != nil {
		return nil, fmt.Errorf("error searching discogs for '%s': %w", query, err)
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}
	top := resp.Results[0]
	return append(append([]string{}, top.Genre...), top.Style...), nil
}
