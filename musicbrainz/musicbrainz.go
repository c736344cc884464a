// Package musicbrainz fetches artist tags from the musicbrainz web
// service. Musicbrainz requires a descriptive User-Agent and asks for
// at most one request per second; the enricher's limiter covers the
// pacing.
package musicbrainz

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vvmm/scrobbledb/request"
)

const defaultBaseURL = "https://musicbrainz.org/ws/2"

func New(userAgent string) *Client {
	return &Client{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
}

// ArtistTags fetches the tags recorded for the artist with the given
// mbid. Artists without an mbid cannot be looked up here at all.
func (c *Client) ArtistTags(ctx context.Context, mbid string) ([]string, error) {
	if mbid == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("inc", "tags")
	query.Set("fmt", "json")

	header := http.Header{}
	header.Set("User-Agent", c.userAgent)

	var resp struct {
		Tags []struct {
			Name  string `json:"name"`
			Count int64  `json:"count"`
		} `json:"tags"`
	}
	u := fmt.Sprintf("%s/artist/%s", c.baseURL, url.PathEscape(mbid))
	if err := request.GetJSON(ctx, c.httpClient, u, query, header, &resp); err != nil {
		return nil, fmt.Errorf("error fetching musicbrainz tags for '%s': %w", mbid, err)
	}

	tags := make([]string, 0, len(resp.Tags))
	for _, tag := range resp.Tags {
		tags = append(tags, tag.Name)
	}
	return tags, nil
}
