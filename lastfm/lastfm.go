// Package lastfm fetches genre tags from the last.fm API.
package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vvmm/scrobbledb/request"
)

const defaultBaseURL = "http://ws.audioscrobbler.com/2.0/"

// last.fm API error codes.
const (
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

var (
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// New creates a last.fm client with the given API key.
func New(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// tagsResponse covers both track.getTopTags and artist.getTopTags,
// plus the error envelope last.fm returns with a 200 status.
type tagsResponse struct {
	TopTags struct {
		Tag []struct {
			Name string `json:"name"`
		} `json:"tag"`
	} `json:"toptags"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// TrackTags fetches the top tags for one track via track.getTopTags.
func (c *Client) TrackTags(ctx context.Context, artist, track string) ([]string, error) {
	return c.topTags(ctx, url.Values{
		"method":      {"track.getTopTags"},
		"artist":      {artist},
		"track":       {track},
		"autocorrect": {"1"},
		"format":      {"json"},
		"api_key":     {c.apiKey},
	})
}

// ArtistTags fetches the top tags for an artist via artist.getTopTags.
func (c *Client) ArtistTags(ctx context.Context, artist string) ([]string, error) {
	return c.topTags(ctx, url.Values{
		"method":      {"artist.getTopTags"},
		"artist":      {artist},
		"autocorrect": {"1"},
		"format":      {"json"},
		"api_key":     {c.apiKey},
	})
}

func (c *Client) topTags(ctx context.Context, params url.Values) ([]string, error) {
	var resp tagsResponse
	if err := request.GetJSON(ctx, c.httpClient, c.baseURL, params, nil, &resp); err != nil {
		return nil, err
	}

	switch resp.Error {
	case 0:
	case errCodeRateLimited:
		return nil, ErrRateLimited
	case errCodeInvalidAPIKey:
		return nil, ErrInvalidAPIKey
	default:
		return nil, fmt.Errorf("last.fm API error %d: %s", resp.Error, resp.Message)
	}

	tags := make([]string, 0, len(resp.TopTags.Tag))
	for _, tag := range resp.TopTags.Tag {
		tags = append(tags, tag.Name)
	}
	return tags, nil
}
