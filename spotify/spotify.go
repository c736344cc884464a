// Package spotify fetches artist genres from the spotify search API
// using the client-credentials flow.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vvmm/scrobbledb/request"
)

const nextReqFilename = "next-req"

// New creates a new spotify client with the given clientID and
// clientSecret. If a previous run hit the rate limit, the persisted
// next-req file delays the first request accordingly.
func New(clientID, clientSecret string) *Client {
	var nextReqAt time.Time
	if bs, err := os.ReadFile(nextReqFilename); err == nil {
		if at, err := time.Parse(time.UnixDate, string(bs)); err == nil {
			nextReqAt = at
		}
	}

	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		nextReqAt:    nextReqAt,
		delay:        time.Second / 10,
	}
}

type Client struct {
	mu sync.Mutex

	clientID     string
	clientSecret string

	nextReqAt time.Time
	delay     time.Duration

	accessToken string
	expiresAt   time.Time
}

// ArtistGenres searches for the artist by name and returns the genre
// list spotify reports on the top hit. A miss returns no genres and no
// error.
func (spo *Client) ArtistGenres(ctx context.Context, name string) ([]string, error) {
	query := url.Values{}
	query.Add("q", fmt.Sprintf(`artist:"%s"`, name))
	query.Add("type", "artist")
	query.Add("limit", "1")

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/search", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results artistSearchResultsPage
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("artist search decode error: %w", err)
	}

	if len(results.Artists.Items) == 0 {
		return nil, nil
	}
	return results.Artists.Items[0].Genres, nil
}

type artistSearchResultsPage struct {
	Artists struct {
		Items []struct {
			ID     string
			Name   string
			Genres []string
		}
	}
}

func (spo *Client) get(ctx context.Context, baseURL string, query url.Values) (io.ReadCloser, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

retry:
	if !spo.nextReqAt.IsZero() {
		now := time.Now()
		if spo.nextReqAt.Sub(now) > time.Second {
			log.Printf("next request in %s at %s",
				spo.nextReqAt.Sub(now).Truncate(time.Second),
				spo.nextReqAt.Format(time.StampMilli))
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Until(spo.nextReqAt)):
		}
		if err := os.Remove(nextReqFilename); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	url, _ := url.Parse(baseURL)
	url.RawQuery = query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}

	token, err := spo.token()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		spo.delay = 2 * spo.delay
		var nextReqAt time.Time
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter == "" {
			log.Printf("no retry-after header on 429; retrying in 1 minute")
			nextReqAt = time.Now().Add(time.Minute)
		} else {
			seconds, err := strconv.ParseInt(retryAfter, 10, 64)
			if err != nil {
				return nil, err
			}
			waitTime := time.Duration(seconds)*time.Second + time.Second
			log.Printf("429; retrying in %s", waitTime)
			nextReqAt = time.Now().Add(waitTime)
		}
		spo.nextReqAt = nextReqAt
		if err := os.WriteFile(nextReqFilename, []byte(nextReqAt.Format(time.UnixDate)), 0666); err != nil {
			return nil, err
		}
		goto retry
	}
	if err := request.Error(resp); err != nil {
		return nil, fmt.Errorf("fetch error: %w", err)
	}

	spo.nextReqAt = time.Now().Add(spo.delay)

	return resp.Body, nil
}

type tokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (spo *Client) token() (string, error) {
	if spo.accessToken == "" || spo.expiresAt.Before(time.Now().Add(time.Second)) {
		if err := spo.fetchToken(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Bearer %s", spo.accessToken), nil
}

func (spo *Client) fetchToken() error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	url := "https://accounts.spotify.com/api/token"
	req, err := http.NewRequest("POST", url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	up := fmt.Sprintf("%s:%s", spo.clientID, spo.clientSecret)
	credential := base64.StdEncoding.EncodeToString([]byte(up))
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", credential))
	req.Header.Set("Content-type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	defer resp.Body.Close()
	if err := request.Error(resp); err != nil {
		return fmt.Errorf("token fetch error: %w", err)
	}

	var result tokenResult
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return fmt.Errorf("token decode error: %w", err)
	}

	spo.accessToken = result.AccessToken
	spo.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)

	return nil
}
