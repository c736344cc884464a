// Package links finds store pages for albums, for pasting into blog
// posts.
package links

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/vvmm/scrobbledb/request"
)

// Bandcamp tries to find the bandcamp page for an album: first by
// probing the direct URLs bandcamp conventionally assigns, then by
// scraping the search results page. An empty string means nothing
// matched.
func Bandcamp(ctx context.Context, artist, album string) (string, error) {
	for _, candidate := range directURLs(artist, album) {
		if urlExists(ctx, candidate) {
			return candidate, nil
		}
	}
	return searchBandcamp(artist, album)
}

// bandcamp subdomains squash the artist name; album paths usually keep
// hyphens between words, but not always
func directURLs(artist, album string) []string {
	sub := slug(artist, "")
	return []string{
		fmt.Sprintf("https://%s.bandcamp.com/album/%s", sub, slug(album, "")),
		fmt.Sprintf("https://%s.bandcamp.com/album/%s", sub, slug(album, "-")),
	}
}

var nonSlugRE = regexp.MustCompile(`[^a-z0-9\s-]`)

func slug(name, sep string) string {
	cleaned := nonSlugRE.ReplaceAllString(strings.ToLower(name), "")
	return strings.Join(strings.Fields(cleaned), sep)
}

func urlExists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func searchBandcamp(artist, album string) (string, error) {
	searchURL := fmt.Sprintf("https://bandcamp.com/search?q=%s&item_type=a",
		url.QueryEscape(artist+" "+album))
	doc, err := request.FetchHTML(searchURL)
	if err != nil {
		return "", err
	}

	var found string
	doc.Find("li.searchresult .heading a").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(sel.Text()), strings.ToLower(album)) {
			return true
		}
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		// search result hrefs carry tracking params
		if q := strings.Index(href, "?"); q >= 0 {
			href = href[:q]
		}
		found = href
		return false
	})

	return found, nil
}
