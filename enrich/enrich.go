// Package enrich merges genre tags from the configured metadata
// providers into one source-tagged set per track.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/vvmm/scrobbledb/limiter"
)

// Provider interfaces, one per metadata source. A nil provider is
// simply skipped, so callers only wire the ones they have credentials
// for.

type LastFM interface {
	TrackTags(ctx context.Context, artist, track string) ([]string, error)
	ArtistTags(ctx context.Context, artist string) ([]string, error)
}

type Spotify interface {
	ArtistGenres(ctx context.Context, artist string) ([]string, error)
}

type MusicBrainz interface {
	ArtistTags(ctx context.Context, mbid string) ([]string, error)
}

type Discogs interface {
	ReleaseGenres(ctx context.Context, query string) ([]string, error)
}

// A Tag is one genre name as reported by one provider. Names are
// compared case-folded but kept as the provider returned them.
type Tag struct {
	Source string
	Name   string
}

func New(lastfm LastFM, spotify Spotify, musicbrainz MusicBrainz, discogs Discogs, delay time.Duration, logger hclog.Logger) *Enricher {
	return &Enricher{
		lastfm:      lastfm,
		spotify:     spotify,
		musicbrainz: musicbrainz,
		discogs:     discogs,
		limiter:     limiter.New(delay),
		logger:      logger,
		cache:       map[string][]string{},
	}
}

type Enricher struct {
	lastfm      LastFM
	spotify     Spotify
	musicbrainz MusicBrainz
	discogs     Discogs

	limiter *limiter.Limiter
	logger  hclog.Logger

	// per-run memo keyed by "source:lookup key", so one run never
	// asks a provider the same question twice
	cache map[string][]string
}

// Enrich queries every configured provider for the track and merges the
// reported genres into one source-tagged set. Provider failures yield
// no tags from that source, get logged, and never abort the
// enrichment.
func (e *Enricher) Enrich(ctx context.Context, artistName, trackName, artistMBID string) []Tag {
	var tags []Tag
	seen := map[Tag]struct{}{}

	add := func(source string, names []string) {
		for _, name := range names {
			if name == "" {
				continue
			}
			key := Tag{Source: source, Name: strings.ToLower(name)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, Tag{Source: source, Name: name})
		}
	}

	if e.lastfm != nil {
		names := e.lookup(ctx, "lastfm", artistName+":"+trackName, func(ctx context.Context) ([]string, error) {
			// track tags first, artist tags as the fallback
			if names, err := e.lastfm.TrackTags(ctx, artistName, trackName); err != nil || len(names) > 0 {
				return names, err
			}
			return e.lastfm.ArtistTags(ctx, artistName)
		})
		add("lastfm", names)
	}
	if e.spotify != nil {
		add("spotify", e.lookup(ctx, "spotify", artistName, func(ctx context.Context) ([]string, error) {
			return e.spotify.ArtistGenres(ctx, artistName)
		}))
	}
	if e.musicbrainz != nil && artistMBID != "" {
		add("musicbrainz", e.lookup(ctx, "musicbrainz", artistMBID, func(ctx context.Context) ([]string, error) {
			return e.musicbrainz.ArtistTags(ctx, artistMBID)
		}))
	}
	if e.discogs != nil {
		add("discogs", e.lookup(ctx, "discogs", artistName, func(ctx context.Context) ([]string, error) {
			return e.discogs.ReleaseGenres(ctx, artistName)
		}))
	}

	return tags
}

func (e *Enricher) lookup(ctx context.Context, source, key string, fetch func(context.Context) ([]string, error)) []string {
	cacheKey := source + ":" + key
	if cached, ok := e.cache[cacheKey]; ok {
		return cached
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil
	}

	names, err := fetch(ctx)
	if err != nil {
		e.logger.Warn("provider lookup failed", "source", source, "key", key, "error", err)
		return nil
	}

	e.cache[cacheKey] = names
	return names
}
