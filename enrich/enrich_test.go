package enrich_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/vvmm/scrobbledb/enrich"
)

type fakeLastFM struct {
	trackTags, artistTags []string
	err                   error
	trackCalls            int
	artistCalls           int
}

func (f *fakeLastFM) TrackTags(ctx context.Context, artist, track string) ([]string, error) {
	f.trackCalls++
	return f.trackTags, f.err
}

func (f *fakeLastFM) ArtistTags(ctx context.Context, artist string) ([]string, error) {
	f.artistCalls++
	return f.artistTags, f.err
}

type fakeSpotify struct {
	genres []string
	err    error
	calls  int
}

func (f *fakeSpotify) ArtistGenres(ctx context.Context, artist string) ([]string, error) {
	f.calls++
	return f.genres, f.err
}

type fakeMusicBrainz struct {
	tags  []string
	calls int
}

func (f *fakeMusicBrainz) ArtistTags(ctx context.Context, mbid string) ([]string, error) {
	f.calls++
	return f.tags, nil
}

type fakeDiscogs struct {
	genres []string
	calls  int
}

func (f *fakeDiscogs) ReleaseGenres(ctx context.Context, query string) ([]string, error) {
	f.calls++
	return f.genres, nil
}

func newTestEnricher(lfm *fakeLastFM, spo *fakeSpotify, mb *fakeMusicBrainz, dgs *fakeDiscogs) *enrich.Enricher {
	var (
		l enrich.LastFM
		s enrich.Spotify
		m enrich.MusicBrainz
		d enrich.Discogs
	)
	if lfm != nil {
		l = lfm
	}
	if spo != nil {
		s = spo
	}
	if mb != nil {
		m = mb
	}
	if dgs != nil {
		d = dgs
	}
	return enrich.New(l, s, m, d, 0, hclog.NewNullLogger())
}

func TestEnrichMergesSources(t *testing.T) {
	e := newTestEnricher(
		&fakeLastFM{trackTags: []string{"rock", "shoegaze"}},
		&fakeSpotify{genres: []string{"rock"}},
		&fakeMusicBrainz{tags: []string{"dream pop"}},
		&fakeDiscogs{genres: []string{"Rock", "rock", "Experimental"}},
	)

	tags := e.Enrich(context.Background(), "Artist X", "Song A", "mbid-1")

	// "rock" from two providers stays two tags; "Rock" and "rock"
	// from one provider collapse to one
	assert.ElementsMatch(t, []enrich.Tag{
		{Source: "lastfm", Name: "rock"},
		{Source: "lastfm", Name: "shoegaze"},
		{Source: "spotify", Name: "rock"},
		{Source: "musicbrainz", Name: "dream pop"},
		{Source: "discogs", Name: "Rock"},
		{Source: "discogs", Name: "Experimental"},
	}, tags)
}

func TestEnrichProviderFailureIsIsolated(t *testing.T) {
	e := newTestEnricher(
		&fakeLastFM{trackTags: []string{"rock"}},
		&fakeSpotify{err: errors.New("boom")},
		nil,
		nil,
	)

	tags := e.Enrich(context.Background(), "Artist X", "Song A", "")
	assert.Equal(t, []enrich.Tag{{Source: "lastfm", Name: "rock"}}, tags)
}

func TestEnrichArtistTagFallback(t *testing.T) {
	lfm := &fakeLastFM{artistTags: []string{"ambient"}}
	e := newTestEnricher(lfm, nil, nil, nil)

	tags := e.Enrich(context.Background(), "Artist X", "Song A", "")
	assert.Equal(t, []enrich.Tag{{Source: "lastfm", Name: "ambient"}}, tags)
	assert.Equal(t, 1, lfm.trackCalls)
	assert.Equal(t, 1, lfm.artistCalls)
}

func TestEnrichCachesWithinRun(t *testing.T) {
	spo := &fakeSpotify{genres: []string{"rock"}}
	e := newTestEnricher(nil, spo, nil, nil)

	e.Enrich(context.Background(), "Artist X", "Song A", "")
	e.Enrich(context.Background(), "Artist X", "Song B", "")
	assert.Equal(t, 1, spo.calls)

	e.Enrich(context.Background(), "Artist Z", "Song C", "")
	assert.Equal(t, 2, spo.calls)
}

func TestEnrichSkipsMusicBrainzWithoutMBID(t *testing.T) {
	mb := &fakeMusicBrainz{tags: []string{"rock"}}
	e := newTestEnricher(nil, nil, mb, nil)

	tags := e.Enrich(context.Background(), "Artist X", "Song A", "")
	assert.Empty(t, tags)
	assert.Equal(t, 0, mb.calls)
}

func TestEnrichNoProviders(t *testing.T) {
	e := newTestEnricher(nil, nil, nil, nil)
	tags := e.Enrich(context.Background(), "Artist X", "Song A", "mbid-1")
	assert.Empty(t, tags)
}
