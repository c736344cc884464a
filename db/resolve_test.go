package db_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvmm/scrobbledb/data"
	"github.com/vvmm/scrobbledb/db"
)

func testDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestGetOrCreateUser(t *testing.T) {
	d := testDB(t)

	id, err := d.GetOrCreateUser("alice")
	require.NoError(t, err)

	again, err := d.GetOrCreateUser("alice")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	other, err := d.GetOrCreateUser("bob")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	var count int64
	require.NoError(t, d.Table("users").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGetOrCreateUserRejectsEmpty(t *testing.T) {
	d := testDB(t)
	_, err := d.GetOrCreateUser("")
	assert.Error(t, err)
}

func TestGetOrCreateArtist(t *testing.T) {
	d := testDB(t)

	id, err := d.GetOrCreateArtist("Artist X", "mbid-1")
	require.NoError(t, err)

	// the natural key is the name alone; a second call with a
	// different mbid finds the existing row rather than writing
	again, err := d.GetOrCreateArtist("Artist X", "mbid-2")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	var artist data.Artist
	require.NoError(t, d.Where("id = ?", id).Take(&artist).Error)
	assert.Equal(t, "mbid-1", artist.MBID)
}

func TestGetOrCreateAlbum(t *testing.T) {
	d := testDB(t)

	artistA, err := d.GetOrCreateArtist("A", "")
	require.NoError(t, err)
	artistB, err := d.GetOrCreateArtist("B", "")
	require.NoError(t, err)

	id, err := d.GetOrCreateAlbum("Album Y", artistA, "", "http://img")
	require.NoError(t, err)
	again, err := d.GetOrCreateAlbum("Album Y", artistA, "", "")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// same name under a different artist is a different album
	other, err := d.GetOrCreateAlbum("Album Y", artistB, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestGetOrCreateTrack(t *testing.T) {
	d := testDB(t)

	artistID, err := d.GetOrCreateArtist("Artist X", "")
	require.NoError(t, err)
	albumRow, err := d.GetOrCreateAlbum("Album Y", artistID, "", "")
	require.NoError(t, err)
	albumID := sql.NullInt64{Int64: albumRow, Valid: true}
	noAlbum := sql.NullInt64{}

	onAlbum, err := d.GetOrCreateTrack("Song A", artistID, albumID, "", 200, "")
	require.NoError(t, err)

	// the single and the album cut are distinct tracks
	single, err := d.GetOrCreateTrack("Song A", artistID, noAlbum, "", 200, "")
	require.NoError(t, err)
	assert.NotEqual(t, onAlbum, single)

	singleAgain, err := d.GetOrCreateTrack("Song A", artistID, noAlbum, "", 200, "")
	require.NoError(t, err)
	assert.Equal(t, single, singleAgain)

	var track data.Track
	require.NoError(t, d.Where("id = ?", single).Take(&track).Error)
	assert.False(t, track.AlbumID.Valid)

	var count int64
	require.NoError(t, d.Table("tracks").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGetOrCreateGenre(t *testing.T) {
	d := testDB(t)

	id, err := d.GetOrCreateGenre("rock")
	require.NoError(t, err)
	again, err := d.GetOrCreateGenre("rock")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// provider casing varies; the name collates case-insensitively
	folded, err := d.GetOrCreateGenre("Rock")
	require.NoError(t, err)
	assert.Equal(t, id, folded)

	var count int64
	require.NoError(t, d.Table("genres").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTagTrack(t *testing.T) {
	d := testDB(t)

	artistID, err := d.GetOrCreateArtist("Artist X", "")
	require.NoError(t, err)
	trackID, err := d.GetOrCreateTrack("Song A", artistID, sql.NullInt64{}, "", 0, "")
	require.NoError(t, err)
	genreID, err := d.GetOrCreateGenre("rock")
	require.NoError(t, err)

	require.NoError(t, d.TagTrack(trackID, genreID, "lastfm"))
	require.NoError(t, d.TagTrack(trackID, genreID, "spotify"))

	// the pair is deduplicated; the provenance keeps both sources
	var pairs int64
	require.NoError(t, d.Table("track_genres").Count(&pairs).Error)
	assert.EqualValues(t, 1, pairs)

	var sources []string
	require.NoError(t, d.Table("genre_sources").
		Where("genre_id = ?", genreID).
		Order("source").
		Pluck("source", &sources).Error)
	assert.Equal(t, []string{"lastfm", "spotify"}, sources)

	ids, err := d.TrackGenreIDs(trackID)
	require.NoError(t, err)
	assert.Equal(t, []int64{genreID}, ids)
}

func TestHasFetchedGenres(t *testing.T) {
	d := testDB(t)

	artistID, err := d.GetOrCreateArtist("Artist X", "")
	require.NoError(t, err)
	trackID, err := d.GetOrCreateTrack("Song A", artistID, sql.NullInt64{}, "", 0, "")
	require.NoError(t, err)

	fetched, err := d.HasFetchedGenres(trackID)
	require.NoError(t, err)
	assert.False(t, fetched)

	require.NoError(t, d.MarkTrackGenresFetched(trackID))

	fetched, err = d.HasFetchedGenres(trackID)
	require.NoError(t, err)
	assert.True(t, fetched)
}
