package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopTracks(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	userID, err := d.GetOrCreateUser("alice")
	require.NoError(t, err)
	artistID, err := d.GetOrCreateArtist("Artist X", "")
	require.NoError(t, err)

	songA, err := d.GetOrCreateTrack("Song A", artistID, sql.NullInt64{}, "", 0, "")
	require.NoError(t, err)
	songB, err := d.GetOrCreateTrack("Song B", artistID, sql.NullInt64{}, "", 0, "")
	require.NoError(t, err)

	for _, ts := range []int64{1000, 2000, 3000} {
		require.NoError(t, d.RecordPlay(userID, songA, artistID, sql.NullInt64{}, nil, ts))
	}
	require.NoError(t, d.RecordPlay(userID, songB, artistID, sql.NullInt64{}, nil, 4000))

	rows, err := d.TopTracks(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Song A", rows[0].Name)
	assert.EqualValues(t, 3, rows[0].PlayCount)
	assert.Equal(t, "Song B", rows[1].Name)

	rows, err = d.TopTracks(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Song A", rows[0].Name)

	// stats are per user
	rows, err = d.TopTracks(ctx, "bob", 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	artists, err := d.TopArtists(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.EqualValues(t, 4, artists[0].PlayCount)
	assert.EqualValues(t, 1000, artists[0].FirstPlayed)
	assert.EqualValues(t, 4000, artists[0].LastPlayed)
}

func TestTracksToEnrich(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	artistID, err := d.GetOrCreateArtist("Artist X", "mbid-1")
	require.NoError(t, err)
	albumRow, err := d.GetOrCreateAlbum("Album Y", artistID, "", "")
	require.NoError(t, err)
	withAlbum, err := d.GetOrCreateTrack("Song A", artistID,
		sql.NullInt64{Int64: albumRow, Valid: true}, "", 0, "")
	require.NoError(t, err)
	single, err := d.GetOrCreateTrack("Song B", artistID, sql.NullInt64{}, "", 0, "")
	require.NoError(t, err)

	count, err := d.CountTracksToEnrich(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	todo, err := d.GetTracksToEnrich(ctx, 10)
	require.NoError(t, err)
	require.Len(t, todo, 2)
	assert.Equal(t, withAlbum, todo[0].TrackID)
	assert.Equal(t, "Song A", todo[0].Name)
	assert.Equal(t, "Artist X", todo[0].ArtistName)
	assert.Equal(t, "mbid-1", todo[0].ArtistMBID)
	assert.Equal(t, "Album Y", todo[0].AlbumName)
	assert.Equal(t, "", todo[1].AlbumName)

	require.NoError(t, d.MarkTrackGenresFetched(single))

	count, err = d.CountTracksToEnrich(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
