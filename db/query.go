package db

import (
	"context"
	"fmt"
)

// A UserStat is one row of a per-user report: the target's name joined
// onto its aggregate counters.
type UserStat struct {
	Name        string
	PlayCount   int64
	FirstPlayed int64
	LastPlayed  int64
}

func (db *DB) Users(ctx context.Context) ([]string, error) {
	var usernames []string
	if err := db.WithContext(ctx).
		Table("users").
		Order("username").
		Pluck("username", &usernames).
		Error; err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return usernames, nil
}

func (db *DB) TopTracks(ctx context.Context, username string, limit int) ([]UserStat, error) {
	return db.topStats(ctx, username, limit,
		"user_track_stats", "tracks", "track_id")
}

func (db *DB) TopArtists(ctx context.Context, username string, limit int) ([]UserStat, error) {
	return db.topStats(ctx, username, limit,
		"user_artist_stats", "artists", "artist_id")
}

func (db *DB) TopAlbums(ctx context.Context, username string, limit int) ([]UserStat, error) {
	return db.topStats(ctx, username, limit,
		"user_album_stats", "albums", "album_id")
}

func (db *DB) TopGenres(ctx context.Context, username string, limit int) ([]UserStat, error) {
	return db.topStats(ctx, username, limit,
		"user_genre_stats", "genres", "genre_id")
}

func (db *DB) topStats(ctx context.Context, username string, limit int, statsTable, targetTable, targetColumn string) ([]UserStat, error) {
	var rows []UserStat
	if err := db.WithContext(ctx).
		Table(statsTable).
		Select(fmt.Sprintf(
			"%s.name as name, %s.play_count, %s.first_played, %s.last_played",
			targetTable, statsTable, statsTable, statsTable)).
		Joins(fmt.Sprintf("join %s on %s.id = %s.%s",
			targetTable, targetTable, statsTable, targetColumn)).
		Joins(fmt.Sprintf("join users on users.id = %s.user_id", statsTable)).
		Where("users.username = ?", username).
		Order(fmt.Sprintf("%s.play_count desc, name asc", statsTable)).
		Limit(limit).
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error querying %s for '%s': %w", statsTable, username, err)
	}
	return rows, nil
}

// A TrackToEnrich joins a track with the names the metadata providers
// need to look it up.
type TrackToEnrich struct {
	TrackID    int64
	Name       string
	ArtistName string
	ArtistMBID string `gorm:"column:artist_mbid"`
	AlbumName  string
}

func (db *DB) CountTracksToEnrich(ctx context.Context) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).
		Table("tracks").
		Where("has_fetched_genres = false").
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting tracks to enrich: %w", err)
	}
	return count, nil
}

func (db *DB) GetTracksToEnrich(ctx context.Context, limit int) ([]TrackToEnrich, error) {
	var rows []TrackToEnrich
	if err := db.WithContext(ctx).
		Table("tracks").
		Select("tracks.id as track_id, tracks.name as name, " +
			"artists.name as artist_name, coalesce(artists.mbid, '') as artist_mbid, " +
			"coalesce(albums.name, '') as album_name").
		Joins("join artists on artists.id = tracks.artist_id").
		Joins("left join albums on albums.id = tracks.album_id").
		Where("tracks.has_fetched_genres = false").
		Order("tracks.id").
		Limit(limit).
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error getting %d tracks to enrich: %w", limit, err)
	}
	return rows, nil
}
