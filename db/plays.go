package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vvmm/scrobbledb/data"
	"gorm.io/gorm/clause"
)

// RecordPlay inserts one listening event and folds it into the per-user
// aggregate rows for the track, the artist, the album when there is
// one, and every genre tagged on the track.
//
// The play insert is conflict-ignored on (user, track, timestamp), and
// the aggregates are only touched when the play row is actually new, so
// replaying the same export never double-counts. Callers run it inside
// the per-user transaction; a crash cannot commit the play without its
// aggregates.
func (db *DB) RecordPlay(userID, trackID, artistID int64, albumID sql.NullInt64, genreIDs []int64, timestamp int64) error {
	at := time.Unix(timestamp, 0).UTC()
	play := data.Play{
		UserID:    userID,
		TrackID:   trackID,
		Timestamp: timestamp,
		Year:      at.Year(),
		Month:     int(at.Month()),
		Day:       at.Day(),
		Hour:      at.Hour(),
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&play)
	if res.Error != nil {
		return fmt.Errorf("error inserting play {%d %d %d}: %w", userID, trackID, timestamp, res.Error)
	}
	if res.RowsAffected == 0 {
		// already ingested; the aggregates were updated back then
		return nil
	}

	if err := db.upsertStat("user_track_stats", "track_id", userID, trackID, timestamp); err != nil {
		return err
	}
	if err := db.upsertStat("user_artist_stats", "artist_id", userID, artistID, timestamp); err != nil {
		return err
	}
	if albumID.Valid {
		if err := db.upsertStat("user_album_stats", "album_id", userID, albumID.Int64, timestamp); err != nil {
			return err
		}
	}
	for _, genreID := range genreIDs {
		if err := db.upsertStat("user_genre_stats", "genre_id", userID, genreID, timestamp); err != nil {
			return err
		}
	}

	return nil
}

func (db *DB) upsertStat(table, targetColumn string, userID, targetID, timestamp int64) error {
	q := fmt.Sprintf(`
		insert into %s (user_id, %s, play_count, first_played, last_played)
		values (?, ?, 1, ?, ?)
		on conflict (user_id, %s) do update set
			play_count = play_count + 1,
			first_played = min(first_played, excluded.first_played),
			last_played = max(last_played, excluded.last_played)
	`, table, targetColumn, targetColumn)
	if err := db.Exec(q, userID, targetID, timestamp, timestamp).Error; err != nil {
		return fmt.Errorf("error upserting %s {%d %d}: %w", table, userID, targetID, err)
	}
	return nil
}
