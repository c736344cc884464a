package db

import (
	"fmt"

	"github.com/vvmm/scrobbledb/data"
	"gorm.io/gorm/clause"
)

// TagTrack associates a genre with a track and records which provider
// reported it, doing nothing for pairs that already exist.
func (db *DB) TagTrack(trackID, genreID int64, source string) error {
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&data.TrackGenre{
			TrackID:    trackID,
			GenreID:    genreID,
			Confidence: 1.0,
		}).
		Error; err != nil {
		return fmt.Errorf("error inserting track_genre {%d %d}: %w", trackID, genreID, err)
	}
	if source == "" {
		return nil
	}
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&data.GenreSource{
			GenreID: genreID,
			Source:  source,
		}).
		Error; err != nil {
		return fmt.Errorf("error inserting genre_source {%d '%s'}: %w", genreID, source, err)
	}
	return nil
}

// TrackGenreIDs returns the ids of every genre tagged on the track.
func (db *DB) TrackGenreIDs(trackID int64) ([]int64, error) {
	var ids []int64
	if err := db.
		Table("track_genres").
		Where("track_id = ?", trackID).
		Order("genre_id").
		Pluck("genre_id", &ids).
		Error; err != nil {
		return nil, fmt.Errorf("error fetching genres for track %d: %w", trackID, err)
	}
	return ids, nil
}

func (db *DB) HasFetchedGenres(trackID int64) (bool, error) {
	var track data.Track
	if err := db.
		Select("has_fetched_genres").
		Where("id = ?", trackID).
		Take(&track).
		Error; err != nil {
		return false, fmt.Errorf("error checking genre fetch state for track %d: %w", trackID, err)
	}
	return track.HasFetchedGenres, nil
}

func (db *DB) MarkTrackGenresFetched(trackID int64) error {
	if err := db.
		Table("tracks").
		Where("id = ?", trackID).
		Update("has_fetched_genres", true).
		Error; err != nil {
		return fmt.Errorf("error marking track %d genres as fetched: %w", trackID, err)
	}
	return nil
}
