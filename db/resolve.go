package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vvmm/scrobbledb/data"
	"gorm.io/gorm"
)

// Each lookup below keys on the entity's natural key and inserts only
// on a miss, returning the surrogate id either way, so re-running an
// ingestion never creates duplicate rows. The pipeline is the only
// writer; no locking beyond the enclosing transaction is applied.

func (db *DB) GetOrCreateUser(username string) (int64, error) {
	if username == "" {
		return 0, fmt.Errorf("no username")
	}
	var user data.User
	err := db.Where("username = ?", username).Take(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("error looking up user '%s': %w", username, err)
	}
	user = data.User{Username: username}
	if err := db.Create(&user).Error; err != nil {
		return 0, fmt.Errorf("error inserting user '%s': %w", username, err)
	}
	return user.ID, nil
}

func (db *DB) GetOrCreateArtist(name, mbid string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("no artist name")
	}
	var artist data.Artist
	err := db.Where("name = ?", name).Take(&artist).Error
	if err == nil {
		return artist.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("error looking up artist '%s': %w", name, err)
	}
	artist = data.Artist{Name: name, MBID: mbid}
	if err := db.Create(&artist).Error; err != nil {
		return 0, fmt.Errorf("error inserting artist '%s': %w", name, err)
	}
	return artist.ID, nil
}

func (db *DB) GetOrCreateAlbum(name string, artistID int64, mbid, imageURL string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("no album name")
	}
	var album data.Album
	err := db.Where("name = ? and artist_id = ?", name, artistID).Take(&album).Error
	if err == nil {
		return album.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("error looking up album '%s': %w", name, err)
	}
	album = data.Album{Name: name, ArtistID: artistID, MBID: mbid, ImageURL: imageURL}
	if err := db.Create(&album).Error; err != nil {
		return 0, fmt.Errorf("error inserting album '%s': %w", name, err)
	}
	return album.ID, nil
}

func (db *DB) GetOrCreateTrack(name string, artistID int64, albumID sql.NullInt64, mbid string, duration int64, url string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("no track name")
	}
	q := db.Where("name = ? and artist_id = ?", name, artistID)
	if albumID.Valid {
		q = q.Where("album_id = ?", albumID.Int64)
	} else {
		q = q.Where("album_id is null")
	}
	var track data.Track
	err := q.Take(&track).Error
	if err == nil {
		return track.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("error looking up track '%s': %w", name, err)
	}
	track = data.Track{
		Name:     name,
		ArtistID: artistID,
		AlbumID:  albumID,
		MBID:     mbid,
		Duration: duration,
		URL:      url,
	}
	if err := db.Create(&track).Error; err != nil {
		return 0, fmt.Errorf("error inserting track '%s': %w", name, err)
	}
	return track.ID, nil
}

func (db *DB) GetOrCreateGenre(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("no genre name")
	}
	var genre data.Genre
	err := db.Where("name = ?", name).Take(&genre).Error
	if err == nil {
		return genre.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("error looking up genre '%s': %w", name, err)
	}
	genre = data.Genre{Name: name}
	if err := db.Create(&genre).Error; err != nil {
		return 0, fmt.Errorf("error inserting genre '%s': %w", name, err)
	}
	return genre.ID, nil
}
