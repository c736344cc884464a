package data

import "database/sql"

// Tracks are keyed by (name, artist, album). AlbumID is null for
// singles.
//
// HasFetchedGenres marks tracks whose metadata providers have already
// been queried, so the enrichment pass can resume without re-asking for
// tracks that genuinely have no genres anywhere.
type Track struct {
	ID       int64
	Name     string
	ArtistID int64
	AlbumID  sql.NullInt64
	MBID     string `gorm:"column:mbid"`

	// seconds
	Duration int64

	URL string

	HasFetchedGenres bool
}
