package data

// Artists are keyed by name. Real-world duplicates (two artists sharing
// one name) collapse into a single row; the mbid, when last.fm reports
// one, is kept for the metadata providers.
type Artist struct {
	ID   int64
	Name string
	MBID string `gorm:"column:mbid"`
}
