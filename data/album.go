package data

// Albums are keyed by (name, artist). An album always belongs to an
// artist; tracks with no album reference none at all.
type Album struct {
	ID       int64
	Name     string
	ArtistID int64
	MBID     string `gorm:"column:mbid"`
	ImageURL string
}
