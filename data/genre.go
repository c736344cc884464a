package data

// Genres are unique by name: "rock" from last.fm and "rock" from
// spotify are the same row. Which providers reported a genre is kept
// separately in genre_sources.
//
// Genres have many tracks via the association table track_genres.
type Genre struct {
	ID   int64
	Name string
}

// GenreSources record which metadata provider reported a genre.
type GenreSource struct {
	GenreID int64
	Source  string
}

// TrackGenres represent a many-to-many relationship between tracks and
// genres. The schema allows a confidence weight per pair but nothing
// assigns one; every row carries 1.0.
type TrackGenre struct {
	TrackID    int64
	GenreID    int64
	Confidence float64
}
