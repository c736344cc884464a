package data

// Per-user aggregate rows, one per (user, target) pair. They mutate
// monotonically: play_count only grows, and the [first, last] window
// only widens.

type UserTrackStat struct {
	UserID      int64
	TrackID     int64
	PlayCount   int64
	FirstPlayed int64
	LastPlayed  int64
}

type UserArtistStat struct {
	UserID      int64
	ArtistID    int64
	PlayCount   int64
	FirstPlayed int64
	LastPlayed  int64
}

type UserAlbumStat struct {
	UserID      int64
	AlbumID     int64
	PlayCount   int64
	FirstPlayed int64
	LastPlayed  int64
}

type UserGenreStat struct {
	UserID      int64
	GenreID     int64
	PlayCount   int64
	FirstPlayed int64
	LastPlayed  int64
}
