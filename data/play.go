package data

// Plays record one listening event. A user cannot play the same track
// at the same timestamp twice; the unique constraint on
// (user, track, timestamp) makes replaying an export a no-op.
//
// The date parts are derived from the unix timestamp in UTC.
type Play struct {
	ID        int64
	UserID    int64
	TrackID   int64
	Timestamp int64

	Year  int
	Month int
	Day   int
	Hour  int
}
