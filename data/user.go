package data

// Users are created the first time a username appears in an export and
// never mutated or deleted afterwards.
type User struct {
	ID       int64
	Username string
}
