package data

import "sort"

// A Source is one listening-history export: a mapping of username to
// the track-play records scraped from last.fm for that user.
type Source struct {
	Users map[string][]TrackPlay `json:"users"`
}

// Usernames returns the export's users in lexicographic order. The
// checkpoint skip rule compares usernames, so iteration order has to be
// stable across runs; JSON object order is not.
func (s *Source) Usernames() []string {
	names := make([]string, 0, len(s.Users))
	for name := range s.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A TrackPlay is one entry in a user's history: a track plus every
// timestamp at which the user played it.
type TrackPlay struct {
	Name   string       `json:"name"`
	Artist SourceArtist `json:"artist"`
	Album  *SourceAlbum `json:"album,omitempty"`
	MBID   string       `json:"mbid"`

	// seconds
	Duration int64 `json:"duration"`

	URL string `json:"url"`

	// unix epoch, one per play event
	Timestamps []int64 `json:"timestamps"`
}

type SourceArtist struct {
	Name string `json:"name"`
	MBID string `json:"mbid"`
}

type SourceAlbum struct {
	Name  string `json:"name"`
	MBID  string `json:"mbid"`
	Image string `json:"image"`
}
