// Package config collects every credential the pipeline needs into one
// struct, constructed once at startup and passed down explicitly.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	LastFMAPIKey        string
	SpotifyClientID     string
	SpotifyClientSecret string
	DiscogsToken        string

	// musicbrainz wants a descriptive User-Agent instead of a key
	MusicBrainzUserAgent string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present. A missing provider credential disables that
// provider rather than failing.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		LastFMAPIKey:         os.Getenv("LASTFM_API_KEY"),
		SpotifyClientID:      os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret:  os.Getenv("SPOTIFY_CLIENT_SECRET"),
		DiscogsToken:         os.Getenv("DISCOGS_TOKEN"),
		MusicBrainzUserAgent: os.Getenv("MUSICBRAINZ_USER_AGENT"),
	}
	if cfg.MusicBrainzUserAgent == "" {
		cfg.MusicBrainzUserAgent = "scrobbledb/1.0 ( https://github.com/vvmm/scrobbledb )"
	}
	return cfg
}
