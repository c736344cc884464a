package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/vvmm/scrobbledb/checkpoint"
	"github.com/vvmm/scrobbledb/config"
	"github.com/vvmm/scrobbledb/db"
	"github.com/vvmm/scrobbledb/discogs"
	"github.com/vvmm/scrobbledb/enrich"
	"github.com/vvmm/scrobbledb/lastfm"
	"github.com/vvmm/scrobbledb/migrate"
	"github.com/vvmm/scrobbledb/musicbrainz"
	"github.com/vvmm/scrobbledb/source"
	"github.com/vvmm/scrobbledb/spotify"
	"github.com/vvmm/scrobbledb/subcmd"
)

func migrateCmd(ctx context.Context, args []string) error {
	sc := subcmd.New("migrate", "ingest a listening-history json export into the database\nprovider credentials come from the environment or a .env file")
	var (
		checkpointPath = sc.String("checkpoint", "migration_checkpoint.json", "checkpoint file path")
		noEnrich       = sc.Bool("no-enrich", false, "skip genre enrichment during ingestion")
		delay          = sc.Duration("delay", 500*time.Millisecond, "delay between metadata provider calls")
	)
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	rest := sc.Args()
	if len(rest) != 2 {
		return errors.New("usage: scrobbledb migrate [flags] <database_path> <json_path>")
	}
	dbPath, jsonPath := rest[0], rest[1]

	// setup errors are the only fatal ones; everything past this
	// point is logged and skipped instead
	src, err := source.Load(jsonPath)
	if err != nil {
		return err
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	logger := hclog.New(&hclog.LoggerOptions{Name: "scrobbledb"})

	var enricher *enrich.Enricher
	if *noEnrich {
		logger.Info("genre enrichment disabled")
	} else {
		enricher = newEnricher(config.Load(), *delay, logger)
	}

	m := migrate.New(database, enricher, checkpoint.New(*checkpointPath), logger)
	return m.Run(ctx, src)
}

// newEnricher wires up whichever metadata providers have credentials
// configured. Musicbrainz needs none, so enrichment always has at least
// one source.
func newEnricher(cfg config.Config, delay time.Duration, logger hclog.Logger) *enrich.Enricher {
	var (
		lfm enrich.LastFM
		spo enrich.Spotify
		dgs enrich.Discogs
	)
	if cfg.LastFMAPIKey != "" {
		lfm = lastfm.New(cfg.LastFMAPIKey)
	}
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		spo = spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
	if cfg.DiscogsToken != "" {
		dgs = discogs.New(cfg.DiscogsToken)
	}
	mb := musicbrainz.New(cfg.MusicBrainzUserAgent)

	return enrich.New(lfm, spo, mb, dgs, delay, logger)
}
