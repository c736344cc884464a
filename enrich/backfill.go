package enrich

import (
	"context"
	"fmt"

	"github.com/vvmm/scrobbledb/db"
)

// Backfill tags every track whose providers have not been queried yet,
// in batches, until none remain. Tracks that turn up no genres anywhere
// are still marked fetched so a re-run does not ask again.
func (e *Enricher) Backfill(ctx context.Context, database *db.DB) error {
	total, err := database.CountTracksToEnrich(ctx)
	if err != nil {
		return err
	}
	e.logger.Info("backfill starting", "tracks", total)

	done := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		todo, err := database.GetTracksToEnrich(ctx, 20)
		if err != nil {
			return err
		}
		if len(todo) == 0 {
			e.logger.Info("backfill complete", "tracks", done)
			return nil
		}

		tagged := 0
		for _, track := range todo {
			if err := ctx.Err(); err != nil {
				return err
			}

			tags := e.Enrich(ctx, track.ArtistName, track.Name, track.ArtistMBID)
			if err := e.tagTrack(database, track.TrackID, tags); err != nil {
				e.logger.Error("error tagging track",
					"track", track.Name, "artist", track.ArtistName, "error", err)
				continue
			}

			tagged++
			done++
			e.logger.Info("tagged track",
				"track", track.Name, "artist", track.ArtistName,
				"genres", len(tags), "done", done, "total", total)
		}

		if tagged == 0 {
			// the same batch would come back next iteration
			return fmt.Errorf("no progress tagging %d tracks; giving up", len(todo))
		}
	}
}

// tagTrack writes one track's tags and its fetched marker in a single
// transaction, so an interrupted backfill never marks a track it did
// not finish tagging.
func (e *Enricher) tagTrack(database *db.DB, trackID int64, tags []Tag) error {
	return database.WithTx(func(tx *db.DB) error {
		for _, tag := range tags {
			genreID, err := tx.GetOrCreateGenre(tag.Name)
			if err != nil {
				return err
			}
			if err := tx.TagTrack(trackID, genreID, tag.Source); err != nil {
				return err
			}
		}
		if err := tx.MarkTrackGenresFetched(trackID); err != nil {
			return fmt.Errorf("error marking track %d fetched: %w", trackID, err)
		}
		return nil
	})
}
