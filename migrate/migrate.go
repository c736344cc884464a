// Package migrate ingests a listening-history export into the
// database: one pass over the source json, per user then per track then
// per timestamp, gated by the checkpoint file.
package migrate

import (
	"context"
	"database/sql"

	"github.com/hashicorp/go-hclog"
	"github.com/vvmm/scrobbledb/checkpoint"
	"github.com/vvmm/scrobbledb/data"
	"github.com/vvmm/scrobbledb/db"
	"github.com/vvmm/scrobbledb/enrich"
)

type Migrator struct {
	db       *db.DB
	enricher *enrich.Enricher
	cp       *checkpoint.Manager
	logger   hclog.Logger
}

// New creates a Migrator. A nil enricher disables genre enrichment;
// plays are then recorded without genre aggregates, and a later enrich
// run can fill the tags in.
func New(database *db.DB, enricher *enrich.Enricher, cp *checkpoint.Manager, logger hclog.Logger) *Migrator {
	return &Migrator{
		db:       database,
		enricher: enricher,
		cp:       cp,
		logger:   logger,
	}
}

// Run processes every user in the export, in lexicographic username
// order. Users before the checkpointed one are skipped outright; the
// checkpointed user is replayed from its last recorded timestamp, and
// the play table's uniqueness constraint absorbs the overlap.
//
// One transaction wraps each user. A failure while ingesting a user
// rolls that user back, gets logged, and the run moves on: one bad user
// never aborts the migration. Run only returns an error on
// cancellation.
func (m *Migrator) Run(ctx context.Context, src *data.Source) error {
	cp := m.cp.Load()
	if cp.LastUser != "" {
		m.logger.Info("resuming from checkpoint",
			"user", cp.LastUser, "timestamp", cp.LastTimestamp)
	}

	for _, username := range src.Usernames() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cp.LastUser != "" && username < cp.LastUser {
			continue
		}

		m.logger.Info("ingesting user", "user", username)
		if err := m.ingestUser(ctx, username, src.Users[username], cp); err != nil {
			if ctx.Err() != nil {
				return err
			}
			m.logger.Error("error ingesting user", "user", username, "error", err)
			continue
		}
	}

	return nil
}

func (m *Migrator) ingestUser(ctx context.Context, username string, plays []data.TrackPlay, cp checkpoint.Checkpoint) error {
	return m.db.WithTx(func(tx *db.DB) error {
		userID, err := tx.GetOrCreateUser(username)
		if err != nil {
			return err
		}

		for _, tp := range plays {
			if err := ctx.Err(); err != nil {
				return err
			}

			if tp.Name == "" || tp.Artist.Name == "" {
				// a data error skips just this track
				m.logger.Warn("skipping track with missing fields",
					"user", username, "track", tp.Name)
				continue
			}

			if err := m.ingestTrack(ctx, tx, userID, username, tp, cp); err != nil {
				return err
			}
		}

		return nil
	})
}

func (m *Migrator) ingestTrack(ctx context.Context, tx *db.DB, userID int64, username string, tp data.TrackPlay, cp checkpoint.Checkpoint) error {
	artistID, err := tx.GetOrCreateArtist(tp.Artist.Name, tp.Artist.MBID)
	if err != nil {
		return err
	}

	var albumID sql.NullInt64
	if tp.Album != nil && tp.Album.Name != "" {
		id, err := tx.GetOrCreateAlbum(tp.Album.Name, artistID, tp.Album.MBID, tp.Album.Image)
		if err != nil {
			return err
		}
		albumID = sql.NullInt64{Int64: id, Valid: true}
	}

	trackID, err := tx.GetOrCreateTrack(tp.Name, artistID, albumID, tp.MBID, tp.Duration, tp.URL)
	if err != nil {
		return err
	}

	genreIDs, err := m.trackGenres(ctx, tx, trackID, tp)
	if err != nil {
		return err
	}

	for _, ts := range tp.Timestamps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if username == cp.LastUser && ts <= cp.LastTimestamp {
			continue
		}
		if err := tx.RecordPlay(userID, trackID, artistID, albumID, genreIDs, ts); err != nil {
			return err
		}
		if err := m.cp.Save(username, ts); err != nil {
			return err
		}
	}

	return nil
}

// trackGenres returns the track's genre ids, enriching the track
// first if its providers have never been queried. Provider failures are
// swallowed inside the enricher; errors here are store errors.
func (m *Migrator) trackGenres(ctx context.Context, tx *db.DB, trackID int64, tp data.TrackPlay) ([]int64, error) {
	if m.enricher == nil {
		return tx.TrackGenreIDs(trackID)
	}

	fetched, err := tx.HasFetchedGenres(trackID)
	if err != nil {
		return nil, err
	}
	if !fetched {
		for _, tag := range m.enricher.Enrich(ctx, tp.Artist.Name, tp.Name, tp.Artist.MBID) {
			genreID, err := tx.GetOrCreateGenre(tag.Name)
			if err != nil {
				return nil, err
			}
			if err := tx.TagTrack(trackID, genreID, tag.Source); err != nil {
				return nil, err
			}
		}
		if err := tx.MarkTrackGenresFetched(trackID); err != nil {
			return nil, err
		}
	}

	return tx.TrackGenreIDs(trackID)
}
