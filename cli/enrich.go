package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/vvmm/scrobbledb/config"
	"github.com/vvmm/scrobbledb/db"
	"github.com/vvmm/scrobbledb/subcmd"
)

func enrichCmd(ctx context.Context, args []string) error {
	sc := subcmd.New("enrich", "tag every track that has not been queried yet, using the configured metadata providers").
		SetArg("database_path", "path", "sqlite3 database file")
	var (
		delay = sc.Duration("delay", 500*time.Millisecond, "delay between metadata provider calls")
	)
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	rest := sc.Args()
	if len(rest) != 1 {
		return errors.New("usage: scrobbledb enrich [flags] <database_path>")
	}

	database, err := db.Open(rest[0])
	if err != nil {
		return err
	}
	defer database.Close()

	logger := hclog.New(&hclog.LoggerOptions{Name: "scrobbledb"})
	enricher := newEnricher(config.Load(), *delay, logger)
	return enricher.Backfill(ctx, database)
}
