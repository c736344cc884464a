package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvmm/scrobbledb/db"
	"github.com/vvmm/scrobbledb/server"
	"github.com/vvmm/scrobbledb/subcmd"
)

func serveCmd(ctx context.Context, args []string) error {
	sc := subcmd.New("serve", "serve listening statistics over http").
		SetArg("database_path", "path", "sqlite3 database file")
	var (
		port = sc.Int("port", 9999, "http port")
	)
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	rest := sc.Args()
	if len(rest) != 1 {
		return errors.New("usage: scrobbledb serve [flags] <database_path>")
	}

	database, err := db.Open(rest[0])
	if err != nil {
		return err
	}
	defer database.Close()

	addr := fmt.Sprintf(":%d", *port)
	return server.Run(ctx, database, addr)
}
