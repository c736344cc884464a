package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvmm/scrobbledb/db"
	"github.com/vvmm/scrobbledb/subcmd"
)

func reportCmd(ctx context.Context, args []string) error {
	sc := subcmd.New("report", "print per-user listening statistics").
		SetArg("database_path", "path", "sqlite3 database file")
	var (
		user  = sc.String("user", "", "limit the report to one user")
		limit = sc.Int("limit", 10, "rows per section")
	)
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	rest := sc.Args()
	if len(rest) != 1 {
		return errors.New("usage: scrobbledb report [flags] <database_path>")
	}

	database, err := db.Open(rest[0])
	if err != nil {
		return err
	}
	defer database.Close()

	usernames := []string{*user}
	if *user == "" {
		if usernames, err = database.Users(ctx); err != nil {
			return err
		}
	}

	for _, username := range usernames {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Printf("%s\n", username)
		if err := printSection(ctx, database, "artists", username, *limit, database.TopArtists); err != nil {
			return err
		}
		if err := printSection(ctx, database, "albums", username, *limit, database.TopAlbums); err != nil {
			return err
		}
		if err := printSection(ctx, database, "tracks", username, *limit, database.TopTracks); err != nil {
			return err
		}
		if err := printSection(ctx, database, "genres", username, *limit, database.TopGenres); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}

func printSection(ctx context.Context, database *db.DB, label, username string, limit int, query func(context.Context, string, int) ([]db.UserStat, error)) error {
	rows, err := query(ctx, username, limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	fmt.Printf("  %s:\n", label)
	for _, row := range rows {
		fmt.Printf("    %6d  %s\n", row.PlayCount, row.Name)
	}
	return nil
}
