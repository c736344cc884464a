package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvmm/scrobbledb/links"
	"github.com/vvmm/scrobbledb/subcmd"
)

func linksCmd(ctx context.Context, args []string) error {
	sc := subcmd.New("links", "find the bandcamp page for an album")
	var (
		artist = sc.String("artist", "", "artist name")
		album  = sc.String("album", "", "album name")
	)
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if *artist == "" || *album == "" {
		return errors.New("usage: scrobbledb links -artist <name> -album <name>")
	}

	found, err := links.Bandcamp(ctx, *artist, *album)
	if err != nil {
		return err
	}
	if found == "" {
		return fmt.Errorf("no bandcamp page found for '%s - %s'", *artist, *album)
	}

	fmt.Println(found)
	return nil
}
