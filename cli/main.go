// scrobbledb ingests last.fm listening-history exports into a sqlite3
// database file, tags tracks with genres from four metadata providers,
// and reports per-user listening statistics.
//
// see db/schema.sql for info about the resulting database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vvmm/scrobbledb/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: scrobbledb $cmd
valid $cmd are 'migrate', 'enrich', 'report', 'links', 'serve'
for help: scrobbledb $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "migrate":
		return migrateCmd(ctx, args)

	case "enrich":
		return enrichCmd(ctx, args)

	case "report":
		return reportCmd(ctx, args)

	case "links":
		return linksCmd(ctx, args)

	case "serve":
		return serveCmd(ctx, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
