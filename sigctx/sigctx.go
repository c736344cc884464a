// Package sigctx provides a context that is canceled on SIGINT or
// SIGTERM.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func New() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
