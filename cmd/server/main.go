// Command server runs the vocabulary-trainer HTTP backend.
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables.
// Without DATABASE_DSN the server runs with in-memory stores.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoga72-SAP/birkenbihllab/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
