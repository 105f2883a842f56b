// Command wsd-server answers word-sense requests over TCP.
//
// SIGHUP reloads the model file; SIGINT and SIGTERM stop the server after
// in-flight requests finish. Health checks and /metrics are served on
// ops.addr when it is set.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/myenglish-vocab/internal/app"
	"github.com/heartmarshall/myenglish-vocab/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, "wsd-server")
	logger.Info("starting",
		slog.String("version", app.BuildVersion()),
		slog.String("addr", cfg.WSD.Addr()),
		slog.String("model", cfg.WSD.ModelPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)

	if err := app.RunWSDServer(ctx, cfg, logger, reload); err != nil {
		logger.Error("wsd server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
