// Command wsd-train builds the word-sense model served by wsd-server.
//
// By default it trains the most frequent lemmas of the words table
// (train.words_limit of them); -all trains every WordNet lemma instead.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/myenglish-vocab/internal/app"
	"github.com/heartmarshall/myenglish-vocab/internal/config"
)

func main() {
	all := flag.Bool("all", false, "train every WordNet lemma")
	limit := flag.Int("limit", -1, "lemmas to read from the words table (default train.words_limit, 0 = all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, "wsd-train")

	opts := app.TrainOptions{All: *all, Limit: cfg.Train.WordsLimit}
	if *limit >= 0 {
		opts.Limit = *limit
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunTrain(ctx, cfg, logger, opts); err != nil {
		logger.Error("training failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
