// Command ingest loads a book into the vocabulary index, or links a
// flashcard keyword to the words and sentences of an ingested book.
//
// Usage:
//
//	ingest -file book.txt [-title T] [-author A] [-repair]
//	ingest -file more.txt -book-id 3
//	ingest -keyword "give up" -book-id 3 [-flashcard-id 9] [-resolve]
//	ingest -flashcard-id 9 -book-id 4 [-resolve]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/myenglish-vocab/internal/app"
	"github.com/heartmarshall/myenglish-vocab/internal/config"
)

func main() {
	var opts app.IngestOptions
	flag.StringVar(&opts.File, "file", "", "book to ingest (.txt, or .html reduced to readable text)")
	flag.StringVar(&opts.Title, "title", "", "book title (defaults to the HTML title or file name)")
	flag.StringVar(&opts.Author, "author", "", "book author")
	flag.Int64Var(&opts.BookID, "book-id", 0, "existing book to append to, or the book a flashcard is linked against")
	flag.BoolVar(&opts.Repair, "repair", false, "re-join hard-wrapped lines before segmentation")
	flag.StringVar(&opts.Keyword, "keyword", "", "flashcard keyword to ingest instead of a book (defaults to the stored keyword of -flashcard-id)")
	flag.Int64Var(&opts.FlashcardID, "flashcard-id", 0, "existing flashcard id (created when zero)")
	flag.BoolVar(&opts.Resolve, "resolve", false, "tag flashcard words with the sense chosen by the WSD server")
	flag.Parse()

	if opts.File == "" && opts.Keyword == "" && opts.FlashcardID == 0 {
		fmt.Fprintln(os.Stderr, "ingest: -file, -keyword or -flashcard-id is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, "ingest")
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunIngest(ctx, cfg, logger, opts); err != nil {
		logger.Error("ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
