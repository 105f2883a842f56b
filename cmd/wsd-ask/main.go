// Command wsd-ask queries wsd-server and prints the JSON answer.
//
// Usage:
//
//	wsd-ask WORD SENTENCE
//	wsd-ask -word-id 12 -sentence-id 340
//	wsd-ask -word-id 12 -book-id 3
//
// The database forms look the word and sentence up first; with -book-id every
// sentence of the book containing the word is asked.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/heartmarshall/myenglish-vocab/internal/app"
	"github.com/heartmarshall/myenglish-vocab/internal/config"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

func main() {
	wordID := flag.Int64("word-id", 0, "stored word id")
	sentenceID := flag.Int64("sentence-id", 0, "stored sentence id")
	bookID := flag.Int64("book-id", 0, "ask every sentence of this book that contains -word-id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, "wsd-ask")
	ctx := context.Background()

	var out any
	if *wordID > 0 || *sentenceID > 0 || *bookID > 0 {
		store, err := app.OpenStore(ctx, cfg.Database, logger)
		if err != nil {
			fail(logger, err)
		}
		defer store.Close()

		details := app.NewWordDetail(cfg.WSDClient, logger, store)
		if *bookID > 0 {
			out, err = details.FindSynsetsInBook(ctx, *wordID, *bookID)
		} else {
			out, err = details.FindSynset(ctx, *wordID, *sentenceID)
		}
		if err != nil {
			fail(logger, err)
		}
	} else {
		if flag.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "usage: wsd-ask WORD SENTENCE | wsd-ask -word-id N (-sentence-id M | -book-id B)")
			os.Exit(2)
		}
		resp, err := wsd.NewClient(logger, cfg.WSDClient).FindDefinition(ctx, flag.Arg(0), flag.Arg(1))
		if err != nil {
			fail(logger, err)
		}
		out = resp
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fail(logger, err)
	}
}

func fail(logger *slog.Logger, err error) {
	logger.Error("wsd-ask failed", slog.String("error", err.Error()))
	os.Exit(1)
}
