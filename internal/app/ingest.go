package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/heartmarshall/myenglish-vocab/internal/config"
	"github.com/heartmarshall/myenglish-vocab/internal/ingest"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

// NewIngestService assembles the ingestion service. resolver may be nil.
func NewIngestService(
	cfg config.IngestConfig,
	log *slog.Logger,
	store *Store,
	lex *lexical.Lexicon,
	resolver ingest.SenseResolver,
	reg prometheus.Registerer,
) *ingest.Service {
	metrics := ingest.NewMetrics(reg)
	classifier := ingest.NewClassifier(lex, lex)
	writer := ingest.NewWriter(log, store.Tx, store.Words, store.Sentences, store.Relations, metrics)
	pipeline := ingest.NewPipeline(log, ingest.NewSegmenter(lex), classifier, writer, ingest.PipelineConfig{
		QueueCapacity:   cfg.QueueCapacity,
		ClassifyWorkers: cfg.ClassifyWorkers,
	}, metrics)

	return ingest.NewService(log, pipeline, writer, classifier, store.Books, store.Relations, store.Words, resolver)
}

// IngestOptions selects what cmd/ingest does.
type IngestOptions struct {
	// File is the book to import. HTML files are reduced to their readable
	// text first.
	File   string
	Title  string
	Author string
	// BookID appends to an existing book instead of creating one.
	BookID int64
	// Repair re-joins hard-wrapped lines before segmentation.
	Repair bool

	// Keyword and FlashcardID ingest a flashcard against BookID instead of a
	// book file. A zero FlashcardID creates the flashcard; an empty Keyword
	// reuses the stored one.
	Keyword     string
	FlashcardID int64
	// Resolve tags flashcard words with the sense chosen by the WSD server.
	Resolve bool
}

// RunIngest runs one ingestion as described by opts.
func RunIngest(ctx context.Context, cfg *config.Config, log *slog.Logger, opts IngestOptions) error {
	store, err := OpenStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer store.Close()

	lex, err := LoadLexicon(cfg.Lexical, log, false)
	if err != nil {
		return err
	}

	var resolver ingest.SenseResolver
	if opts.Resolve {
		resolver = wsd.NewClient(log, cfg.WSDClient)
	}
	reg := prometheus.NewRegistry()
	svc := NewIngestService(cfg.Ingest, log, store, lex, resolver, reg)

	if opts.Keyword != "" || opts.FlashcardID != 0 {
		err = runFlashcard(ctx, log, store, svc, opts)
	} else {
		err = runBook(ctx, log, svc, opts)
	}

	if pushErr := pushMetrics(ctx, cfg.Ingest.PushgatewayURL, reg); pushErr != nil {
		log.Warn("ingest metrics not pushed", slog.String("error", pushErr.Error()))
	}
	return err
}

// pushMetrics sends what g gathers to the Pushgateway at url under job
// "ingest". An empty url disables the push. The push still happens when ctx
// was cancelled, so an interrupted run reports how far it got.
func pushMetrics(ctx context.Context, url string, g prometheus.Gatherer) error {
	if url == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := push.New(url, "ingest").Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("push to %s: %w", url, err)
	}
	return nil
}

func runBook(ctx context.Context, log *slog.Logger, svc *ingest.Service, opts IngestOptions) error {
	doc, err := readBook(opts.File)
	if err != nil {
		return err
	}
	text := doc.Text
	if opts.Repair {
		text = ingest.RepairLines(text)
	}

	var res ingest.BookResult
	if opts.BookID > 0 {
		res, err = svc.LoadBook(ctx, opts.BookID, text)
	} else {
		title := firstNonEmpty(opts.Title, doc.Title, opts.File)
		author := firstNonEmpty(opts.Author, doc.Author)
		res, err = svc.ImportBook(ctx, title, author, text)
	}
	if err != nil {
		return err
	}

	log.Info("ingest finished", slog.Int64("book_id", res.Book.ID))
	return nil
}

func runFlashcard(ctx context.Context, log *slog.Logger, store *Store, svc *ingest.Service, opts IngestOptions) error {
	if opts.BookID <= 0 {
		return fmt.Errorf("flashcard ingestion needs a book id")
	}

	id, keyword := opts.FlashcardID, opts.Keyword
	if id == 0 {
		card, err := store.Flashcards.Create(ctx, keyword)
		if err != nil {
			return fmt.Errorf("create flashcard: %w", err)
		}
		id = card.ID
	} else if keyword == "" {
		card, err := store.Flashcards.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get flashcard: %w", err)
		}
		keyword = card.Keyword
	}

	res, err := svc.LoadFlashcard(ctx, id, keyword, opts.BookID)
	if err != nil {
		return err
	}

	log.Info("flashcard ingested",
		slog.Int64("flashcard_id", id),
		slog.Int("words", len(res.Words)),
		slog.Int("sentences", len(res.SentenceIDs)),
		slog.Int("senses_resolved", res.Resolved),
	)
	return nil
}

func readBook(path string) (ingest.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ingest.Document{}, fmt.Errorf("read book: %w", err)
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		doc, err := ingest.ExtractText(bytes.NewReader(raw), "file://"+path)
		if err != nil {
			return ingest.Document{}, fmt.Errorf("extract text: %w", err)
		}
		return doc, nil
	}
	return ingest.Document{Text: string(raw)}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
