package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/pkg/ctxutil"
)

type bookRepo interface {
	Create(ctx context.Context, title, author string) (domain.Book, error)
	GetByID(ctx context.Context, id int64) (domain.Book, error)
	RecomputeCounters(ctx context.Context, id int64) (domain.Book, error)
}

type flashcardRelations interface {
	Link(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (int64, error)
	SentenceIDsForWords(ctx context.Context, wordIDs []int64, bookID int64) ([]int64, error)
}

type flashcardWords interface {
	ListByFlashcard(ctx context.Context, flashcardID int64) ([]domain.Word, error)
	SetSense(ctx context.Context, id int64, synset, definition string) error
}

// SenseResolver picks the sense of word used in sentence. ok is false when
// no sense could be chosen.
type SenseResolver interface {
	ResolveSense(ctx context.Context, word, sentence string) (s domain.Synset, ok bool, err error)
}

// BookResult summarizes an ingestion run.
type BookResult struct {
	Book  domain.Book
	Run   RunStats
	Words SaveResult
}

// FlashcardResult summarizes a flashcard ingestion. Words holds every word
// linked to the flashcard after the call, including links from earlier runs.
type FlashcardResult struct {
	Words       []domain.Word
	SentenceIDs []int64
	Resolved    int
}

// Service is the ingestion entrypoint.
type Service struct {
	log        *slog.Logger
	pipeline   *Pipeline
	writer     *Writer
	classifier *Classifier
	books      bookRepo
	relations  flashcardRelations
	words      flashcardWords
	resolver   SenseResolver
}

// NewService creates an ingestion service. resolver may be nil, in which
// case flashcard words are never sense-tagged.
func NewService(
	log *slog.Logger,
	pipeline *Pipeline,
	writer *Writer,
	classifier *Classifier,
	books bookRepo,
	relations flashcardRelations,
	words flashcardWords,
	resolver SenseResolver,
) *Service {
	return &Service{
		log:        log.With("service", "ingest"),
		pipeline:   pipeline,
		writer:     writer,
		classifier: classifier,
		books:      books,
		relations:  relations,
		words:      words,
		resolver:   resolver,
	}
}

// LoadSentences stores the sentences of text under bookID and returns the
// aggregated words split by part of speech. Words are not saved yet.
func (s *Service) LoadSentences(ctx context.Context, text string, bookID int64) (Destinations, RunStats, error) {
	agg, stats, err := s.pipeline.Run(ctx, text, bookID)
	if err != nil {
		return Destinations{}, stats, fmt.Errorf("load sentences of book %d: %w", bookID, err)
	}
	return agg.Split(), stats, nil
}

// SavePreparedWords merges one destination into the words table.
func (s *Service) SavePreparedWords(ctx context.Context, entries []Entry) (SaveResult, error) {
	return s.writer.SavePreparedWords(ctx, entries)
}

// LoadBook runs the whole ingestion for an existing book and recomputes its
// counters. An unknown book fails with domain.ErrNotFound before any
// sentence is written.
func (s *Service) LoadBook(ctx context.Context, bookID int64, text string) (BookResult, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return BookResult{}, fmt.Errorf("load book %d: %w", bookID, err)
	}

	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)
	log := s.log.With(slog.String("run_id", runID.String()), slog.Int64("book_id", bookID))
	start := time.Now()

	var res BookResult
	dest, stats, err := s.LoadSentences(ctx, text, bookID)
	res.Run = stats
	if err != nil {
		return res, err
	}
	log.InfoContext(ctx, "sentences loaded",
		slog.Int("created", stats.SentencesCreated),
		slog.Int("failed", stats.SentencesFailed),
		slog.Int("words", dest.Len()),
	)

	for _, entries := range dest.All() {
		saved, err := s.SavePreparedWords(ctx, entries)
		res.Words.Created += saved.Created
		res.Words.Merged += saved.Merged
		res.Words.Failed += saved.Failed
		res.Words.Linked += saved.Linked
		if err != nil {
			return res, fmt.Errorf("save words of book %d: %w", bookID, err)
		}
	}

	book, err := s.books.RecomputeCounters(ctx, bookID)
	if err != nil {
		return res, fmt.Errorf("recompute counters: %w", err)
	}
	res.Book = book

	log.InfoContext(ctx, "book ingested",
		slog.Int("sentences", book.SentencesCount),
		slog.Int("words", book.WordsCount),
		slog.Int("words_created", res.Words.Created),
		slog.Int("words_merged", res.Words.Merged),
		slog.Int("words_failed", res.Words.Failed),
		slog.Duration("took", time.Since(start)),
	)
	return res, nil
}

// ImportBook creates a book and ingests text into it.
func (s *Service) ImportBook(ctx context.Context, title, author, text string) (BookResult, error) {
	book, err := s.books.Create(ctx, title, author)
	if err != nil {
		return BookResult{}, fmt.Errorf("create book: %w", err)
	}
	return s.LoadBook(ctx, book.ID, text)
}

// LoadFlashcard indexes the words of a flashcard keyword, links them to the
// flashcard and links the flashcard to the book sentences that contain them.
// Words without a sense get one from the resolver when it can tell; resolver
// failures are logged and never fail the call.
func (s *Service) LoadFlashcard(ctx context.Context, flashcardID int64, keyword string, bookID int64) (FlashcardResult, error) {
	var res FlashcardResult

	tokens, err := s.classifier.Classify(keyword)
	if err != nil {
		return res, fmt.Errorf("classify flashcard %d: %w", flashcardID, err)
	}
	agg := NewAggregate()
	for _, t := range tokens {
		agg.AddToken(t, 0, flashcardID)
	}

	for _, entries := range agg.Split().All() {
		if _, err := s.writer.SavePreparedWords(ctx, entries); err != nil {
			return res, fmt.Errorf("save flashcard %d words: %w", flashcardID, err)
		}
	}

	res.Words, err = s.words.ListByFlashcard(ctx, flashcardID)
	if err != nil {
		return res, fmt.Errorf("list flashcard %d words: %w", flashcardID, err)
	}

	wordIDs := make([]int64, 0, len(res.Words))
	for _, w := range res.Words {
		wordIDs = append(wordIDs, w.ID)
	}
	res.SentenceIDs, err = s.relations.SentenceIDsForWords(ctx, wordIDs, bookID)
	if err != nil {
		return res, fmt.Errorf("find sentences for flashcard %d: %w", flashcardID, err)
	}
	if _, err := s.relations.Link(ctx, domain.RelationSentenceFlashcard, flashcardID, res.SentenceIDs); err != nil {
		return res, fmt.Errorf("link flashcard %d: %w", flashcardID, err)
	}

	res.Resolved = s.resolveSenses(ctx, res.Words, keyword)
	return res, nil
}

func (s *Service) resolveSenses(ctx context.Context, words []domain.Word, sentence string) int {
	if s.resolver == nil {
		return 0
	}
	resolved := 0
	for _, w := range words {
		if w.Synset != nil {
			continue
		}
		sense, ok, err := s.resolver.ResolveSense(ctx, w.Lem, sentence)
		if err != nil {
			s.log.WarnContext(ctx, "sense resolution failed",
				slog.String("lem", w.Lem),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !ok {
			continue
		}
		if err := s.words.SetSense(ctx, w.ID, sense.ID, sense.Definition); err != nil {
			s.log.WarnContext(ctx, "store sense failed",
				slog.Int64("word_id", w.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		resolved++
	}
	return resolved
}
