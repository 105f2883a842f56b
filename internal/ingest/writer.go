package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type wordRepo interface {
	GetByLemPOS(ctx context.Context, lem string, pos domain.PartOfSpeech, forUpdate bool) (domain.Word, error)
	Create(ctx context.Context, w domain.Word) (domain.Word, error)
	Merge(ctx context.Context, id int64, count int, decl domain.Declination) (domain.Word, error)
}

type sentenceRepo interface {
	Create(ctx context.Context, bookID int64, nr int, text string) (domain.Sentence, error)
	MaxNr(ctx context.Context, bookID int64) (int, error)
}

type relationLinker interface {
	Link(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SaveResult summarizes one SavePreparedWords call.
type SaveResult struct {
	Created int
	Merged  int
	Failed  int
	Linked  int64
	Words   []domain.Word
}

// Writer persists sentences and aggregated words.
type Writer struct {
	log       *slog.Logger
	tx        txManager
	words     wordRepo
	sentences sentenceRepo
	relations relationLinker
	metrics   *Metrics
}

// NewWriter creates a Writer. metrics may be nil.
func NewWriter(log *slog.Logger, tx txManager, words wordRepo, sentences sentenceRepo, relations relationLinker, metrics *Metrics) *Writer {
	return &Writer{
		log:       log.With("component", "writer"),
		tx:        tx,
		words:     words,
		sentences: sentences,
		relations: relations,
		metrics:   metrics,
	}
}

// CreateSentence stores one sentence in its own commit.
func (w *Writer) CreateSentence(ctx context.Context, bookID int64, nr int, text string) (domain.Sentence, error) {
	s, err := w.sentences.Create(ctx, bookID, nr, text)
	if err != nil {
		w.metrics.sentenceFailed()
		return domain.Sentence{}, fmt.Errorf("can't create sentence %d of book %d: %w", nr, bookID, err)
	}
	w.metrics.sentenceCreated()
	return s, nil
}

// SavePreparedWords merges every entry into the words table and links the
// stored word to the entry's sentences and flashcards. Each entry commits on
// its own; a failing entry is logged and counted, the rest still run.
func (w *Writer) SavePreparedWords(ctx context.Context, entries []Entry) (SaveResult, error) {
	var res SaveResult
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		word, created, err := w.saveWord(ctx, e)
		if err != nil {
			res.Failed++
			w.metrics.wordFailed()
			w.log.WarnContext(ctx, "save word failed",
				slog.String("lem", e.Lem),
				slog.String("pos", e.POS.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if created {
			res.Created++
			w.metrics.wordCreated()
		} else {
			res.Merged++
			w.metrics.wordMerged()
		}
		res.Words = append(res.Words, word)

		n, err := w.link(ctx, word.ID, e)
		res.Linked += n
		if err != nil {
			res.Failed++
			w.log.WarnContext(ctx, "link word failed",
				slog.Int64("word_id", word.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return res, nil
}

// saveWord runs the lookup-or-create step. A creation conflict means a
// concurrent writer won; the lookup is tried once more.
func (w *Writer) saveWord(ctx context.Context, e Entry) (domain.Word, bool, error) {
	word, created, err := w.mergeOrCreate(ctx, e)
	if errors.Is(err, domain.ErrAlreadyExists) {
		w.log.DebugContext(ctx, "can't create word, retrying merge", slog.String("lem", e.Lem))
		word, created, err = w.mergeOrCreate(ctx, e)
	}
	if err != nil {
		return domain.Word{}, false, err
	}
	return word, created, nil
}

func (w *Writer) mergeOrCreate(ctx context.Context, e Entry) (domain.Word, bool, error) {
	var (
		word    domain.Word
		created bool
	)
	err := w.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := w.words.GetByLemPOS(ctx, e.Lem, e.POS, true)
		switch {
		case err == nil:
			word, err = w.words.Merge(ctx, existing.ID, e.Count, e.Declination)
			return err
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		word, err = w.words.Create(ctx, domain.Word{
			Lem:         e.Lem,
			POS:         e.POS,
			Count:       e.Count,
			Declination: e.Declination.Clone(),
		})
		if err != nil {
			return fmt.Errorf("can't create word: %w", err)
		}
		created = true
		return nil
	})
	return word, created, err
}

func (w *Writer) link(ctx context.Context, wordID int64, e Entry) (int64, error) {
	var total int64
	var errs []error
	if ids := e.SentenceIDs.Sorted(); len(ids) > 0 {
		n, err := w.relations.Link(ctx, domain.RelationSentenceWord, wordID, ids)
		total += n
		errs = append(errs, err)
	}
	if ids := e.FlashcardIDs.Sorted(); len(ids) > 0 {
		n, err := w.relations.Link(ctx, domain.RelationFlashcardWord, wordID, ids)
		total += n
		errs = append(errs, err)
	}
	w.metrics.relationsLinked(total)
	return total, errors.Join(errs...)
}
