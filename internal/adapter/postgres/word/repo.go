// Package word implements the words repository. Words are shared across books
// and identified by the natural key (lem, pos).
package word

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

var wordColumns = []string{"id", "lem", "pos", "count", "declination", "definition", "synset"}

// Repo provides word persistence operations.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByLemPOS looks a word up by its natural key. An empty pos matches legacy
// rows without a part of speech. With forUpdate the row is locked until the
// surrounding transaction ends.
func (r *Repo) GetByLemPOS(ctx context.Context, lem string, pos domain.PartOfSpeech, forUpdate bool) (domain.Word, error) {
	b := postgres.Builder().
		Select(wordColumns...).
		From("words").
		Where(squirrel.Eq{"lem": lem, "pos": posArg(pos)})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Word{}, fmt.Errorf("build select word: %w", err)
	}

	w, err := scanWord(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Word{}, postgres.MapError(err, "word", naturalKey(lem, pos))
	}
	return w, nil
}

// GetByID returns a word by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Word, error) {
	query, args, err := postgres.Builder().
		Select(wordColumns...).
		From("words").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Word{}, fmt.Errorf("build select word: %w", err)
	}

	w, err := scanWord(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Word{}, postgres.MapError(err, "word", id)
	}
	return w, nil
}

// ListLemmas returns distinct lemmas, most frequent first. limit <= 0 means no limit.
func (r *Repo) ListLemmas(ctx context.Context, limit int) ([]string, error) {
	b := postgres.Builder().
		Select("lem").
		From("words").
		GroupBy("lem").
		OrderBy("SUM(count) DESC", "lem")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list lemmas: %w", err)
	}

	var lemmas []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &lemmas, query, args...); err != nil {
		return nil, fmt.Errorf("list lemmas: %w", err)
	}
	return lemmas, nil
}

// ListByFlashcard returns the words linked to a flashcard.
func (r *Repo) ListByFlashcard(ctx context.Context, flashcardID int64) ([]domain.Word, error) {
	query, args, err := postgres.Builder().
		Select(prefixed("w", wordColumns)...).
		From("words w").
		Join("flashcard_words fw ON fw.word_id = w.id").
		Where(squirrel.Eq{"fw.flashcard_id": flashcardID}).
		OrderBy("w.lem", "w.pos").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list flashcard words: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "flashcard", flashcardID)
	}

	out := make([]domain.Word, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new word. A concurrent writer that already created the same
// (lem, pos) makes this fail with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, w domain.Word) (domain.Word, error) {
	decl := w.Declination
	if decl == nil {
		decl = domain.Declination{}
	}

	query, args, err := postgres.Builder().
		Insert("words").
		Columns("lem", "pos", "count", "declination", "definition", "synset").
		Values(w.Lem, posArg(w.POS), w.Count, decl, w.Definition, w.Synset).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.Word{}, fmt.Errorf("build insert word: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&w.ID); err != nil {
		return domain.Word{}, postgres.MapError(err, "word", naturalKey(w.Lem, w.POS))
	}
	w.Declination = decl
	return w, nil
}

const mergeSQL = `
UPDATE words
SET count = count + $2,
    declination = $3::jsonb || declination
WHERE id = $1
RETURNING id, lem, pos, count, declination, definition, synset`

// Merge adds count to the stored counter and unions decl into the stored
// declination. Tags already present keep their stored spelling.
func (r *Repo) Merge(ctx context.Context, id int64, count int, decl domain.Declination) (domain.Word, error) {
	if decl == nil {
		decl = domain.Declination{}
	}
	w, err := scanWord(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, mergeSQL, id, count, decl))
	if err != nil {
		return domain.Word{}, postgres.MapError(err, "word", id)
	}
	return w, nil
}

// SetSense stores a resolved synset and its definition.
func (r *Repo) SetSense(ctx context.Context, id int64, synset, definition string) error {
	query, args, err := postgres.Builder().
		Update("words").
		Set("synset", synset).
		Set("definition", definition).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update word sense: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "word", id)
	}
	return nil
}
