// Package sentence implements the sentences repository.
package sentence

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// Repo provides sentence persistence operations.
type Repo struct {
	db postgres.Querier
}

// New creates a new sentence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type sentenceRow struct {
	ID        int64     `db:"id"`
	BookID    int64     `db:"book_id"`
	Nr        int       `db:"nr"`
	Sentence  string    `db:"sentence"`
	CreatedAt time.Time `db:"created_at"`
}

func (r sentenceRow) toDomain() domain.Sentence {
	return domain.Sentence{ID: r.ID, BookID: r.BookID, Nr: r.Nr, Text: r.Sentence, CreatedAt: r.CreatedAt}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts one sentence in its own statement. A duplicate (book_id, nr)
// is reported as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, bookID int64, nr int, text string) (domain.Sentence, error) {
	query, args, err := postgres.Builder().
		Insert("sentences").
		Columns("book_id", "nr", "sentence").
		Values(bookID, nr, text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Sentence{}, fmt.Errorf("build insert sentence: %w", err)
	}

	s := domain.Sentence{BookID: bookID, Nr: nr, Text: text}
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return domain.Sentence{}, postgres.MapError(err, "sentence", fmt.Sprintf("%d/%d", bookID, nr))
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// MaxNr returns the highest nr stored for the book, 0 when it has no sentences.
func (r *Repo) MaxNr(ctx context.Context, bookID int64) (int, error) {
	var nr int
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT COALESCE(MAX(nr), 0) FROM sentences WHERE book_id = $1`, bookID).
		Scan(&nr)
	if err != nil {
		return 0, postgres.MapError(err, "book", bookID)
	}
	return nr, nil
}

// GetByID returns a sentence by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Sentence, error) {
	var row sentenceRow
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT id, book_id, nr, sentence, created_at FROM sentences WHERE id = $1`, id).
		Scan(&row.ID, &row.BookID, &row.Nr, &row.Sentence, &row.CreatedAt)
	if err != nil {
		return domain.Sentence{}, postgres.MapError(err, "sentence", id)
	}
	return row.toDomain(), nil
}

// ListByBook returns the sentences of a book ordered by nr.
func (r *Repo) ListByBook(ctx context.Context, bookID int64) ([]domain.Sentence, error) {
	query, args, err := postgres.Builder().
		Select("id", "book_id", "nr", "sentence", "created_at").
		From("sentences").
		Where("book_id = ?", bookID).
		OrderBy("nr").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sentences: %w", err)
	}

	var rows []sentenceRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "book", bookID)
	}

	out := make([]domain.Sentence, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}
