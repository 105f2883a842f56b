// Package book implements the books repository.
package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

var bookColumns = []string{"id", "title", "author", "sentences_count", "words_count", "created_at"}

// Repo provides book persistence operations.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a book with zero counters.
func (r *Repo) Create(ctx context.Context, title, author string) (domain.Book, error) {
	if title == "" {
		return domain.Book{}, domain.NewValidationError("title", "required")
	}

	query, args, err := postgres.Builder().
		Insert("books").
		Columns("title", "author").
		Values(title, author).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return domain.Book{}, fmt.Errorf("build insert book: %w", err)
	}

	var row bookRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.Book{}, postgres.MapError(err, "book", title)
	}
	return row.toDomain(), nil
}

// GetByID returns a book by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Book, error) {
	query, args, err := postgres.Builder().
		Select(bookColumns...).
		From("books").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return domain.Book{}, fmt.Errorf("build select book: %w", err)
	}

	var row bookRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.Book{}, postgres.MapError(err, "book", id)
	}
	return row.toDomain(), nil
}

const recomputeCountersSQL = `
UPDATE books SET
    sentences_count = (SELECT count(*) FROM sentences WHERE book_id = $1),
    words_count = (
        SELECT count(DISTINCT sw.word_id)
        FROM sentence_words sw
        JOIN sentences s ON s.id = sw.sentence_id
        WHERE s.book_id = $1
    )
WHERE id = $1
RETURNING id, title, author, sentences_count, words_count, created_at`

// RecomputeCounters derives sentences_count and words_count from the stored rows.
func (r *Repo) RecomputeCounters(ctx context.Context, id int64) (domain.Book, error) {
	var row bookRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, recomputeCountersSQL, id); err != nil {
		return domain.Book{}, postgres.MapError(err, "book", id)
	}
	return row.toDomain(), nil
}

func columnList() string {
	return strings.Join(bookColumns, ", ")
}
