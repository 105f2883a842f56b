// Package flashcard implements the flashcards repository.
package flashcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// Repo provides flashcard persistence operations.
type Repo struct {
	db postgres.Querier
}

// New creates a new flashcard repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a flashcard for a keyword.
func (r *Repo) Create(ctx context.Context, keyword string) (domain.Flashcard, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.Flashcard{}, domain.NewValidationError("keyword", "required")
	}

	query, args, err := postgres.Builder().
		Insert("flashcards").
		Columns("keyword").
		Values(keyword).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Flashcard{}, fmt.Errorf("build insert flashcard: %w", err)
	}

	f := domain.Flashcard{Keyword: keyword}
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt); err != nil {
		return domain.Flashcard{}, postgres.MapError(err, "flashcard", keyword)
	}
	return f, nil
}

// GetByID returns a flashcard by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Flashcard, error) {
	f := domain.Flashcard{ID: id}
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT keyword, created_at FROM flashcards WHERE id = $1`, id).
		Scan(&f.Keyword, &f.CreatedAt)
	if err != nil {
		return domain.Flashcard{}, postgres.MapError(err, "flashcard", id)
	}
	return f, nil
}
