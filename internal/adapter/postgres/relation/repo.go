// Package relation links words, sentences and flashcards through the
// junction tables. Every call is a single statement, so it commits once
// regardless of how many target ids it carries.
package relation

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type junction struct {
	table  string
	source string
	target string
}

var junctions = map[domain.RelationKind]junction{
	domain.RelationSentenceWord:      {table: "sentence_words", source: "word_id", target: "sentence_id"},
	domain.RelationFlashcardWord:     {table: "flashcard_words", source: "word_id", target: "flashcard_id"},
	domain.RelationSentenceFlashcard: {table: "sentence_flashcards", source: "flashcard_id", target: "sentence_id"},
}

func lookup(kind domain.RelationKind) (junction, error) {
	j, ok := junctions[kind]
	if !ok {
		return junction{}, domain.NewValidationError("relation", "unknown kind "+string(kind))
	}
	return j, nil
}

// Repo provides relation persistence operations.
type Repo struct {
	db postgres.Querier
}

// New creates a new relation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Link creates the (sourceID, targetID) rows that do not exist yet and returns
// how many were created. Re-linking an existing pair is a no-op.
func (r *Repo) Link(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (int64, error) {
	rel, err := lookup(kind)
	if err != nil {
		return 0, err
	}
	targets := dedupe(targetIDs)
	if len(targets) == 0 {
		return 0, nil
	}

	b := postgres.Builder().
		Insert(rel.table).
		Columns(rel.source, rel.target)
	for _, id := range targets {
		b = b.Values(sourceID, id)
	}
	b = b.Suffix(fmt.Sprintf("ON CONFLICT (%s, %s) DO NOTHING", rel.source, rel.target))

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build link %s: %w", rel.table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, rel.table, sourceID)
	}
	return tag.RowsAffected(), nil
}

// Unlink deletes the (sourceID, targetID) rows in bulk. Missing rows are not an error.
func (r *Repo) Unlink(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (int64, error) {
	rel, err := lookup(kind)
	if err != nil {
		return 0, err
	}
	targets := dedupe(targetIDs)
	if len(targets) == 0 {
		return 0, nil
	}

	query, args, err := postgres.Builder().
		Delete(rel.table).
		Where(squirrel.Eq{rel.source: sourceID}).
		Where(squirrel.Eq{rel.target: targets}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build unlink %s: %w", rel.table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, rel.table, sourceID)
	}
	return tag.RowsAffected(), nil
}

// Targets returns the target ids linked to sourceID, ascending.
func (r *Repo) Targets(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error) {
	rel, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	query, args, err := postgres.Builder().
		Select(rel.target).
		From(rel.table).
		Where(squirrel.Eq{rel.source: sourceID}).
		OrderBy(rel.target).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build targets %s: %w", rel.table, err)
	}

	var ids []int64
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, query, args...); err != nil {
		return nil, postgres.MapError(err, rel.table, sourceID)
	}
	return ids, nil
}

// SentenceIDsForWords returns the ids of the book's sentences that contain any
// of the given words, ascending.
func (r *Repo) SentenceIDsForWords(ctx context.Context, wordIDs []int64, bookID int64) ([]int64, error) {
	ids := dedupe(wordIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := postgres.Builder().
		Select("DISTINCT sw.sentence_id").
		From("sentence_words sw").
		Join("sentences s ON s.id = sw.sentence_id").
		Where(squirrel.Eq{"sw.word_id": ids}).
		Where(squirrel.Eq{"s.book_id": bookID}).
		OrderBy("sw.sentence_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sentence ids for words: %w", err)
	}

	var out []int64
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "book", bookID)
	}
	return out, nil
}

func dedupe(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
