// Package worddetail answers "which sense of this word is meant here" for a
// stored word in a stored sentence, or in every sentence of a book that
// contains it.
package worddetail

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

type wordRepo interface {
	GetByID(ctx context.Context, id int64) (domain.Word, error)
}

type sentenceRepo interface {
	GetByID(ctx context.Context, id int64) (domain.Sentence, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.Sentence, error)
}

type relationRepo interface {
	Targets(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error)
}

type definitionFinder interface {
	FindDefinition(ctx context.Context, word, sentence string) (wsd.Response, error)
}

// Service provides word detail queries.
type Service struct {
	log       *slog.Logger
	words     wordRepo
	sentences sentenceRepo
	relations relationRepo
	finder    definitionFinder
}

// NewService creates a word detail service.
func NewService(
	log *slog.Logger,
	words wordRepo,
	sentences sentenceRepo,
	relations relationRepo,
	finder definitionFinder,
) *Service {
	return &Service{
		log:       log.With("service", "worddetail"),
		words:     words,
		sentences: sentences,
		relations: relations,
		finder:    finder,
	}
}
