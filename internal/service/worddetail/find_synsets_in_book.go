package worddetail

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// FindSynsetsInBook resolves the sense of the word in every sentence of the
// book that contains it, in reading order. Once the sense server is found
// unreachable the remaining sentences are not asked and carry the same
// ErrorMessage.
func (s *Service) FindSynsetsInBook(ctx context.Context, wordID, bookID int64) ([]Detail, error) {
	var errs []domain.FieldError
	if wordID <= 0 {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if bookID <= 0 {
		errs = append(errs, domain.FieldError{Field: "book_id", Message: "required"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	linked, err := s.relations.Targets(ctx, domain.RelationSentenceWord, wordID)
	if err != nil {
		return nil, fmt.Errorf("list word sentences: %w", err)
	}
	if len(linked) == 0 {
		return nil, nil
	}
	sentences, err := s.sentences.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book sentences: %w", err)
	}

	var (
		out         []Detail
		unavailable bool
	)
	for _, sentence := range sentences {
		if _, ok := slices.BinarySearch(linked, sentence.ID); !ok {
			continue
		}
		if unavailable {
			out = append(out, Detail{Word: word, Sentence: sentence, ErrorMessage: ErrMessageUnavailable})
			continue
		}
		detail, err := s.ask(ctx, word, sentence)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", sentence.ID, err)
		}
		unavailable = detail.ErrorMessage != ""
		out = append(out, detail)
	}
	return out, nil
}
