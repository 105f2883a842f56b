package worddetail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

// ErrMessageUnavailable is reported in Detail.ErrorMessage when the sense
// server cannot be reached.
const ErrMessageUnavailable = "can't connect to the word sense server"

// FindSynset asks the sense server which sense of the word is used in the
// sentence.
func (s *Service) FindSynset(ctx context.Context, wordID, sentenceID int64) (Detail, error) {
	var errs []domain.FieldError
	if wordID <= 0 {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if sentenceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "sentence_id", Message: "required"})
	}
	if len(errs) > 0 {
		return Detail{}, domain.NewValidationErrors(errs)
	}

	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return Detail{}, fmt.Errorf("get word: %w", err)
	}
	sentence, err := s.sentences.GetByID(ctx, sentenceID)
	if err != nil {
		return Detail{}, fmt.Errorf("get sentence: %w", err)
	}

	return s.ask(ctx, word, sentence)
}

// ask queries the sense server. An unreachable server is reported through
// Detail.ErrorMessage, any other failure as an error.
func (s *Service) ask(ctx context.Context, word domain.Word, sentence domain.Sentence) (Detail, error) {
	detail := Detail{Word: word, Sentence: sentence}

	resp, err := s.finder.FindDefinition(ctx, word.Lem, sentence.Text)
	if err != nil {
		if !wsd.IsUnavailable(err) {
			return Detail{}, fmt.Errorf("find definition: %w", err)
		}
		s.log.WarnContext(ctx, "sense server unavailable",
			slog.Int64("word_id", word.ID),
			slog.String("error", err.Error()),
		)
		detail.ErrorMessage = ErrMessageUnavailable
		return detail, nil
	}

	detail.Found = resp.Found == 1
	detail.MatchedSynset = resp.MatchedSynset
	detail.Synsets = resp.Synsets
	return detail, nil
}
