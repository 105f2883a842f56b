package worddetail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

//go:generate moq -out word_repo_mock_test.go -pkg worddetail . wordRepo
//go:generate moq -out sentence_repo_mock_test.go -pkg worddetail . sentenceRepo
//go:generate moq -out relation_repo_mock_test.go -pkg worddetail . relationRepo
//go:generate moq -out definition_finder_mock_test.go -pkg worddetail . definitionFinder

func newTestService(finder *definitionFinderMock) (*Service, *wordRepoMock, *sentenceRepoMock) {
	words := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (domain.Word, error) {
			if id != 7 {
				return domain.Word{}, domain.ErrNotFound
			}
			return domain.Word{ID: 7, Lem: "bank", POS: domain.PartOfSpeechNoun, Count: 3}, nil
		},
	}
	sentences := &sentenceRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (domain.Sentence, error) {
			if id != 11 {
				return domain.Sentence{}, domain.ErrNotFound
			}
			return domain.Sentence{ID: 11, BookID: 1, Nr: 4, Text: "He cashed a check at the bank."}, nil
		},
		ListByBookFunc: func(ctx context.Context, bookID int64) ([]domain.Sentence, error) {
			if bookID != 1 {
				return nil, nil
			}
			return []domain.Sentence{
				{ID: 10, BookID: 1, Nr: 3, Text: "The river was quiet."},
				{ID: 11, BookID: 1, Nr: 4, Text: "He cashed a check at the bank."},
				{ID: 12, BookID: 1, Nr: 5, Text: "They sat on the bank of the river."},
			}, nil
		},
	}
	relations := &relationRepoMock{
		TargetsFunc: func(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error) {
			if kind != domain.RelationSentenceWord || sourceID != 7 {
				return nil, nil
			}
			// Sentence 40 belongs to another book.
			return []int64{11, 12, 40}, nil
		},
	}
	return NewService(slog.Default(), words, sentences, relations, finder), words, sentences
}

func TestFindSynset_Success(t *testing.T) {
	t.Parallel()

	finder := &definitionFinderMock{
		FindDefinitionFunc: func(ctx context.Context, word, sentence string) (wsd.Response, error) {
			return wsd.Response{
				Found:         1,
				Word:          word,
				MatchedSynset: "depository_financial_institution.n.01",
				Synsets: []wsd.SynsetMatch{
					{ID: "bank.n.01", Definition: "sloping land"},
					{Match: true, ID: "depository_financial_institution.n.01", Definition: "a financial institution"},
				},
			}, nil
		},
	}
	svc, _, _ := newTestService(finder)

	got, err := svc.FindSynset(context.Background(), 7, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Found {
		t.Error("Found = false, want true")
	}
	if got.MatchedSynset != "depository_financial_institution.n.01" {
		t.Errorf("MatchedSynset = %q", got.MatchedSynset)
	}
	if len(got.Synsets) != 2 {
		t.Fatalf("Synsets len = %d, want 2", len(got.Synsets))
	}
	if got.ErrorMessage != "" {
		t.Errorf("ErrorMessage = %q, want empty", got.ErrorMessage)
	}
	if got.Word.ID != 7 || got.Sentence.ID != 11 {
		t.Errorf("word/sentence = %d/%d", got.Word.ID, got.Sentence.ID)
	}

	calls := finder.FindDefinitionCalls()
	if len(calls) != 1 {
		t.Fatalf("FindDefinition calls = %d, want 1", len(calls))
	}
	if calls[0].Word != "bank" || calls[0].Sentence != "He cashed a check at the bank." {
		t.Errorf("FindDefinition called with %q / %q", calls[0].Word, calls[0].Sentence)
	}
}

func TestFindSynset_ServerUnavailable(t *testing.T) {
	t.Parallel()

	finder := &definitionFinderMock{
		FindDefinitionFunc: func(ctx context.Context, word, sentence string) (wsd.Response, error) {
			return wsd.Response{}, fmt.Errorf("dial: %w", domain.ErrUnavailable)
		},
	}
	svc, _, _ := newTestService(finder)

	got, err := svc.FindSynset(context.Background(), 7, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ErrorMessage != ErrMessageUnavailable {
		t.Errorf("ErrorMessage = %q, want %q", got.ErrorMessage, ErrMessageUnavailable)
	}
	if got.Synsets != nil {
		t.Errorf("Synsets = %v, want nil", got.Synsets)
	}
	if got.Word.Lem != "bank" {
		t.Errorf("Word.Lem = %q, want bank", got.Word.Lem)
	}
}

func TestFindSynset_OtherFinderError(t *testing.T) {
	t.Parallel()

	finder := &definitionFinderMock{
		FindDefinitionFunc: func(ctx context.Context, word, sentence string) (wsd.Response, error) {
			return wsd.Response{}, errors.New("decode response: bad json")
		},
	}
	svc, _, _ := newTestService(finder)

	if _, err := svc.FindSynset(context.Background(), 7, 11); err == nil {
		t.Fatal("expected error")
	}
}

func TestFindSynset_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		wordID     int64
		sentenceID int64
	}{
		{"unknown word", 8, 11},
		{"unknown sentence", 7, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			finder := &definitionFinderMock{}
			svc, _, _ := newTestService(finder)

			_, err := svc.FindSynset(context.Background(), tt.wordID, tt.sentenceID)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}
			if n := len(finder.FindDefinitionCalls()); n != 0 {
				t.Errorf("FindDefinition calls = %d, want 0", n)
			}
		})
	}
}

func TestFindSynset_Validation(t *testing.T) {
	t.Parallel()

	svc, words, _ := newTestService(&definitionFinderMock{})

	_, err := svc.FindSynset(context.Background(), 0, -1)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("field errors = %d, want 2", len(verr.Errors))
	}
	if len(words.GetByIDCalls()) != 0 {
		t.Error("repository should not be called")
	}
}

func TestFindSynsetsInBook_Success(t *testing.T) {
	t.Parallel()

	finder := &definitionFinderMock{
		FindDefinitionFunc: func(ctx context.Context, word, sentence string) (wsd.Response, error) {
			matched := "bank.n.01"
			if sentence == "He cashed a check at the bank." {
				matched = "depository_financial_institution.n.01"
			}
			return wsd.Response{Found: 1, Word: word, MatchedSynset: matched}, nil
		},
	}
	svc, _, sentences := newTestService(finder)

	got, err := svc.FindSynsetsInBook(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("details = %d, want 2", len(got))
	}
	if got[0].Sentence.ID != 11 || got[0].MatchedSynset != "depository_financial_institution.n.01" {
		t.Errorf("details[0] = sentence %d, %q", got[0].Sentence.ID, got[0].MatchedSynset)
	}
	if got[1].Sentence.ID != 12 || got[1].MatchedSynset != "bank.n.01" {
		t.Errorf("details[1] = sentence %d, %q", got[1].Sentence.ID, got[1].MatchedSynset)
	}
	if n := len(finder.FindDefinitionCalls()); n != 2 {
		t.Errorf("FindDefinition calls = %d, want 2", n)
	}
	if calls := sentences.ListByBookCalls(); len(calls) != 1 || calls[0].BookID != 1 {
		t.Errorf("ListByBook calls = %+v", calls)
	}
}

func TestFindSynsetsInBook_ServerUnavailableStopsAsking(t *testing.T) {
	t.Parallel()

	finder := &definitionFinderMock{
		FindDefinitionFunc: func(ctx context.Context, word, sentence string) (wsd.Response, error) {
			return wsd.Response{}, fmt.Errorf("dial: %w", domain.ErrUnavailable)
		},
	}
	svc, _, _ := newTestService(finder)

	got, err := svc.FindSynsetsInBook(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("details = %d, want 2", len(got))
	}
	for i, d := range got {
		if d.ErrorMessage != ErrMessageUnavailable {
			t.Errorf("details[%d].ErrorMessage = %q", i, d.ErrorMessage)
		}
	}
	if n := len(finder.FindDefinitionCalls()); n != 1 {
		t.Errorf("FindDefinition calls = %d, want 1", n)
	}
}

func TestFindSynsetsInBook_WordNotInBook(t *testing.T) {
	t.Parallel()

	finder := &definitionFinderMock{}
	svc, _, _ := newTestService(finder)

	got, err := svc.FindSynsetsInBook(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("details = %d, want 0", len(got))
	}
	if n := len(finder.FindDefinitionCalls()); n != 0 {
		t.Errorf("FindDefinition calls = %d, want 0", n)
	}
}

func TestFindSynsetsInBook_Errors(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(&definitionFinderMock{})

	_, err := svc.FindSynsetsInBook(context.Background(), 7, 0)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	_, err = svc.FindSynsetsInBook(context.Background(), 8, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
