package book_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/book"
	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

func newRepo(t *testing.T) (*book.Repo, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	pool := testhelper.SetupTestDB(t)
	return book.New(pool), pool
}

func TestRepo_Create_Validation(t *testing.T) {
	t.Parallel()
	// Validation runs before any query, so no database is needed.
	_, err := book.New(nil).Create(context.Background(), "", "Orwell")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Animal Farm", "George Orwell")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Errorf("unexpected book: %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Animal Farm" || got.Author != "George Orwell" {
		t.Errorf("got %+v", got)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), -1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_RecomputeCounters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	b := testhelper.SeedBook(t, pool)
	s1 := testhelper.SeedSentence(t, pool, b.ID, 1, "The pig slept.")
	s2 := testhelper.SeedSentence(t, pool, b.ID, 2, "The pig woke.")
	pig := testhelper.SeedWord(t, pool, "pig", domain.PartOfSpeechNoun, 2, nil)
	sleep := testhelper.SeedWord(t, pool, "sleep", domain.PartOfSpeechVerb, 1, nil)

	for _, pair := range [][2]int64{{s1.ID, pig.ID}, {s2.ID, pig.ID}, {s1.ID, sleep.ID}} {
		if _, err := pool.Exec(ctx, `INSERT INTO sentence_words (sentence_id, word_id) VALUES ($1, $2)`, pair[0], pair[1]); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	got, err := repo.RecomputeCounters(ctx, b.ID)
	if err != nil {
		t.Fatalf("RecomputeCounters: %v", err)
	}
	if got.SentencesCount != 2 {
		t.Errorf("SentencesCount = %d, want 2", got.SentencesCount)
	}
	if got.WordsCount != 2 {
		t.Errorf("WordsCount = %d, want 2", got.WordsCount)
	}
}
