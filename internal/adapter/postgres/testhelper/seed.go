package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBook inserts a book with a unique title.
func SeedBook(t *testing.T, pool *pgxpool.Pool) domain.Book {
	t.Helper()

	b := domain.Book{Title: "Book " + UniqueSuffix(), Author: "Test Author"}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO books (title, author) VALUES ($1, $2) RETURNING id, created_at`,
		b.Title, b.Author,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedBook: %v", err)
	}
	return b
}

// SeedSentence inserts a sentence of bookID with the given nr.
func SeedSentence(t *testing.T, pool *pgxpool.Pool, bookID int64, nr int, text string) domain.Sentence {
	t.Helper()

	s := domain.Sentence{BookID: bookID, Nr: nr, Text: text}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO sentences (book_id, nr, sentence) VALUES ($1, $2, $3) RETURNING id, created_at`,
		bookID, nr, text,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSentence: %v", err)
	}
	return s
}

// SeedWord inserts a word row. The lemma gets a unique suffix so tests never collide
// on (lem, pos); the stored lemma is returned in the result.
func SeedWord(t *testing.T, pool *pgxpool.Pool, lem string, pos domain.PartOfSpeech, count int, decl domain.Declination) domain.Word {
	t.Helper()

	w := domain.Word{Lem: lem + "-" + UniqueSuffix(), POS: pos, Count: count, Declination: decl.Clone()}
	raw, err := json.Marshal(w.Declination)
	if err != nil {
		t.Fatalf("testhelper: SeedWord marshal: %v", err)
	}
	err = pool.QueryRow(context.Background(),
		`INSERT INTO words (lem, pos, count, declination) VALUES ($1, $2, $3, $4) RETURNING id`,
		w.Lem, string(pos), count, raw,
	).Scan(&w.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedWord: %v", err)
	}
	return w
}

// SeedFlashcard inserts a flashcard for keyword.
func SeedFlashcard(t *testing.T, pool *pgxpool.Pool, keyword string) domain.Flashcard {
	t.Helper()

	f := domain.Flashcard{Keyword: keyword}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO flashcards (keyword) VALUES ($1) RETURNING id, created_at`, keyword,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedFlashcard: %v", err)
	}
	return f
}
