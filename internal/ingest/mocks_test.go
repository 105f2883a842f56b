package ingest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type mockTx struct{}

func (mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type mockWordRepo struct {
	getByLemPOSFn func(ctx context.Context, lem string, pos domain.PartOfSpeech, forUpdate bool) (domain.Word, error)
	createFn      func(ctx context.Context, w domain.Word) (domain.Word, error)
	mergeFn       func(ctx context.Context, id int64, count int, decl domain.Declination) (domain.Word, error)
}

func (m *mockWordRepo) GetByLemPOS(ctx context.Context, lem string, pos domain.PartOfSpeech, forUpdate bool) (domain.Word, error) {
	return m.getByLemPOSFn(ctx, lem, pos, forUpdate)
}
func (m *mockWordRepo) Create(ctx context.Context, w domain.Word) (domain.Word, error) {
	return m.createFn(ctx, w)
}
func (m *mockWordRepo) Merge(ctx context.Context, id int64, count int, decl domain.Declination) (domain.Word, error) {
	return m.mergeFn(ctx, id, count, decl)
}

type linkCall struct {
	kind    domain.RelationKind
	source  int64
	targets []int64
}

type mockRelations struct {
	mu          sync.Mutex
	links       []linkCall
	sentenceIDs []int64
	linkErr     error
}

func (m *mockRelations) Link(_ context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkErr != nil {
		return 0, m.linkErr
	}
	m.links = append(m.links, linkCall{kind: kind, source: sourceID, targets: targetIDs})
	return int64(len(targetIDs)), nil
}

// wordsOf returns the word ids linked to flashcardID so far.
func (m *mockRelations) wordsOf(flashcardID int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for _, l := range m.links {
		if l.kind == domain.RelationFlashcardWord && slices.Contains(l.targets, flashcardID) {
			ids = append(ids, l.source)
		}
	}
	return ids
}

func (m *mockRelations) SentenceIDsForWords(context.Context, []int64, int64) ([]int64, error) {
	return m.sentenceIDs, nil
}

// memWords is an in-memory words table keyed by (lem, pos). Flashcard links
// are read from relations.
type memWords struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[string]*domain.Word
	senses    map[int64]string
	relations *mockRelations
}

func newMemWords() *memWords {
	return &memWords{rows: make(map[string]*domain.Word), senses: make(map[int64]string)}
}

func (m *memWords) GetByLemPOS(_ context.Context, lem string, pos domain.PartOfSpeech, _ bool) (domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.rows[lem+"/"+string(pos)]
	if !ok {
		return domain.Word{}, fmt.Errorf("word %s: %w", lem, domain.ErrNotFound)
	}
	return *w, nil
}

func (m *memWords) Create(_ context.Context, w domain.Word) (domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := w.Lem + "/" + string(w.POS)
	if _, ok := m.rows[key]; ok {
		return domain.Word{}, fmt.Errorf("word %s: %w", key, domain.ErrAlreadyExists)
	}
	m.nextID++
	w.ID = m.nextID
	m.rows[key] = &w
	return w, nil
}

func (m *memWords) Merge(_ context.Context, id int64, count int, decl domain.Declination) (domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.rows {
		if w.ID == id {
			w.Count += count
			w.Declination = w.Declination.Union(decl)
			return *w, nil
		}
	}
	return domain.Word{}, domain.ErrNotFound
}

func (m *memWords) ListByFlashcard(_ context.Context, flashcardID int64) ([]domain.Word, error) {
	var ids []int64
	if m.relations != nil {
		ids = m.relations.wordsOf(flashcardID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Word
	for _, w := range m.rows {
		if slices.Contains(ids, w.ID) {
			out = append(out, *w)
		}
	}
	slices.SortFunc(out, func(a, b domain.Word) int { return strings.Compare(a.Lem, b.Lem) })
	return out, nil
}

func (m *memWords) SetSense(_ context.Context, id int64, synset, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.senses[id] = synset
	return nil
}

// memSentences is an in-memory sentences table.
type memSentences struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.Sentence
	failNr map[int]bool
}

func (m *memSentences) Create(_ context.Context, bookID int64, nr int, text string) (domain.Sentence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNr[nr] {
		return domain.Sentence{}, fmt.Errorf("sentence %d: %w", nr, domain.ErrAlreadyExists)
	}
	m.nextID++
	s := domain.Sentence{ID: m.nextID, BookID: bookID, Nr: nr, Text: text}
	m.rows = append(m.rows, s)
	return s, nil
}

func (m *memSentences) MaxNr(_ context.Context, bookID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxNr := 0
	for _, s := range m.rows {
		if s.BookID == bookID && s.Nr > maxNr {
			maxNr = s.Nr
		}
	}
	return maxNr, nil
}

type mockBooks struct {
	recomputed []int64
	missing    map[int64]bool
}

func (m *mockBooks) GetByID(_ context.Context, id int64) (domain.Book, error) {
	if m.missing[id] {
		return domain.Book{}, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return domain.Book{ID: id}, nil
}

func (m *mockBooks) Create(_ context.Context, title, author string) (domain.Book, error) {
	return domain.Book{ID: 3, Title: title, Author: author}, nil
}

func (m *mockBooks) RecomputeCounters(_ context.Context, id int64) (domain.Book, error) {
	m.recomputed = append(m.recomputed, id)
	return domain.Book{ID: id, SentencesCount: 2, WordsCount: 4}, nil
}

type mockResolver struct {
	resolveFn func(ctx context.Context, word, sentence string) (domain.Synset, bool, error)
}

func (m *mockResolver) ResolveSense(ctx context.Context, word, sentence string) (domain.Synset, bool, error) {
	return m.resolveFn(ctx, word, sentence)
}
