package domain

import "time"

// Book owns an ordered sequence of Sentences. The counters are derived
// and only ever recomputed, never maintained incrementally.
type Book struct {
	ID             int64
	Title          string
	Author         string
	SentencesCount int
	WordsCount     int
	CreatedAt      time.Time
}

// Sentence is one segmented sentence of a book. Nr is unique within a book
// and follows segmentation order.
type Sentence struct {
	ID        int64
	BookID    int64
	Nr        int
	Text      string
	CreatedAt time.Time
}

// Flashcard is a learner keyword that can be linked to words and sentences.
type Flashcard struct {
	ID        int64
	Keyword   string
	CreatedAt time.Time
}
