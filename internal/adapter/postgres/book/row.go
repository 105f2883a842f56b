package book

import (
	"time"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type bookRow struct {
	ID             int64     `db:"id"`
	Title          string    `db:"title"`
	Author         string    `db:"author"`
	SentencesCount int       `db:"sentences_count"`
	WordsCount     int       `db:"words_count"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r bookRow) toDomain() domain.Book {
	return domain.Book{
		ID:             r.ID,
		Title:          r.Title,
		Author:         r.Author,
		SentencesCount: r.SentencesCount,
		WordsCount:     r.WordsCount,
		CreatedAt:      r.CreatedAt,
	}
}
