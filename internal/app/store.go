package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/book"
	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/flashcard"
	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/relation"
	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/sentence"
	"github.com/heartmarshall/myenglish-vocab/internal/adapter/postgres/word"
	"github.com/heartmarshall/myenglish-vocab/internal/config"
)

// Store bundles the PostgreSQL pool and the repositories built on it.
type Store struct {
	Pool       *pgxpool.Pool
	Tx         *postgres.TxManager
	Books      *book.Repo
	Sentences  *sentence.Repo
	Words      *word.Repo
	Relations  *relation.Repo
	Flashcards *flashcard.Repo
}

// OpenStore connects to PostgreSQL, applies migrations when
// database.auto_migrate is set and builds the repositories.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	if err := cfg.RequireDSN(); err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DSN, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return newStore(pool), nil
}

func newStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Pool:       pool,
		Tx:         postgres.NewTxManager(pool),
		Books:      book.New(pool),
		Sentences:  sentence.New(pool),
		Words:      word.New(pool),
		Relations:  relation.New(pool),
		Flashcards: flashcard.New(pool),
	}
}

// Close releases the pool.
func (s *Store) Close() {
	s.Pool.Close()
}
