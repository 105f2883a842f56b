package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-vocab/internal/config"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical/wordnet"
)

// LoadLexicon loads the WordNet index. When required is false a missing
// index directory degrades to a lexicon without sense data.
func LoadLexicon(cfg config.LexicalConfig, log *slog.Logger, required bool) (*lexical.Lexicon, error) {
	start := time.Now()
	index, err := wordnet.Load(cfg.WordNetPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			log.Warn("wordnet not found, lemmatizing with irregular forms only",
				slog.String("path", cfg.WordNetPath))
			return lexical.New(nil), nil
		}
		return nil, fmt.Errorf("load wordnet %s: %w", cfg.WordNetPath, err)
	}

	stats := index.Stats()
	log.Info("wordnet loaded",
		slog.String("path", cfg.WordNetPath),
		slog.Int("lemmas", stats.Lemmas),
		slog.Int("synsets", stats.Synsets),
		slog.Duration("duration", time.Since(start)),
	)
	return lexical.New(index), nil
}
