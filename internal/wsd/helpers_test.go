package wsd

import (
	"log/slog"
	"os"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mapSenses is a SenseSource backed by a map.
type mapSenses map[string][]domain.Synset

func (m mapSenses) Synsets(word string) []domain.Synset {
	return m[word]
}

func bankSenses() mapSenses {
	return mapSenses{
		"bank": {
			{
				ID:         "bank.n.01",
				Definition: "sloping land beside a body of water",
				Examples:   []string{"they pulled the canoe up on the bank", "he sat on the bank of the river and watched the currents"},
			},
			{
				ID:         "depository_financial_institution.n.01",
				Definition: "a financial institution that accepts deposits and channels the money into lending activities",
				Examples:   []string{"he cashed a check at the bank", "that bank holds the mortgage on my home"},
			},
		},
		"oxen": nil,
		"ox": {
			{ID: "ox.n.01", Definition: "an adult castrated bull of the genus Bos"},
		},
	}
}
