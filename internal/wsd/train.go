package wsd

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

const progressEvery = 1000

// SenseSource lists every sense of a word.
type SenseSource interface {
	Synsets(word string) []domain.Synset
}

// TrainStats summarizes a training run.
type TrainStats struct {
	Lemmas      int
	Single      int
	Classifiers int
	Skipped     int
}

// Train builds a model for lemmas. A lemma with exactly one sense maps to
// it directly; a lemma with several gets a classifier trained on each
// sense's definition and examples. Lemmas without senses are skipped.
func Train(ctx context.Context, log *slog.Logger, lemmas []string, senses SenseSource, window int) (Model, TrainStats, error) {
	model := make(Model, len(lemmas))
	var stats TrainStats

	for i, lemma := range lemmas {
		if err := ctx.Err(); err != nil {
			return model, stats, err
		}
		if i > 0 && i%progressEvery == 0 {
			log.Info("training progress", slog.Int("done", i), slog.Int("total", len(lemmas)))
		}
		stats.Lemmas++

		synsets := senses.Synsets(lemma)
		switch len(synsets) {
		case 0:
			stats.Skipped++
		case 1:
			model[lemma] = Entry{Synset: synsets[0].ID}
			stats.Single++
		default:
			model[lemma] = Entry{Synset: synsets[0].ID, Classifier: trainLemma(lemma, synsets, window)}
			stats.Classifiers++
		}
	}
	return model, stats, nil
}

// trainLemma fits a classifier on the definition and examples of every sense.
func trainLemma(lemma string, synsets []domain.Synset, window int) *NaiveBayes {
	var samples []Sample
	for _, s := range synsets {
		for _, text := range append([]string{s.Definition}, s.Examples...) {
			samples = append(samples, Sample{Features: Features(text, lemma, window), Label: s.ID})
		}
	}
	return TrainNaiveBayes(samples)
}
