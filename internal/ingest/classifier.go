package ingest

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type tokenTagger interface {
	Tokenize(text string) ([]string, error)
	Tag(tokens []string) ([]domain.TaggedToken, error)
}

type lemmatizer interface {
	Lemmatize(token string, pos domain.PartOfSpeech) (string, bool)
}

// Token is one indexed occurrence of a word.
type Token struct {
	Lem     string
	POS     domain.PartOfSpeech
	Tag     string
	Surface string
	Empty   bool
}

// Classifier turns sentence text into indexed tokens.
type Classifier struct {
	tagger tokenTagger
	lemmas lemmatizer
}

// NewClassifier creates a Classifier.
func NewClassifier(tagger tokenTagger, lemmas lemmatizer) *Classifier {
	return &Classifier{tagger: tagger, lemmas: lemmas}
}

// Classify tags every token of text and keeps nouns, verbs, adverbs and
// adjectives. The lemma falls back to the lowercased surface form.
func (c *Classifier) Classify(text string) ([]Token, error) {
	words, err := c.tagger.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	tagged, err := c.tagger.Tag(words)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	out := make([]Token, 0, len(tagged))
	for _, tt := range tagged {
		pos, empty, ok := domain.CoarsePOS(tt.Tag)
		if !ok {
			continue
		}
		surface := strings.ToLower(strings.TrimSpace(tt.Text))
		if surface == "" {
			continue
		}
		lem, ok := c.lemmas.Lemmatize(surface, pos)
		if !ok || lem == "" {
			lem = surface
		}
		out = append(out, Token{Lem: lem, POS: pos, Tag: tt.Tag, Surface: surface, Empty: empty})
	}
	return out, nil
}
