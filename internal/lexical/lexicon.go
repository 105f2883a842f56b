// Package lexical wraps the natural language tooling the pipeline and the
// WSD service consume: sentence segmentation, tokenization, Penn Treebank
// tagging (prose), lemmatization and sense lookup (WordNet).
package lexical

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical/wordnet"
)

// synsetOrder is the part-of-speech order in which senses are enumerated.
var synsetOrder = []domain.PartOfSpeech{
	domain.PartOfSpeechNoun,
	domain.PartOfSpeechVerb,
	domain.PartOfSpeechAdjective,
	domain.PartOfSpeechAdverb,
}

// Lexicon is safe for concurrent use.
type Lexicon struct {
	index *wordnet.Index
}

// New creates a Lexicon over a loaded WordNet index. A nil index disables
// lemma validation and sense lookup: Lemmatize then only consults the
// built-in irregular forms.
func New(index *wordnet.Index) *Lexicon {
	return &Lexicon{index: index}
}

// Index returns the underlying WordNet index, nil when none was loaded.
func (l *Lexicon) Index() *wordnet.Index {
	return l.index
}

// SegmentSentences splits raw text into sentence candidates. Line breaks
// inside a sentence are preserved.
func (l *Lexicon) SegmentSentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}

// Tokenize splits a sentence into word and punctuation tokens.
func (l *Lexicon) Tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Text)
	}
	return out, nil
}

// Tag assigns a Penn Treebank tag to each token.
func (l *Lexicon) Tag(tokens []string) ([]domain.TaggedToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}

	toks := doc.Tokens()
	out := make([]domain.TaggedToken, 0, len(toks))
	for _, t := range toks {
		out = append(out, domain.TaggedToken{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}

// Synsets returns every sense of word known to the index, nouns first.
// The word is lemmatized under each part of speech first, so inflected
// forms resolve too.
func (l *Lexicon) Synsets(word string) []domain.Synset {
	if l.index == nil {
		return nil
	}
	word = domain.NormalizeText(word)

	var out []domain.Synset
	seen := make(map[string]bool)
	for _, pos := range synsetOrder {
		for _, lemma := range l.candidates(word, pos) {
			for _, s := range l.index.Synsets(lemma, pos) {
				if seen[s.ID] {
					continue
				}
				seen[s.ID] = true
				out = append(out, s)
			}
		}
	}
	return out
}
