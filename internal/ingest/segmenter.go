// Package ingest turns raw book text into sentences and an aggregated
// vocabulary, and persists both.
package ingest

import (
	"fmt"
	"iter"
	"strings"
)

type sentenceSplitter interface {
	SegmentSentences(text string) ([]string, error)
}

// Segmenter yields book sentences in reading order.
type Segmenter struct {
	splitter sentenceSplitter
}

// NewSegmenter creates a Segmenter on top of a sentence boundary detector.
func NewSegmenter(splitter sentenceSplitter) *Segmenter {
	return &Segmenter{splitter: splitter}
}

// Sentences lazily segments text. A candidate whose first line starts with
// "chapter " yields that line on its own and the rest of the candidate is
// segmented again. Lines of a sentence are joined with single spaces and
// blank sentences are dropped. Iteration stops at the first error.
func (s *Segmenter) Sentences(text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		s.emit(text, yield)
	}
}

func (s *Segmenter) emit(text string, yield func(string, error) bool) bool {
	candidates, err := s.splitter.SegmentSentences(text)
	if err != nil {
		yield("", fmt.Errorf("segment sentences: %w", err))
		return false
	}

	for _, c := range candidates {
		lines := nonBlankLines(c)
		if len(lines) == 0 {
			continue
		}

		if isChapterHeading(lines[0]) {
			if !yield(lines[0], nil) {
				return false
			}
			if len(lines) > 1 && !s.emit(strings.Join(lines[1:], "\n"), yield) {
				return false
			}
			continue
		}

		if !yield(strings.Join(lines, " "), nil) {
			return false
		}
	}
	return true
}

func isChapterHeading(line string) bool {
	return len(line) >= len("chapter ") && strings.EqualFold(line[:len("chapter ")], "chapter ")
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
