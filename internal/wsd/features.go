package wsd

import (
	"strings"
	"unicode/utf8"
)

// FeatureSet is the presence set of context words around a keyword.
type FeatureSet map[string]struct{}

// Features extracts the context words of sentence around keyword.
// Commas and semicolons are dropped, then every whitespace separated token
// that is longer than two characters, has no apostrophe and is not the
// keyword itself becomes a lowercase feature. When window is positive and
// the keyword occurs in the sentence, only tokens within window positions of
// its first occurrence are used.
func Features(sentence, keyword string, window int) FeatureSet {
	cleaned := strings.NewReplacer(",", "", ";", "").Replace(sentence)
	tokens := strings.Fields(cleaned)
	keyword = strings.ToLower(keyword)

	lo, hi := 0, len(tokens)
	if window > 0 {
		for i, tok := range tokens {
			if strings.ToLower(tok) == keyword {
				lo = max(0, i-window)
				hi = min(len(tokens), i+window+1)
				break
			}
		}
	}

	fs := make(FeatureSet)
	for _, tok := range tokens[lo:hi] {
		word := strings.ToLower(tok)
		if word == keyword || utf8.RuneCountInString(word) <= 2 || strings.Contains(word, "'") {
			continue
		}
		fs[word] = struct{}{}
	}
	return fs
}
