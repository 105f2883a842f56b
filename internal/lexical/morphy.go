package lexical

import (
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type detachment struct {
	suffix, ending string
}

// Detachment rules, tried in order against forms that are not exceptions.
var rules = map[domain.PartOfSpeech][]detachment{
	domain.PartOfSpeechNoun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	domain.PartOfSpeechVerb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	domain.PartOfSpeechAdjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

// Lemmatize returns the base form of a lowercased token under pos. ok is
// false when no candidate is a known lemma.
//
// Candidates are the form itself plus either its irregular lemmas or the
// results of the detachment rules; the shortest candidate known to the
// index wins. Without an index, only irregular forms resolve.
func (l *Lexicon) Lemmatize(token string, pos domain.PartOfSpeech) (string, bool) {
	cands := l.candidates(strings.ToLower(strings.TrimSpace(token)), pos)
	if len(cands) == 0 {
		return "", false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best, true
}

// candidates returns the known lemmas form may stand for, in discovery order.
func (l *Lexicon) candidates(form string, pos domain.PartOfSpeech) []string {
	if form == "" || !pos.IsValid() {
		return nil
	}

	if irregular := l.irregular(form, pos); len(irregular) > 0 {
		if l.index == nil {
			return irregular
		}
		return l.known(append([]string{form}, irregular...), pos)
	}
	if l.index == nil {
		return nil
	}

	forms := []string{form}
	for _, r := range rules[pos] {
		if stem, found := strings.CutSuffix(form, r.suffix); found && stem != "" {
			forms = append(forms, stem+r.ending)
		}
	}
	return l.known(forms, pos)
}

func (l *Lexicon) irregular(form string, pos domain.PartOfSpeech) []string {
	var out []string
	if l.index != nil {
		out = append(out, l.index.Forms(form, pos)...)
	}
	if lemma, ok := irregularForms[pos][form]; ok && !slices.Contains(out, lemma) {
		out = append(out, lemma)
	}
	return out
}

func (l *Lexicon) known(forms []string, pos domain.PartOfSpeech) []string {
	var out []string
	for _, f := range forms {
		if l.index.Has(f, pos) && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
