package ingest

import (
	"maps"
	"slices"
	"sort"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// IDSet is an unordered set of row ids.
type IDSet map[int64]struct{}

// Add inserts id; zero ids are ignored.
func (s IDSet) Add(id int64) {
	if id != 0 {
		s[id] = struct{}{}
	}
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int64 {
	out := slices.Collect(maps.Keys(s))
	slices.Sort(out)
	return out
}

// Entry is the aggregated view of one (lem, pos) pair.
type Entry struct {
	Lem          string
	POS          domain.PartOfSpeech
	Count        int
	Declination  domain.Declination
	SentenceIDs  IDSet
	FlashcardIDs IDSet
}

func newEntry(pos domain.PartOfSpeech, lem string) *Entry {
	return &Entry{
		Lem:          lem,
		POS:          pos,
		Declination:  domain.Declination{},
		SentenceIDs:  IDSet{},
		FlashcardIDs: IDSet{},
	}
}

// Aggregate folds classified tokens per part of speech and lemma.
// Not safe for concurrent use; workers build their own and Merge them.
type Aggregate struct {
	entries map[domain.PartOfSpeech]map[string]*Entry
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{entries: make(map[domain.PartOfSpeech]map[string]*Entry)}
}

// Add records one occurrence of a token. Base-form occurrences (empty) only
// count; the others also record tag -> surface in the declination.
func (a *Aggregate) Add(pos domain.PartOfSpeech, lem, tag, surface string, empty bool, sentenceID, flashcardID int64) {
	e := a.entry(pos, lem)
	e.Count++
	e.SentenceIDs.Add(sentenceID)
	e.FlashcardIDs.Add(flashcardID)
	if !empty {
		setSpelling(e.Declination, tag, surface)
	}
}

// AddToken is Add for a classified token.
func (a *Aggregate) AddToken(t Token, sentenceID, flashcardID int64) {
	a.Add(t.POS, t.Lem, t.Tag, t.Surface, t.Empty, sentenceID, flashcardID)
}

// Merge folds other into a. Merging is commutative and associative.
func (a *Aggregate) Merge(other *Aggregate) {
	for pos, byLem := range other.entries {
		for lem, src := range byLem {
			dst := a.entry(pos, lem)
			dst.Count += src.Count
			for id := range src.SentenceIDs {
				dst.SentenceIDs.Add(id)
			}
			for id := range src.FlashcardIDs {
				dst.FlashcardIDs.Add(id)
			}
			for tag, form := range src.Declination {
				setSpelling(dst.Declination, tag, form)
			}
		}
	}
}

// Len returns the number of distinct (lem, pos) pairs.
func (a *Aggregate) Len() int {
	n := 0
	for _, byLem := range a.entries {
		n += len(byLem)
	}
	return n
}

// Get returns the entry for (pos, lem), if any.
func (a *Aggregate) Get(pos domain.PartOfSpeech, lem string) (Entry, bool) {
	e, ok := a.entries[pos][lem]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Destinations holds the aggregate split by part of speech, each sorted by lemma.
type Destinations struct {
	Nouns      []Entry
	Verbs      []Entry
	Adverbs    []Entry
	Adjectives []Entry
}

// All returns the four destinations in a fixed order.
func (d Destinations) All() [][]Entry {
	return [][]Entry{d.Nouns, d.Verbs, d.Adverbs, d.Adjectives}
}

// Len returns the total number of entries.
func (d Destinations) Len() int {
	return len(d.Nouns) + len(d.Verbs) + len(d.Adverbs) + len(d.Adjectives)
}

// Split returns the four destinations.
func (a *Aggregate) Split() Destinations {
	return Destinations{
		Nouns:      a.sorted(domain.PartOfSpeechNoun),
		Verbs:      a.sorted(domain.PartOfSpeechVerb),
		Adverbs:    a.sorted(domain.PartOfSpeechAdverb),
		Adjectives: a.sorted(domain.PartOfSpeechAdjective),
	}
}

func (a *Aggregate) sorted(pos domain.PartOfSpeech) []Entry {
	byLem := a.entries[pos]
	out := make([]Entry, 0, len(byLem))
	for _, e := range byLem {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lem < out[j].Lem })
	return out
}

func (a *Aggregate) entry(pos domain.PartOfSpeech, lem string) *Entry {
	byLem, ok := a.entries[pos]
	if !ok {
		byLem = make(map[string]*Entry)
		a.entries[pos] = byLem
	}
	e, ok := byLem[lem]
	if !ok {
		e = newEntry(pos, lem)
		byLem[lem] = e
	}
	return e
}

// setSpelling records form under tag. When two spellings compete for the same
// tag the lexicographically smaller one is kept, so the result does not depend
// on the order in which occurrences arrive.
func setSpelling(d domain.Declination, tag, form string) {
	if cur, ok := d[tag]; ok && cur <= form {
		return
	}
	d[tag] = form
}
