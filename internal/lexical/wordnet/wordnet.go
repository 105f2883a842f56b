// Package wordnet loads Open English WordNet JSON files into an in-memory
// sense index.
//
// Expected directory structure (as distributed by https://github.com/globalwordnet/english-wordnet):
//
//	entries-a.json … entries-z.json   lemma entries keyed by word
//	noun.*.json, verb.*.json, …       synsets keyed by synset ID
//
// Synsets are exposed under stable readable names of the form
// "lemma.pos.NN": the first member of the synset, its part of speech and
// the position of the synset among that member's senses.
package wordnet

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// OEWN JSON deserialization types.

// oewnEntryFile represents an entries-*.json file: {"word": {"pos": {...}}}.
type oewnEntryFile map[string]map[string]json.RawMessage

// oewnPOSEntry holds senses for a single POS of a word.
type oewnPOSEntry struct {
	Sense []oewnSense `json:"sense"`
	Form  []string    `json:"form"`
}

type oewnSense struct {
	ID     string `json:"id"`
	Synset string `json:"synset"`
}

// oewnSynset holds a single synset from a {pos}.{category}.json file.
type oewnSynset struct {
	Members      []string          `json:"members"`
	Definition   []string          `json:"definition"`
	Example      []json.RawMessage `json:"example"`
	PartOfSpeech string            `json:"partOfSpeech"`
}

type key struct {
	lemma string
	pos   domain.PartOfSpeech
}

type synset struct {
	name       string
	definition string
	examples   []string
}

// Index answers sense and lemma lookups. It is immutable after Load and safe
// for concurrent use.
type Index struct {
	synsets map[string]*synset
	senses  map[key][]string
	forms   map[key][]string
	lemmas  []string
}

// Stats summarizes a loaded index.
type Stats struct {
	Lemmas  int
	Synsets int
	Senses  int
}

// Load reads an OEWN JSON directory.
func Load(dir string) (*Index, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads OEWN JSON files from the root of fsys.
func LoadFS(fsys fs.FS) (*Index, error) {
	idx := &Index{
		synsets: make(map[string]*synset),
		senses:  make(map[key][]string),
		forms:   make(map[key][]string),
	}

	// Step 1: synsets.
	synsetFiles, err := globSynsetFiles(fsys)
	if err != nil {
		return nil, fmt.Errorf("glob synset files: %w", err)
	}
	rawPOS := make(map[string]string)
	heads := make(map[string]string)
	for _, p := range synsetFiles {
		var synsets map[string]oewnSynset
		if err := readJSON(fsys, p, &synsets); err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		for id, s := range synsets {
			idx.synsets[id] = &synset{
				definition: strings.Join(s.Definition, "; "),
				examples:   exampleTexts(s.Example),
			}
			rawPOS[id] = s.PartOfSpeech
			if len(s.Members) > 0 {
				heads[id] = normalizeLemma(s.Members[0])
			}
		}
	}

	// Step 2: entries, in sense order.
	entryFiles, err := fs.Glob(fsys, "entries-*.json")
	if err != nil {
		return nil, fmt.Errorf("glob entry files: %w", err)
	}
	seen := make(map[string]bool)
	for _, p := range entryFiles {
		var entries oewnEntryFile
		if err := readJSON(fsys, p, &entries); err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}

		for word, posMap := range entries {
			lemma := normalizeLemma(word)
			for _, rawKey := range sortedKeys(posMap) {
				pos, ok := coarse(rawKey)
				if !ok {
					continue
				}
				var entry oewnPOSEntry
				if err := json.Unmarshal(posMap[rawKey], &entry); err != nil {
					continue
				}

				k := key{lemma: lemma, pos: pos}
				for _, s := range entry.Sense {
					if _, known := idx.synsets[s.Synset]; !known || slices.Contains(idx.senses[k], s.Synset) {
						continue
					}
					idx.senses[k] = append(idx.senses[k], s.Synset)
				}
				for _, form := range entry.Form {
					fk := key{lemma: normalizeLemma(form), pos: pos}
					if !slices.Contains(idx.forms[fk], lemma) {
						idx.forms[fk] = append(idx.forms[fk], lemma)
					}
				}
				if len(idx.senses[k]) > 0 && !seen[lemma] {
					seen[lemma] = true
					idx.lemmas = append(idx.lemmas, lemma)
				}
			}
		}
	}
	sort.Strings(idx.lemmas)

	// Step 3: readable names.
	for id, s := range idx.synsets {
		s.name = id
		pos, ok := coarse(rawPOS[id])
		head := heads[id]
		if !ok || head == "" {
			continue
		}
		if n := slices.Index(idx.senses[key{lemma: head, pos: pos}], id); n >= 0 {
			s.name = fmt.Sprintf("%s.%s.%02d", head, rawPOS[id], n+1)
		}
	}

	return idx, nil
}

// Stats reports the index size.
func (x *Index) Stats() Stats {
	st := Stats{Lemmas: len(x.lemmas), Synsets: len(x.synsets)}
	for _, ids := range x.senses {
		st.Senses += len(ids)
	}
	return st
}

// Has reports whether lemma has at least one sense under pos.
func (x *Index) Has(lemma string, pos domain.PartOfSpeech) bool {
	return len(x.senses[key{lemma: normalizeLemma(lemma), pos: pos}]) > 0
}

// Synsets returns the senses of lemma under pos in sense order.
func (x *Index) Synsets(lemma string, pos domain.PartOfSpeech) []domain.Synset {
	ids := x.senses[key{lemma: normalizeLemma(lemma), pos: pos}]
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.Synset, 0, len(ids))
	for _, id := range ids {
		s := x.synsets[id]
		out = append(out, domain.Synset{ID: s.name, Definition: s.definition, Examples: s.examples})
	}
	return out
}

// Forms returns the lemmas listed for an irregular form under pos.
func (x *Index) Forms(form string, pos domain.PartOfSpeech) []string {
	return x.forms[key{lemma: normalizeLemma(form), pos: pos}]
}

// Lemmas returns every lemma with at least one sense, sorted.
func (x *Index) Lemmas() []string {
	return slices.Clone(x.lemmas)
}

// coarse maps an OEWN part of speech onto the indexed classes.
// Satellite adjectives ("s") fold into adjectives.
func coarse(raw string) (domain.PartOfSpeech, bool) {
	switch raw {
	case "n":
		return domain.PartOfSpeechNoun, true
	case "v":
		return domain.PartOfSpeechVerb, true
	case "a", "s":
		return domain.PartOfSpeechAdjective, true
	case "r":
		return domain.PartOfSpeechAdverb, true
	}
	return "", false
}

func normalizeLemma(s string) string {
	return strings.ReplaceAll(domain.NormalizeText(s), " ", "_")
}

// exampleTexts accepts both plain string examples and {"text": ...} objects.
func exampleTexts(raw []json.RawMessage) []string {
	var out []string
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(r, &obj); err == nil && obj.Text != "" {
			out = append(out, obj.Text)
		}
	}
	return out
}

func readJSON(fsys fs.FS, name string, v any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return nil
}

// globSynsetFiles finds all synset files: {pos}.{category}.json where pos is noun/verb/adj/adv.
func globSynsetFiles(fsys fs.FS) ([]string, error) {
	var result []string
	for _, prefix := range []string{"noun.", "verb.", "adj.", "adv."} {
		matches, err := fs.Glob(fsys, prefix+"*.json")
		if err != nil {
			return nil, err
		}
		result = append(result, matches...)
	}
	return result, nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
