package wsd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

const modelVersion = 1

// Entry is the trained knowledge about one lemma: either the only sense it
// has or a classifier choosing between several.
type Entry struct {
	Synset     string      `json:"synset,omitempty"`
	Classifier *NaiveBayes `json:"classifier,omitempty"`
}

// Model maps a lemma to its entry.
type Model map[string]Entry

type modelFile struct {
	Version int   `json:"version"`
	Entries Model `json:"entries"`
}

// Save writes m to path. The file is replaced atomically.
func (m Model) Save(path string) error {
	body, err := json.Marshal(modelFile{Version: modelVersion, Entries: m})
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vocabulary-*.json")
	if err != nil {
		return fmt.Errorf("create temp model: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace model: %w", err)
	}
	return nil
}

// LoadModel reads a model written by Model.Save.
func LoadModel(path string) (Model, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f modelFile
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if f.Version != modelVersion {
		return nil, fmt.Errorf("model %s: unsupported version %d", path, f.Version)
	}
	if f.Entries == nil {
		f.Entries = Model{}
	}
	return f.Entries, nil
}

// Vocabulary is the loaded model. Lookups never block a reload; a reload
// swaps the whole table at once.
type Vocabulary struct {
	log     *slog.Logger
	path    string
	window  int
	metrics *Metrics
	table   atomic.Pointer[Model]
}

// NewVocabulary creates an empty vocabulary backed by the model at path.
// window is the feature window used when classifying.
func NewVocabulary(log *slog.Logger, path string, window int, metrics *Metrics) *Vocabulary {
	v := &Vocabulary{
		log:     log.With("component", "vocabulary"),
		path:    path,
		window:  window,
		metrics: metrics,
	}
	empty := Model{}
	v.table.Store(&empty)
	return v
}

// Load reads the model file. A missing file is not an error: the
// vocabulary stays empty and every lookup reports not found.
func (v *Vocabulary) Load() error {
	err := v.Reload()
	if errors.Is(err, fs.ErrNotExist) {
		v.log.Warn("model file not found, serving empty vocabulary", slog.String("path", v.path))
		return nil
	}
	return err
}

// Reload re-reads the model file. On failure the current table is kept.
func (v *Vocabulary) Reload() error {
	m, err := LoadModel(v.path)
	if err != nil {
		v.metrics.loadFailed()
		return fmt.Errorf("load vocabulary: %w", err)
	}
	v.Swap(m)
	v.log.Info("vocabulary loaded", slog.String("path", v.path), slog.Int("entries", len(m)))
	return nil
}

// Swap replaces the table with m.
func (v *Vocabulary) Swap(m Model) {
	if m == nil {
		m = Model{}
	}
	v.table.Store(&m)
	v.metrics.loaded(len(m))
}

// Save writes the current table to the model file.
func (v *Vocabulary) Save() error {
	return (*v.table.Load()).Save(v.path)
}

// Len returns the number of lemmas in the table.
func (v *Vocabulary) Len() int {
	return len(*v.table.Load())
}

// Classify picks the sense of word used in sentence. found is false when
// the word has no entry.
func (v *Vocabulary) Classify(word, sentence string) (synset string, found bool) {
	entry, ok := (*v.table.Load())[word]
	if !ok {
		return "", false
	}
	if entry.Classifier == nil {
		return entry.Synset, true
	}
	label, ok := entry.Classifier.Classify(Features(sentence, word, v.window))
	if !ok {
		return entry.Synset, entry.Synset != ""
	}
	return label, true
}
