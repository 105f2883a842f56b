package ingest

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts ingestion outcomes. A nil *Metrics records nothing.
type Metrics struct {
	sentences *prometheus.CounterVec
	tokens    prometheus.Counter
	words     *prometheus.CounterVec
	relations prometheus.Counter
}

// NewMetrics creates the ingestion collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sentences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_sentences_total",
			Help: "Sentences processed by result (created, failed).",
		}, []string{"result"}),
		tokens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ingest_tokens_classified_total",
			Help: "Tokens kept by the word classifier.",
		}),
		words: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_words_total",
			Help: "Aggregated words saved by result (created, merged, failed).",
		}, []string{"result"}),
		relations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ingest_relations_linked_total",
			Help: "Relation rows created.",
		}),
	}
	reg.MustRegister(m.sentences, m.tokens, m.words, m.relations)
	return m
}

func (m *Metrics) sentenceCreated() {
	if m != nil {
		m.sentences.WithLabelValues("created").Inc()
	}
}

func (m *Metrics) sentenceFailed() {
	if m != nil {
		m.sentences.WithLabelValues("failed").Inc()
	}
}

func (m *Metrics) tokensClassified(n int) {
	if m != nil {
		m.tokens.Add(float64(n))
	}
}

func (m *Metrics) wordCreated() {
	if m != nil {
		m.words.WithLabelValues("created").Inc()
	}
}

func (m *Metrics) wordMerged() {
	if m != nil {
		m.words.WithLabelValues("merged").Inc()
	}
}

func (m *Metrics) wordFailed() {
	if m != nil {
		m.words.WithLabelValues("failed").Inc()
	}
}

func (m *Metrics) relationsLinked(n int64) {
	if m != nil && n > 0 {
		m.relations.Add(float64(n))
	}
}
