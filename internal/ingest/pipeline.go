package ingest

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

// PipelineConfig tunes the stage layout.
type PipelineConfig struct {
	QueueCapacity   int
	ClassifyWorkers int
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	SentencesCreated int
	SentencesFailed  int
	TokensClassified int
	SentencesSkipped int
}

// Pipeline runs the sentence-producer, persist, classify and collect stages.
//
// Each channel has exactly one writer which closes it when done; the classify
// workers share one output channel that is closed after all of them return.
// errgroup.Wait joins every stage, and the first error cancels the rest.
type Pipeline struct {
	log        *slog.Logger
	segmenter  *Segmenter
	classifier *Classifier
	writer     *Writer
	cfg        PipelineConfig
	metrics    *Metrics
}

// NewPipeline creates a Pipeline. Non-positive config values fall back to
// a queue of 2000 and 2 workers.
func NewPipeline(log *slog.Logger, segmenter *Segmenter, classifier *Classifier, writer *Writer, cfg PipelineConfig, metrics *Metrics) *Pipeline {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 2000
	}
	if cfg.ClassifyWorkers <= 0 {
		cfg.ClassifyWorkers = 2
	}
	return &Pipeline{
		log:        log.With("component", "pipeline"),
		segmenter:  segmenter,
		classifier: classifier,
		writer:     writer,
		cfg:        cfg,
		metrics:    metrics,
	}
}

// Run segments text into the book's sentences and returns the aggregated
// vocabulary. Sentences committed before a failure or cancellation stay
// committed.
func (p *Pipeline) Run(ctx context.Context, text string, bookID int64) (*Aggregate, RunStats, error) {
	var stats RunStats
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	startNr, err := p.writer.sentences.MaxNr(ctx, bookID)
	if err != nil {
		return nil, stats, err
	}

	g, gctx := errgroup.WithContext(ctx)

	raw := make(chan string, p.cfg.QueueCapacity)
	persisted := make(chan domain.Sentence, p.cfg.QueueCapacity)
	classified := make(chan *Aggregate, p.cfg.QueueCapacity)

	// (a) producer
	g.Go(func() error {
		defer close(raw)
		for sentence, err := range p.segmenter.Sentences(text) {
			if err != nil {
				return err
			}
			select {
			case raw <- sentence:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// (b) persist: the only stage that assigns nr.
	g.Go(func() error {
		defer close(persisted)
		nr := startNr
		for sentence := range raw {
			nr++
			s, err := p.writer.CreateSentence(gctx, bookID, nr, sentence)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				stats.SentencesFailed++
				p.log.WarnContext(gctx, "sentence skipped",
					slog.Int("nr", nr),
					slog.String("error", err.Error()),
				)
				continue
			}
			stats.SentencesCreated++
			select {
			case persisted <- s:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// (c) classify
	var (
		workers sync.WaitGroup
		mu      sync.Mutex
	)
	for range p.cfg.ClassifyWorkers {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for s := range persisted {
				tokens, err := p.classifier.Classify(s.Text)
				if err != nil {
					mu.Lock()
					stats.SentencesSkipped++
					mu.Unlock()
					p.log.WarnContext(gctx, "classify failed",
						slog.Int64("sentence_id", s.ID),
						slog.String("error", err.Error()),
					)
					continue
				}

				part := NewAggregate()
				for _, t := range tokens {
					part.AddToken(t, s.ID, 0)
				}
				p.metrics.tokensClassified(len(tokens))
				mu.Lock()
				stats.TokensClassified += len(tokens)
				mu.Unlock()

				select {
				case classified <- part:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		workers.Wait()
		close(classified)
		return nil
	})

	// (d) collect
	total := NewAggregate()
	g.Go(func() error {
		for part := range classified {
			total.Merge(part)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	return total, stats, nil
}
