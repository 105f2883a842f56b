package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-vocab/internal/config"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical"
	"github.com/heartmarshall/myenglish-vocab/internal/service/worddetail"
	"github.com/heartmarshall/myenglish-vocab/internal/transport/rest"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

// RunWSDServer serves sense requests until ctx is cancelled. Every value
// received on reload re-reads the model file.
func RunWSDServer(ctx context.Context, cfg *config.Config, log *slog.Logger, reload <-chan os.Signal) error {
	lex, err := LoadLexicon(cfg.Lexical, log, false)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := wsd.NewMetrics(reg)

	vocab := wsd.NewVocabulary(log, cfg.WSD.ModelPath, cfg.WSD.FeatureWindow, metrics)
	if err := vocab.Load(); err != nil {
		return err
	}
	srv := wsd.NewServer(log, cfg.WSD, vocab, lex, metrics)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-reload:
				if err := vocab.Reload(); err != nil {
					log.Error("vocabulary reload failed, keeping the current table",
						slog.String("error", err.Error()))
				}
			}
		}
	})
	if cfg.Ops.Addr != "" {
		health := rest.NewHealthHandler(BuildVersion(), wsdChecks(srv, lex))
		handler := rest.NewOpsHandler(log, health, reg)
		g.Go(func() error {
			return serveOps(gctx, log, cfg.Ops.Addr, handler)
		})
	}
	return g.Wait()
}

func wsdChecks(srv *wsd.Server, lex *lexical.Lexicon) map[string]rest.CheckFunc {
	return map[string]rest.CheckFunc{
		"listener": func(context.Context) error {
			if !srv.Ready() {
				return rest.ErrNotReady
			}
			return nil
		},
		"wordnet": func(context.Context) error {
			if lex.Index() == nil {
				return errors.New("wordnet not loaded")
			}
			return nil
		},
	}
}

func serveOps(ctx context.Context, log *slog.Logger, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("ops http listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ops http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ops http shutdown: %w", err)
	}
	return nil
}

// TrainOptions selects the lemmas to train on.
type TrainOptions struct {
	// All trains every WordNet lemma instead of the lemmas in the words table.
	All bool
	// Limit caps the lemmas read from the words table, most frequent first.
	Limit int
}

// RunTrain trains a model and writes it to wsd.model_path.
func RunTrain(ctx context.Context, cfg *config.Config, log *slog.Logger, opts TrainOptions) error {
	lex, err := LoadLexicon(cfg.Lexical, log, true)
	if err != nil {
		return err
	}

	var lemmas []string
	if opts.All {
		lemmas = lex.Index().Lemmas()
	} else {
		store, err := OpenStore(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer store.Close()

		lemmas, err = store.Words.ListLemmas(ctx, opts.Limit)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	model, stats, err := wsd.Train(ctx, log, lemmas, lex, cfg.WSD.FeatureWindow)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if err := model.Save(cfg.WSD.ModelPath); err != nil {
		return err
	}

	log.Info("model trained",
		slog.String("path", cfg.WSD.ModelPath),
		slog.Int("lemmas", stats.Lemmas),
		slog.Int("single_sense", stats.Single),
		slog.Int("classifiers", stats.Classifiers),
		slog.Int("skipped", stats.Skipped),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// NewWordDetail builds the word detail query service over store.
func NewWordDetail(cfg config.WSDClientConfig, log *slog.Logger, store *Store) *worddetail.Service {
	return worddetail.NewService(log, store.Words, store.Sentences, store.Relations, wsd.NewClient(log, cfg))
}
