package wsd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-vocab/internal/config"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/pkg/ctxutil"
)

// Server answers sense requests over TCP, one request per connection.
type Server struct {
	log     *slog.Logger
	cfg     config.WSDConfig
	vocab   *Vocabulary
	senses  SenseSource
	metrics *Metrics

	conns   sync.WaitGroup
	serving atomic.Bool
}

// NewServer creates a sense server.
func NewServer(log *slog.Logger, cfg config.WSDConfig, vocab *Vocabulary, senses SenseSource, metrics *Metrics) *Server {
	return &Server{
		log:     log.With("service", "wsd"),
		cfg:     cfg,
		vocab:   vocab,
		senses:  senses,
		metrics: metrics,
	}
}

// Ready reports whether the server is accepting connections.
func (s *Server) Ready() bool {
	return s.serving.Load()
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then waits for
// in-flight connections up to the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("wsd server listening", slog.String("addr", ln.Addr().String()))
	s.serving.Store(true)
	defer s.serving.Store(false)

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var acceptErr error
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() == nil {
				acceptErr = fmt.Errorf("accept: %w", err)
			}
			break
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handle(ctx, conn)
		}()
	}
	ln.Close()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.log.Info("wsd server stopped")
	case <-time.After(s.cfg.ShutdownTimeout):
		s.log.Warn("shutdown timeout, abandoning in-flight connections")
	}
	return acceptErr
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	started := time.Now()

	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	log := s.log.With(
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("remote", conn.RemoteAddr().String()),
	)

	if err := conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
		log.Error("set read deadline", slog.String("error", err.Error()))
		return
	}

	var req Request
	dec := json.NewDecoder(io.LimitReader(conn, s.cfg.MaxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		log.Warn("malformed request", slog.String("error", err.Error()))
		s.metrics.request("bad_request", started)
		return
	}

	resp := s.Answer(req)

	if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		log.Error("set write deadline", slog.String("error", err.Error()))
		return
	}
	if err := WriteResponse(conn, resp); err != nil {
		log.Warn("write response", slog.String("error", err.Error()))
		s.metrics.request("write_error", started)
		return
	}

	result := "not_found"
	if resp.Found == 1 {
		result = "found"
	}
	s.metrics.request(result, started)
	log.Debug("sense request served",
		slog.String("word", req.Word),
		slog.String("result", result),
		slog.Duration("duration", time.Since(started)),
	)
}

// Answer builds the response for req. Every sense of the word is listed;
// when the vocabulary knows the word the chosen one is flagged.
func (s *Server) Answer(req Request) Response {
	word := normalizeWord(req.Word)
	resp := Response{Word: req.Word, Synsets: []SynsetMatch{}}

	matched, found := s.vocab.Classify(word, req.Sentence)
	if found {
		resp.Found = 1
		resp.MatchedSynset = matched
	}
	for _, syn := range s.senses.Synsets(word) {
		resp.Synsets = append(resp.Synsets, SynsetMatch{
			Match:      found && syn.ID == matched,
			ID:         syn.ID,
			Definition: syn.Definition,
		})
	}
	return resp
}

func normalizeWord(word string) string {
	return strings.ReplaceAll(domain.NormalizeText(word), " ", "_")
}
