package wsd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-vocab/internal/config"
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

const maxResponseBytes = 1 << 20

// Client queries the sense server.
type Client struct {
	log    *slog.Logger
	cfg    config.WSDClientConfig
	dialer net.Dialer
}

// NewClient creates a client for the server at cfg.Addr.
func NewClient(log *slog.Logger, cfg config.WSDClientConfig) *Client {
	if cfg.Connections <= 0 {
		cfg.Connections = 1
	}
	return &Client{
		log: log.With("component", "wsd_client"),
		cfg: cfg,
	}
}

// FindDefinition asks which sense of word is used in sentence. The request
// goes out on cfg.Connections connections at once and the first complete
// response wins. Errors from an unreachable server wrap
// domain.ErrUnavailable.
func (c *Client) FindDefinition(ctx context.Context, word, sentence string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req := Request{Word: word, Sentence: sentence}

	var (
		once sync.Once
		resp Response
		won  bool
		g    errgroup.Group
	)
	for range c.cfg.Connections {
		g.Go(func() error {
			r, err := c.ask(ctx, req)
			if err != nil {
				return err
			}
			once.Do(func() {
				resp, won = r, true
				cancel()
			})
			return nil
		})
	}
	err := g.Wait()
	if won {
		return resp, nil
	}
	if err == nil {
		err = errors.New("no response")
	}
	c.log.DebugContext(ctx, "sense lookup failed",
		slog.String("word", word),
		slog.String("addr", c.cfg.Addr),
		slog.String("error", err.Error()),
	)
	return Response{}, fmt.Errorf("find definition of %q: %w", word, err)
}

func (c *Client) ask(ctx context.Context, req Request) (Response, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.cfg.Addr)
	if err != nil {
		return Response{}, fmt.Errorf("dial %s: %w: %w", c.cfg.Addr, domain.ErrUnavailable, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return Response{}, fmt.Errorf("set deadline: %w", err)
		}
	}

	if err := WriteRequest(conn, req); err != nil {
		return Response{}, c.ioError(ctx, err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return Response{}, c.ioError(ctx, err)
		}
	}

	resp, err := ReadResponse(conn, maxResponseBytes)
	if err != nil {
		return Response{}, c.ioError(ctx, err)
	}
	return resp, nil
}

// ioError marks failures caused by the deadline or a dropped connection as
// unavailability.
func (c *Client) ioError(ctx context.Context, err error) error {
	var netErr net.Error
	if ctx.Err() != nil || errors.As(err, &netErr) || errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}

// ResolveSense returns the matched sense of word in sentence. ok is false
// when the server has no entry for the word.
func (c *Client) ResolveSense(ctx context.Context, word, sentence string) (domain.Synset, bool, error) {
	resp, err := c.FindDefinition(ctx, word, sentence)
	if err != nil {
		return domain.Synset{}, false, err
	}
	if resp.Found != 1 {
		return domain.Synset{}, false, nil
	}
	if m, ok := resp.Matched(); ok {
		return domain.Synset{ID: m.ID, Definition: m.Definition}, true, nil
	}
	if resp.MatchedSynset == "" {
		return domain.Synset{}, false, nil
	}
	return domain.Synset{ID: resp.MatchedSynset}, true, nil
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrUnavailable)
}
