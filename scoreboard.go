package scoreboard

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumName = "github.com/redis/go-redis/example/scoreboard"

type state int

const (
	stateUnconnected state = iota
	stateConnected
	stateClosed
)

// Client keeps a ranked set of scores in a Store.
//
// Its lifecycle is linear: a new Client is unconnected, Connect makes it
// connected and Disconnect closes it for good. A closed Client can not be
// reconnected.
type Client struct {
	store  Store
	opt    options
	log    *zap.Logger
	tracer trace.Tracer

	mu    sync.Mutex
	state state
}

// New returns an unconnected Client over store.
func New(store Store, opts ...Option) *Client {
	c := &Client{store: store}
	for _, fn := range opts {
		fn(&c.opt)
	}
	c.opt.init()
	c.log = c.opt.logger.With(zap.String("key", c.opt.key), zap.String("addr", store.Addr()))
	c.tracer = c.opt.tp.Tracer(instrumName)
	return c
}

// Key returns the sorted set the client works on.
func (c *Client) Key() string {
	return c.opt.key
}

// Connect opens the store session. Any failure is a *ConnectionError.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateConnected:
		return ErrAlreadyConnected
	case stateClosed:
		return ErrClosed
	}

	err := c.withSpan(ctx, "connect", func(ctx context.Context) error {
		if err := c.store.Connect(ctx); err != nil {
			if IsConnectionError(err) {
				return err
			}
			return &ConnectionError{Op: "connect", Addr: c.store.Addr(), Err: err}
		}
		return nil
	})
	if err != nil {
		c.log.Debug("connect failed", zap.Error(err))
		return err
	}

	c.state = stateConnected
	c.log.Info("connected")
	return nil
}

// UpdateScores upserts entries: a name already in the set has its score
// replaced. The store's reply is checked and a rejection is reported as a
// *CommandError.
func (c *Client) UpdateScores(ctx context.Context, entries ...Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	err := c.withSpan(ctx, "update", func(ctx context.Context) error {
		return classify("update", c.store.Addr(), c.store.Update(ctx, c.opt.key, entries))
	})
	if err != nil {
		return err
	}

	c.log.Debug("scores updated", zap.Int("entries", len(entries)))
	return nil
}

// FetchTopN returns up to n entries ordered by score, highest first when
// descending is set. n <= 0 yields an empty result without a round trip.
func (c *Client) FetchTopN(ctx context.Context, n int64, descending bool) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	err := c.withSpan(ctx, "fetch", func(ctx context.Context) error {
		var err error
		entries, err = c.store.Fetch(ctx, c.opt.key, n, descending)
		return classify("fetch", c.store.Addr(), err)
	})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}

	c.log.Debug("scores fetched",
		zap.Int64("n", n),
		zap.Bool("descending", descending),
		zap.Int("entries", len(entries)))
	return entries, nil
}

// Disconnect releases the store session. It may be called any number of
// times; every call after the first is a no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	c.state = stateClosed
	if prev != stateConnected {
		return nil
	}

	err := c.withSpan(context.Background(), "disconnect", func(context.Context) error {
		if err := c.store.Close(); err != nil {
			return &ConnectionError{Op: "disconnect", Addr: c.store.Addr(), Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.log.Info("disconnected")
	return nil
}

func (c *Client) ready() error {
	switch c.state {
	case stateUnconnected:
		return ErrNotConnected
	case stateClosed:
		return ErrClosed
	}
	return nil
}

func (c *Client) withSpan(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := c.tracer.Start(ctx, "scoreboard."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("scoreboard.key", c.opt.key),
		))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	c.opt.observer.ObserveOp(op, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
