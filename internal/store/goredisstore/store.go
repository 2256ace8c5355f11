// Package goredisstore binds the scoreboard to github.com/redis/go-redis/v9.
package goredisstore

import (
	"context"
	"sync"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/redis/go-redis/example/scoreboard"
)

var _ scoreboard.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger used by the command logging hook.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithTracerProvider instruments the client with redisotel tracing.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) { s.tp = tp }
}

// Store implements scoreboard.Store on top of a go-redis client.
type Store struct {
	opt *redis.Options
	log *zap.Logger
	tp  trace.TracerProvider

	mu    sync.Mutex
	rdb   *redis.Client
	final *redis.PoolStats
}

// New returns a Store for opt. The options are copied. Retries are disabled:
// a failed command is reported to the caller at once.
func New(opt *redis.Options, opts ...Option) *Store {
	o := *opt
	o.MaxRetries = -1
	s := &Store{opt: &o, log: zap.NewNop()}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

func (s *Store) Addr() string {
	return s.opt.Addr
}

// Connect creates the client and pings the server. On failure the client is
// closed again.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rdb != nil {
		return nil
	}

	rdb := redis.NewClient(s.opt)
	rdb.AddHook(newLoggingHook(s.log))
	if s.tp != nil {
		if err := redisotel.InstrumentTracing(rdb, redisotel.WithTracerProvider(s.tp)); err != nil {
			_ = rdb.Close()
			return err
		}
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return err
	}

	s.rdb = rdb
	return nil
}

func (s *Store) Update(ctx context.Context, key string, entries []scoreboard.Entry) error {
	rdb, err := s.client()
	if err != nil {
		return err
	}

	members := make([]redis.Z, len(entries))
	for i, e := range entries {
		members[i] = redis.Z{Score: e.Score, Member: e.Name}
	}
	return rdb.ZAdd(ctx, key, members...).Err()
}

func (s *Store) Fetch(ctx context.Context, key string, n int64, descending bool) ([]scoreboard.Entry, error) {
	rdb, err := s.client()
	if err != nil {
		return nil, err
	}

	var cmd *redis.ZSliceCmd
	if descending {
		cmd = rdb.ZRevRangeWithScores(ctx, key, 0, n-1)
	} else {
		cmd = rdb.ZRangeWithScores(ctx, key, 0, n-1)
	}
	zs, err := cmd.Result()
	if err != nil {
		return nil, err
	}

	// ZSliceCmd decodes members as strings.
	entries := make([]scoreboard.Entry, len(zs))
	for i, z := range zs {
		entries[i] = scoreboard.Entry{Name: z.Member.(string), Score: z.Score}
	}
	return entries, nil
}

// Close closes the client. Closing a Store that is not connected is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rdb == nil {
		return nil
	}
	s.final = s.rdb.PoolStats()
	err := s.rdb.Close()
	s.rdb = nil
	return err
}

// PoolStats returns the connection pool statistics. After Close it returns
// the statistics taken just before the pool was closed.
func (s *Store) PoolStats() *redis.PoolStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rdb == nil {
		if s.final != nil {
			return s.final
		}
		return &redis.PoolStats{}
	}
	return s.rdb.PoolStats()
}

func (s *Store) client() (*redis.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rdb == nil {
		return nil, scoreboard.ErrNotConnected
	}
	return s.rdb, nil
}
