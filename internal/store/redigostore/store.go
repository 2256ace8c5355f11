// Package redigostore binds the scoreboard to github.com/gomodule/redigo.
//
// Unlike go-redis, redigo hands back untyped replies, so this binding checks
// the shape of every reply itself.
package redigostore

import (
	"context"
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"github.com/redis/go-redis/example/scoreboard"
)

var _ scoreboard.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithDialOptions appends redigo dial options (database, password, timeouts).
func WithDialOptions(opts ...redis.DialOption) Option {
	return func(s *Store) { s.dialOpts = append(s.dialOpts, opts...) }
}

// Store implements scoreboard.Store over a single redigo connection.
type Store struct {
	network  string
	addr     string
	dialOpts []redis.DialOption
	log      *zap.Logger

	mu   sync.Mutex
	conn redis.Conn
}

// New returns a Store that dials addr over network ("tcp" or "unix").
func New(network, addr string, opts ...Option) *Store {
	s := &Store{network: network, addr: addr, log: zap.NewNop()}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

func (s *Store) Addr() string {
	return s.addr
}

// Connect dials the server and sends PING.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil
	}

	conn, err := redis.DialContext(ctx, s.network, s.addr, s.dialOpts...)
	if err != nil {
		return err
	}
	if _, err := redis.DoContext(conn, ctx, "PING"); err != nil {
		_ = conn.Close()
		return err
	}

	s.conn = conn
	return nil
}

func (s *Store) Update(ctx context.Context, key string, entries []scoreboard.Entry) error {
	conn, err := s.session()
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, 1+2*len(entries))
	args = append(args, key)
	for _, e := range entries {
		args = append(args, e.Score, e.Name)
	}

	reply, err := redis.DoContext(conn, ctx, "ZADD", args...)
	if err != nil {
		return err
	}
	added, ok := reply.(int64)
	if !ok {
		s.logReply("ZADD", reply)
		return fmt.Errorf("%w: ZADD replied %T, wanted integer", scoreboard.ErrUnexpectedReply, reply)
	}
	s.log.Debug("command", zap.String("cmd", "ZADD"), zap.Int64("added", added))
	return nil
}

func (s *Store) Fetch(ctx context.Context, key string, n int64, descending bool) ([]scoreboard.Entry, error) {
	conn, err := s.session()
	if err != nil {
		return nil, err
	}

	cmd := "ZRANGE"
	if descending {
		cmd = "ZREVRANGE"
	}
	reply, err := redis.DoContext(conn, ctx, cmd, key, 0, n-1, "WITHSCORES")
	if err != nil {
		return nil, err
	}

	entries, err := scoreboard.DecodeEntries(reply)
	if err != nil {
		s.logReply(cmd, reply)
		return nil, err
	}
	s.log.Debug("command", zap.String("cmd", cmd), zap.Int("entries", len(entries)))
	return entries, nil
}

// Close closes the connection. Closing a Store that is not connected is a
// no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Store) session() (redis.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil, scoreboard.ErrNotConnected
	}
	return s.conn, nil
}

func (s *Store) logReply(cmd string, reply interface{}) {
	if ce := s.log.Check(zap.DebugLevel, "unexpected reply"); ce != nil {
		ce.Write(zap.String("cmd", cmd), zap.String("reply", spew.Sdump(reply)))
	}
}
