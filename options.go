package scoreboard

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	key      string
	logger   *zap.Logger
	observer Observer
	tp       trace.TracerProvider
}

func (opt *options) init() {
	if opt.key == "" {
		opt.key = DefaultKey
	}
	if opt.logger == nil {
		opt.logger = zap.NewNop()
	}
	if opt.observer == nil {
		opt.observer = nopObserver{}
	}
	if opt.tp == nil {
		opt.tp = noop.NewTracerProvider()
	}
}

// WithKey sets the sorted set the client reads and writes.
func WithKey(key string) Option {
	return func(opt *options) { opt.key = key }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(opt *options) { opt.logger = l }
}

// WithObserver registers an Observer, typically a metrics recorder.
func WithObserver(o Observer) Option {
	return func(opt *options) { opt.observer = o }
}

// WithTracerProvider enables a span per operation.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(opt *options) { opt.tp = tp }
}
