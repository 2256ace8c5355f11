package scoreboard

import (
	"context"
	"time"
)

// Store is the narrow binding between the scoreboard and a concrete
// key-value store client. A Store holds at most one session: Connect opens it
// and Close releases it.
//
// Implementations return the client library's errors as they are. The Client
// classifies them into ConnectionError and CommandError.
type Store interface {
	// Addr identifies the store in errors and logs.
	Addr() string

	// Connect opens the session and verifies the store answers.
	Connect(ctx context.Context) error

	// Update upserts entries into the sorted set at key.
	Update(ctx context.Context, key string, entries []Entry) error

	// Fetch returns up to n entries of the sorted set at key ordered by score.
	Fetch(ctx context.Context, key string, n int64, descending bool) ([]Entry, error)

	// Close releases the session. Closing twice is not an error.
	Close() error
}

// Observer is notified after every Client operation.
type Observer interface {
	ObserveOp(op string, took time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveOp(string, time.Duration, error) {}

// Result names the outcome of an operation for metrics labels.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsConnectionError(err):
		return "connection_error"
	case IsCommandError(err):
		return "command_error"
	default:
		return "error"
	}
}
