package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

var (
	// ErrNotConnected is returned by operations issued before Connect.
	ErrNotConnected = errors.New("scoreboard: not connected")

	// ErrAlreadyConnected is returned by a second Connect on a live client.
	ErrAlreadyConnected = errors.New("scoreboard: already connected")

	// ErrClosed is returned by operations issued after Disconnect.
	ErrClosed = errors.New("scoreboard: client is closed")

	// ErrUnexpectedReply is wrapped by CommandError when a reply does not have
	// the shape the command promises.
	ErrUnexpectedReply = errors.New("scoreboard: unexpected reply")
)

// ConnectionError reports that the store is unreachable, refused the session
// or dropped it while a command was in flight.
type ConnectionError struct {
	Op   string
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("scoreboard: %s: connection error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scoreboard: %s %s: connection error: %v", e.Op, e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CommandError reports that the store rejected a command or answered it with
// a reply of the wrong shape.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("scoreboard: %s: command error: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// IsConnectionError reports whether err is, or wraps, a *ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsCommandError reports whether err is, or wraps, a *CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// classify turns an error returned by a Store into one of the two error kinds.
// Errors that are already classified pass through unchanged.
func classify(op, addr string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectionError(err) || IsCommandError(err) {
		return err
	}
	if isNetworkError(err) {
		return &ConnectionError{Op: op, Addr: addr, Err: err}
	}
	return &CommandError{Op: op, Err: err}
}

func isNetworkError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
