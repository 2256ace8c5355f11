package scoreboard_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	"github.com/redis/go-redis/example/scoreboard"
)

var _ = Describe("error", func() {
	It("classifies store errors", func() {
		data := map[error]string{
			io.EOF:                   "connection_error",
			io.ErrUnexpectedEOF:      "connection_error",
			net.ErrClosed:            "connection_error",
			context.Canceled:         "connection_error",
			context.DeadlineExceeded: "connection_error",
			timeoutError{}:           "connection_error",
			&net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}: "connection_error",
			fmt.Errorf("read: %w", io.EOF): "connection_error",

			errRejected:                                  "command_error",
			scoreboard.ErrUnexpectedReply:                "command_error",
			errors.New("redis: can't parse array reply"): "command_error",
		}

		for err, expected := range data {
			Expect(scoreboard.Result(scoreboard.Classify("fetch", "mem:0", err))).To(Equal(expected), err.Error())
		}
		Expect(scoreboard.Classify("fetch", "mem:0", nil)).To(BeNil())
	})

	It("keeps classified errors as they are", func() {
		connErr := &scoreboard.ConnectionError{Op: "connect", Addr: "a:1", Err: errRejected}
		Expect(scoreboard.Classify("fetch", "b:2", connErr)).To(BeIdenticalTo(connErr))

		cmdErr := &scoreboard.CommandError{Op: "update", Err: io.EOF}
		Expect(scoreboard.Classify("fetch", "b:2", cmdErr)).To(BeIdenticalTo(cmdErr))
	})

	It("formats messages", func() {
		err := scoreboard.Classify("update", "127.0.0.1:6379", io.EOF)
		Expect(err).To(MatchError("scoreboard: update 127.0.0.1:6379: connection error: EOF"))

		err = scoreboard.Classify("fetch", "127.0.0.1:6379", errRejected)
		Expect(err).To(MatchError("scoreboard: fetch: command error: ERR value is not a valid float"))

		err = &scoreboard.ConnectionError{Op: "connect", Err: io.EOF}
		Expect(err).To(MatchError("scoreboard: connect: connection error: EOF"))
	})

	It("matches wrapped errors", func() {
		err := fmt.Errorf("run: %w", &scoreboard.CommandError{Op: "fetch", Err: errRejected})
		Expect(scoreboard.IsCommandError(err)).To(BeTrue())
		Expect(scoreboard.IsConnectionError(err)).To(BeFalse())
		Expect(errors.Is(err, errRejected)).To(BeTrue())

		Expect(scoreboard.Result(nil)).To(Equal("ok"))
		Expect(scoreboard.Result(scoreboard.ErrClosed)).To(Equal("error"))
	})
})
