package scoreboard_test

import (
	"bytes"
	"errors"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	"github.com/redis/go-redis/example/scoreboard"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("short write") }

var _ = Describe("Run", func() {
	var (
		store  *memStore
		client *scoreboard.Client
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		store = newMemStore()
		client = scoreboard.New(store)
		out = new(bytes.Buffer)
	})

	It("prints the top three by descending score", func() {
		err := scoreboard.Run(ctx, client, out, scoreboard.DefaultRequest())
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("Bob: 200\nCharlie: 150\nAlice: 100\n"))
		Expect(store.closes).To(Equal(1))
	})

	It("prints the lowest scores when ascending", func() {
		req := scoreboard.DefaultRequest()
		req.Top = 2
		req.Ascending = true

		Expect(scoreboard.Run(ctx, client, out, req)).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("Alice: 100\nCharlie: 150\n"))
	})

	It("prints nothing for an empty set", func() {
		Expect(scoreboard.Run(ctx, client, out, scoreboard.Request{Top: 3})).NotTo(HaveOccurred())
		Expect(out.Len()).To(Equal(0))
	})

	It("prints the merged set on a repeated run", func() {
		Expect(scoreboard.Run(ctx, client, out, scoreboard.DefaultRequest())).NotTo(HaveOccurred())

		out.Reset()
		client = scoreboard.New(store)
		req := scoreboard.Request{Entries: []scoreboard.Entry{{Name: "Dave", Score: 175}}, Top: 3}
		Expect(scoreboard.Run(ctx, client, out, req)).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("Bob: 200\nDave: 175\nCharlie: 150\n"))
	})

	It("stops before updating when Connect fails", func() {
		store.connectErr = errors.New("refused")

		err := scoreboard.Run(ctx, client, out, scoreboard.DefaultRequest())
		Expect(scoreboard.IsConnectionError(err)).To(BeTrue())
		Expect(store.sets).To(BeEmpty())
		Expect(store.closes).To(Equal(0))
	})

	It("does not fetch after a failed update and still disconnects", func() {
		store.updateErr = errRejected

		err := scoreboard.Run(ctx, client, out, scoreboard.DefaultRequest())
		Expect(scoreboard.IsCommandError(err)).To(BeTrue())
		Expect(store.fetches).To(Equal(0))
		Expect(store.closes).To(Equal(1))
		Expect(out.Len()).To(Equal(0))
	})

	It("keeps the first error when Disconnect also fails", func() {
		store.fetchErr = errRejected
		store.closeErr = errors.New("close failed")

		err := scoreboard.Run(ctx, client, out, scoreboard.DefaultRequest())
		Expect(scoreboard.IsCommandError(err)).To(BeTrue())
		Expect(errors.Is(err, errRejected)).To(BeTrue())
	})

	It("reports a Disconnect failure after a successful run", func() {
		store.closeErr = errors.New("close failed")

		err := scoreboard.Run(ctx, client, out, scoreboard.DefaultRequest())
		Expect(scoreboard.IsConnectionError(err)).To(BeTrue())
		Expect(out.String()).To(HavePrefix("Bob: 200\n"))
	})

	It("returns write errors", func() {
		err := scoreboard.Render(failingWriter{}, scoreboard.DefaultEntries())
		Expect(err).To(MatchError("short write"))
	})
})
