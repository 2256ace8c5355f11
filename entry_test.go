package scoreboard_test

import (
	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	"github.com/redis/go-redis/example/scoreboard"
)

var _ = Describe("Entry", func() {
	It("formats like the store prints scores", func() {
		Expect(scoreboard.Entry{Name: "Bob", Score: 200}.String()).To(Equal("Bob: 200"))
		Expect(scoreboard.FormatScore(1.5)).To(Equal("1.5"))
		Expect(scoreboard.FormatScore(-0.25)).To(Equal("-0.25"))
		Expect(scoreboard.FormatScore(1e21)).To(Equal("1000000000000000000000"))
	})

	DescribeTable("ParseEntry",
		func(s string, wanted scoreboard.Entry) {
			e, err := scoreboard.ParseEntry(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(Equal(wanted))
		},

		Entry("integer score", "Alice=100", scoreboard.Entry{Name: "Alice", Score: 100}),
		Entry("float score", "Bob=1.5", scoreboard.Entry{Name: "Bob", Score: 1.5}),
		Entry("negative score", "Eve=-3", scoreboard.Entry{Name: "Eve", Score: -3}),
		Entry("padded score", "Dan= 7 ", scoreboard.Entry{Name: "Dan", Score: 7}),
		Entry("name with '='", "a=b=2", scoreboard.Entry{Name: "a=b", Score: 2}),
		Entry("name with spaces", "Mary Ann=5", scoreboard.Entry{Name: "Mary Ann", Score: 5}),
	)

	DescribeTable("ParseEntry rejects",
		func(s string) {
			_, err := scoreboard.ParseEntry(s)
			Expect(err).To(HaveOccurred())
		},

		Entry("missing separator", "Alice"),
		Entry("missing name", "=100"),
		Entry("missing score", "Alice="),
		Entry("non-numeric score", "Alice=lots"),
		Entry("NaN score", "Alice=NaN"),
	)

	It("seeds three players", func() {
		Expect(scoreboard.DefaultEntries()).To(HaveLen(3))
		Expect(scoreboard.DefaultRequest().Top).To(Equal(int64(3)))
	})
})
