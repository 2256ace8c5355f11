package scoreboard_test

import (
	"errors"
	"math"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	"github.com/redis/go-redis/example/scoreboard"
)

type i = []interface{}

var posInf, negInf = math.Inf(1), math.Inf(-1)

var _ = Describe("DecodeEntries", func() {
	ranked := []scoreboard.Entry{
		{Name: "Bob", Score: 200},
		{Name: "Charlie", Score: 150},
	}

	DescribeTable("accepts range replies",
		func(reply interface{}, wanted []scoreboard.Entry) {
			entries, err := scoreboard.DecodeEntries(reply)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal(wanted))
		},

		Entry("RESP2 strings", i{"Bob", "200", "Charlie", "150"}, ranked),
		Entry("RESP2 bytes", i{[]byte("Bob"), []byte("200"), []byte("Charlie"), []byte("150")}, ranked),
		Entry("RESP3 pairs", i{i{"Bob", 200.0}, i{"Charlie", 150.0}}, ranked),
		Entry("RESP3 integer scores", i{i{"Bob", int64(200)}, i{"Charlie", int64(150)}}, ranked),
		Entry("infinite scores", i{"max", "inf", "min", "-inf"}, []scoreboard.Entry{
			{Name: "max", Score: posInf},
			{Name: "min", Score: negInf},
		}),
		Entry("empty array", i{}, []scoreboard.Entry{}),
	)

	DescribeTable("rejects other shapes",
		func(reply interface{}) {
			entries, err := scoreboard.DecodeEntries(reply)
			Expect(entries).To(BeNil())
			Expect(errors.Is(err, scoreboard.ErrUnexpectedReply)).To(BeTrue())
		},

		Entry("status", "OK"),
		Entry("integer", int64(3)),
		Entry("nil", nil),
		Entry("odd array", i{"Bob", "200", "Charlie"}),
		Entry("non-numeric score", i{"Bob", "lots"}),
		Entry("nil member", i{nil, "1"}),
		Entry("short pair", i{i{"Bob", 200.0}, i{"Charlie"}}),
		Entry("mixed shapes", i{i{"Bob", 200.0}, "Charlie"}),
	)
})
