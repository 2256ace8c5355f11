package scoreboard

import (
	"context"
	"io"
)

// Request describes one scoreboard run.
type Request struct {
	Entries   []Entry
	Top       int64
	Ascending bool
}

// DefaultRequest seeds the default entries and asks for the top three.
func DefaultRequest() Request {
	return Request{Entries: DefaultEntries(), Top: 3}
}

// Run connects, upserts req.Entries, fetches the top req.Top entries, renders
// them to w and disconnects. The client is disconnected on every return path.
func Run(ctx context.Context, c *Client, w io.Writer, req Request) (err error) {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := c.Disconnect(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := c.UpdateScores(ctx, req.Entries...); err != nil {
		return err
	}

	entries, err := c.FetchTopN(ctx, req.Top, !req.Ascending)
	if err != nil {
		return err
	}
	return Render(w, entries)
}

// Render writes one "<name>: <score>" line per entry.
func Render(w io.Writer, entries []Entry) error {
	b := make([]byte, 0, 32*len(entries))
	for _, e := range entries {
		b = append(b, e.Name...)
		b = append(b, ": "...)
		b = append(b, FormatScore(e.Score)...)
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
