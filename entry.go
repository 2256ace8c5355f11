package scoreboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultKey is the sorted set the scoreboard writes to when no key is set.
const DefaultKey = "game:scores"

// Entry is one ranked member of the scoreboard.
type Entry struct {
	Name  string
	Score float64
}

func (e Entry) String() string {
	return e.Name + ": " + FormatScore(e.Score)
}

// FormatScore renders a score the way the store prints it: the shortest
// decimal form, without exponent or trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// ParseEntry parses a "name=score" pair. The name is everything before the
// last '=' so that names may contain '=' themselves.
func ParseEntry(s string) (Entry, error) {
	ind := strings.LastIndexByte(s, '=')
	if ind <= 0 {
		return Entry{}, fmt.Errorf("scoreboard: entry %q is not in name=score form", s)
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(s[ind+1:]), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("scoreboard: entry %q has invalid score: %w", s, err)
	}
	if math.IsNaN(score) {
		return Entry{}, fmt.Errorf("scoreboard: entry %q has NaN score", s)
	}
	return Entry{Name: s[:ind], Score: score}, nil
}

// DefaultEntries returns the seed entries of a default run.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Alice", Score: 100},
		{Name: "Bob", Score: 200},
		{Name: "Charlie", Score: 150},
	}
}
