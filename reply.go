package scoreboard

import (
	"fmt"
	"strconv"
)

// DecodeEntries converts a raw WITHSCORES range reply into entries.
//
// Two shapes are accepted: the RESP2 flat array
// [member, score, member, score, ...] and the RESP3 array of
// [member, score] pairs. Members may be strings or byte slices. Scores may be
// strings, byte slices, doubles or integers. Anything else is reported as
// ErrUnexpectedReply.
func DecodeEntries(reply interface{}) ([]Entry, error) {
	items, ok := reply.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: got %T, wanted array", ErrUnexpectedReply, reply)
	}
	if len(items) == 0 {
		return []Entry{}, nil
	}

	if _, nested := items[0].([]interface{}); nested {
		entries := make([]Entry, 0, len(items))
		for i, item := range items {
			pair, ok := item.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("%w: element %d is not a [member score] pair", ErrUnexpectedReply, i)
			}
			entry, err := decodeEntry(pair[0], pair[1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	if len(items)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d elements, wanted member/score pairs", ErrUnexpectedReply, len(items))
	}
	entries := make([]Entry, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		entry, err := decodeEntry(items[i], items[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(member, score interface{}) (Entry, error) {
	name, err := replyString(member)
	if err != nil {
		return Entry{}, err
	}
	f, err := replyFloat(score)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Score: f}, nil
}

func replyString(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: member is %T, wanted string", ErrUnexpectedReply, v)
	}
}

func replyFloat(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		return parseScore(v)
	case []byte:
		return parseScore(string(v))
	default:
		return 0, fmt.Errorf("%w: score is %T, wanted number", ErrUnexpectedReply, v)
	}
}

func parseScore(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: score %q is not a number", ErrUnexpectedReply, s)
	}
	return f, nil
}
