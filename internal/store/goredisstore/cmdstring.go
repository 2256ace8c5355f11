package goredisstore

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// cmdString renders a command and, if it failed, its error on one line, e.g.
// "zadd game:scores 100 Alice: ERR ...". Arguments that are not printable
// ASCII are hex encoded so that log lines stay intact.
func cmdString(cmd redis.Cmder) string {
	b := make([]byte, 0, 64)
	for i, arg := range cmd.Args() {
		if i > 0 {
			b = append(b, ' ')
		}
		b = appendArg(b, arg)
	}
	if err := cmd.Err(); err != nil && err != redis.Nil {
		b = append(b, ": "...)
		b = append(b, err.Error()...)
	}
	return string(b)
}

func appendArg(b []byte, v interface{}) []byte {
	switch v := v.(type) {
	case nil:
		return append(b, "<nil>"...)
	case string:
		return appendPrintable(b, []byte(v))
	case []byte:
		return appendPrintable(b, v)
	case int:
		return strconv.AppendInt(b, int64(v), 10)
	case int64:
		return strconv.AppendInt(b, v, 10)
	case uint64:
		return strconv.AppendUint(b, v, 10)
	case float64:
		return strconv.AppendFloat(b, v, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(b, v)
	default:
		return append(b, fmt.Sprint(v)...)
	}
}

func appendPrintable(dst, src []byte) []byte {
	for _, c := range src {
		if c < 0x21 || c > 0x7e {
			s := len(dst)
			dst = append(dst, make([]byte, hex.EncodedLen(len(src)))...)
			hex.Encode(dst[s:], src)
			return dst
		}
	}
	return append(dst, src...)
}
