package channel

import (
	"fmt"
	"regexp"
	"strconv"
	"sync/atomic"
	"time"
)

// Token sequence for marker echoes. Seeded from the clock so tokens never
// repeat across process restarts sharing a terminal session.
var tokenSeq atomic.Int64

func init() {
	tokenSeq.Store(time.Now().UnixNano())
}

func nextToken() string {
	return fmt.Sprintf("ENVDOCTOR_DONE_%d", tokenSeq.Add(1))
}

// markerScanner watches a raw terminal output stream for the marker line
// "<token>:<exitcode>". It is a two-state machine, waiting then matched, and
// tolerates the marker being split across any number of chunks.
//
// The match requires digits followed by a line break, which makes two noise
// sources harmless: the terminal's echo of the typed marker command prints
// "<token>:$?" (no digits), and a partially delivered exit code is not
// matched until its terminating newline arrives.
type markerScanner struct {
	pattern  *regexp.Regexp
	tail     []byte
	tailMax  int
	matched  bool
	exitCode int
}

func newMarkerScanner(token string) *markerScanner {
	return &markerScanner{
		pattern: regexp.MustCompile(regexp.QuoteMeta(token) + `:(\d+)\r?\n`),
		tailMax: len(token) + 32,
	}
}

// Feed consumes one output chunk. Once it returns done=true the scanner stays
// matched and ignores further input.
func (s *markerScanner) Feed(chunk []byte) (exitCode int, done bool) {
	if s.matched {
		return s.exitCode, true
	}

	s.tail = append(s.tail, chunk...)

	if m := s.pattern.FindSubmatch(s.tail); m != nil {
		code, err := strconv.Atoi(string(m[1]))
		if err == nil {
			s.matched = true
			s.exitCode = code
			s.tail = nil
			return code, true
		}
	}

	// Keep only enough bytes for a marker that straddles the chunk boundary.
	if len(s.tail) > s.tailMax {
		s.tail = s.tail[len(s.tail)-s.tailMax:]
	}
	return 0, false
}
