package painter

import (
	"fmt"
	"strings"
)

// QueryStat identifies one counter of Stats.
type QueryStat uint8

const (
	StatAttributes QueryStat = iota
	StatHeaderIndices
	StatIndices
	StatGenericData
	StatDraws
	StatHeaders
	StatBegins
	StatEnds
	StatFlushes
	StatBreaks

	numQueryStats
)

// NumStats is the number of counters in Stats.
const NumStats = 10

var queryStatNames = [...]string{
	StatAttributes:    "attributes",
	StatHeaderIndices: "header_indices",
	StatIndices:       "indices",
	StatGenericData:   "generic_data",
	StatDraws:         "draws",
	StatHeaders:       "headers",
	StatBegins:        "begins",
	StatEnds:          "ends",
	StatFlushes:       "flushes",
	StatBreaks:        "breaks",
}

// NumStats must match the number of QueryStat values and names.
var (
	_ [NumStats]struct{} = [numQueryStats]struct{}{}
	_ [NumStats]struct{} = [len(queryStatNames)]struct{}{}
)

// String returns the counter name.
func (s QueryStat) String() string {
	if int(s) < len(queryStatNames) {
		return queryStatNames[s]
	}
	return fmt.Sprintf("QueryStat(%d)", s)
}

// Stats counts what a packer wrote. Attach it with WithStats.
type Stats [NumStats]uint64

// Get returns the value of a counter.
func (s *Stats) Get(q QueryStat) uint64 { return s[q] }

// Reset zeroes every counter.
func (s *Stats) Reset() { *s = Stats{} }

func (s *Stats) add(q QueryStat, n int) {
	if s != nil {
		s[q] += uint64(n) //nolint:gosec // counts are non-negative
	}
}

// String lists every counter as name=value.
func (s *Stats) String() string {
	var b strings.Builder
	for i := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", QueryStat(i), s[i]) //nolint:gosec // i < NumStats
	}
	return b.String()
}
