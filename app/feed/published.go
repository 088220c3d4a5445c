package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParsePublished interprets a feed timestamp leniently. ok is false for empty
// or unparseable values.
func ParsePublished(published string) (time.Time, bool) {
	published = strings.TrimSpace(published)
	if published == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, published); err == nil {
		return t, true
	}

	t, err := dateparse.ParseIn(published, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ComparePublished orders a before b when a was published later. Values
// without a valid timestamp compare as the lowest possible time and
// therefore sort last.
func ComparePublished(a, b Video) int {
	ta, okA := ParsePublished(a.Published)
	tb, okB := ParsePublished(b.Published)

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	return tb.Compare(ta)
}
