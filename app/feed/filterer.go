package feed

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 100
	MinLimit     = 1
	MaxLimit     = 200
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run keeps videos whose channel is one of sources (all videos when sources
// is empty) and returns the first limit of them together with the
// pre-truncation count.
func (f *Filterer) Run(videos []Video, sources []string, limit int) ([]Video, int) {
	filtered := videos
	if len(sources) > 0 {
		allowed := make(map[string]struct{}, len(sources))
		for _, source := range sources {
			allowed[source] = struct{}{}
		}

		filtered = make([]Video, 0, len(videos))
		for _, video := range videos {
			if _, ok := allowed[video.Channel]; ok {
				filtered = append(filtered, video)
			}
		}
	}

	total := len(filtered)
	limit = clampLimit(limit)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, total
}

// ParseLimit reads the leading integer of raw, defaulting to DefaultLimit
// when there is none and clamping to [MinLimit, MaxLimit].
func ParseLimit(raw string) int {
	digits := leadingInteger(strings.TrimSpace(raw))
	if digits == "" {
		return DefaultLimit
	}

	limit, err := strconv.Atoi(digits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && strings.HasPrefix(digits, "-") {
			return MinLimit
		}
		if errors.Is(err, strconv.ErrRange) {
			return MaxLimit
		}
		return DefaultLimit
	}

	return clampLimit(limit)
}

// ParseSources splits a comma-separated list of channel names. Blank names
// are dropped; a result of nil means no filtering.
func ParseSources(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var sources []string
	for _, source := range strings.Split(raw, ",") {
		if source = strings.TrimSpace(source); source != "" {
			sources = append(sources, source)
		}
	}

	return sources
}

func clampLimit(limit int) int {
	return min(max(limit, MinLimit), MaxLimit)
}

func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == start {
		return ""
	}
	return s[:end]
}
