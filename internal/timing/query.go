package timing

import (
	"sort"

	"capsync/internal/chunker"
)

// ActiveWord resolves which word is active at an absolute playback time in
// milliseconds. Words are defensively sorted by (start, end) first. The
// active word is the one with the latest start at or before the query time:
// a word stays active through trailing silence until the next word begins,
// which keeps highlighting stable against short or jittery end times.
// Returns false when the time precedes the first word.
func ActiveWord(ws []chunker.Word, absoluteMs float64) (chunker.Word, bool) {
	if len(ws) == 0 {
		return chunker.Word{}, false
	}

	sorted := make([]chunker.Word, len(ws))
	copy(sorted, ws)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartMs != sorted[j].StartMs {
			return sorted[i].StartMs < sorted[j].StartMs
		}
		return sorted[i].EndMs < sorted[j].EndMs
	})

	if absoluteMs < sorted[0].StartMs {
		return chunker.Word{}, false
	}

	// First index whose start exceeds the query time; the answer is the
	// word just before it.
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].StartMs > absoluteMs
	})
	return sorted[idx-1], true
}

// IsActive reports whether a word is on at a chunk-relative elapsed time.
// The interval is half-open: a time exactly touching the word's end is not
// active, so a zero-duration word can never be active.
func IsActive(w chunker.Word, chunkStartMs, elapsedMs float64) bool {
	absolute := chunkStartMs + elapsedMs
	return absolute >= w.StartMs && absolute < w.EndMs
}

// Progress returns the fractional progress through a word in [0,1] at a
// chunk-relative elapsed time, and false when the word is not active.
func Progress(w chunker.Word, chunkStartMs, elapsedMs float64) (float64, bool) {
	if !IsActive(w, chunkStartMs, elapsedMs) {
		return 0, false
	}
	absolute := chunkStartMs + elapsedMs
	fraction := (absolute - w.StartMs) / (w.EndMs - w.StartMs)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fraction, true
}
