package postprocess

import "capsync/internal/words"

// fixOverlaps resolves adjacent words whose timings overlap by splitting the
// difference: both boundaries clamp to the midpoint, so afterwards every
// pair satisfies current.End <= next.Start.
func fixOverlaps(ws []words.Word, stats *Stats) []words.Word {
	for i := 0; i+1 < len(ws); i++ {
		if ws[i+1].Start >= ws[i].End {
			continue
		}
		mid := (ws[i+1].Start + ws[i].End) / 2
		ws[i].End = mid
		ws[i+1].Start = mid
		stats.OverlapsFixed++
	}
	return ws
}

// extendShortDurations pushes out the end of any word shorter than the
// minimum display duration, but never past the next word's start; when
// there is less headroom than the minimum, the word takes what is there.
func extendShortDurations(ws []words.Word, minDurationMs float64, stats *Stats) []words.Word {
	minDuration := minDurationMs / 1000
	for i := range ws {
		if ws[i].Duration() >= minDuration {
			continue
		}
		target := ws[i].Start + minDuration
		if i+1 < len(ws) && target > ws[i+1].Start {
			target = ws[i+1].Start
		}
		if target > ws[i].End {
			ws[i].End = target
			stats.DurationsExtended++
		}
	}
	return ws
}
