package postprocess

import "capsync/internal/words"

// Options selects which cleanup stages run. DefaultOptions enables all of
// them; the stage order is fixed because artifact filtering must see the
// result of the merges and the timing fixes must see the final token set.
type Options struct {
	MergeSplitWords   bool
	MergeContractions bool
	FixOverlaps       bool
	// MinDurationMs extends words shorter than this, never past the next
	// word's start. Zero disables the extension.
	MinDurationMs float64
}

// DefaultOptions enables every stage with a 100ms minimum word duration.
func DefaultOptions() Options {
	return Options{
		MergeSplitWords:   true,
		MergeContractions: true,
		FixOverlaps:       true,
		MinDurationMs:     100,
	}
}

// Stats counts the effect of each cleanup stage. The counters are additive
// observability only; ProcessWithStats and Process produce identical words.
type Stats struct {
	SplitWordMerges    int
	ContractionMerges  int
	RepeatedCharMerges int
	ArtifactsDropped   int
	OverlapsFixed      int
	DurationsExtended  int
}

// Total sums all counters.
func (s Stats) Total() int {
	return s.SplitWordMerges + s.ContractionMerges + s.RepeatedCharMerges +
		s.ArtifactsDropped + s.OverlapsFixed + s.DurationsExtended
}

// Process cleans recognizer artifacts out of a word sequence. Already-clean
// input passes through unchanged, so the operation is idempotent.
func Process(ws []words.Word, opts Options) []words.Word {
	out, _ := ProcessWithStats(ws, opts)
	return out
}

// ProcessWithStats is Process plus per-stage counters.
func ProcessWithStats(ws []words.Word, opts Options) ([]words.Word, Stats) {
	var stats Stats
	if len(ws) == 0 {
		return nil, stats
	}

	out := make([]words.Word, len(ws))
	copy(out, ws)

	if opts.MergeSplitWords {
		out = mergeSplitWords(out, &stats)
	}
	if opts.MergeContractions {
		out = mergeContractions(out, &stats)
	}
	out = mergeRepeatedChars(out, &stats)
	out = filterArtifacts(out, &stats)
	if opts.FixOverlaps {
		out = fixOverlaps(out, &stats)
	}
	if opts.MinDurationMs > 0 {
		out = extendShortDurations(out, opts.MinDurationMs, &stats)
	}

	return out, stats
}
