package drift

import "capsync/internal/words"

// stepCadenceSec is the assumed word cadence used when sizing step offsets.
const stepCadenceSec = 1.0

// stepToleranceSec is the slack inside which a gap excess is not removed.
const stepToleranceSec = 0.2

// Correct removes the classified drift pattern from a word sequence. Word
// text and duration are preserved; only start/end shift together. Input is
// returned unchanged (copied) when the analysis is not correctable.
func Correct(samples []Sample, analysis Analysis) []words.Word {
	out := make([]words.Word, len(samples))
	for i, s := range samples {
		out[i] = s.Word
	}
	if !analysis.Correctable || analysis.Pattern == PatternNone {
		return out
	}

	switch analysis.Pattern {
	case PatternLinear:
		correctLinear(out, analysis.SlopeSecPerWord)
	case PatternStepped:
		correctStepped(out, analysis.JumpIndices)
	case PatternProgressive:
		correctProgressive(out, analysis.AccumulationRate)
	}
	return out
}

func correctLinear(ws []words.Word, slopeSecPerWord float64) {
	for i := range ws {
		shiftWord(&ws[i], float64(i)*slopeSecPerWord)
	}
}

// correctStepped accumulates a running offset that grows only at the
// flagged jump indices, by however much the local gap exceeds the assumed
// cadence plus tolerance, and shifts every subsequent word back by it.
func correctStepped(ws []words.Word, jumpIndices []int) {
	jumps := make(map[int]bool, len(jumpIndices))
	for _, idx := range jumpIndices {
		jumps[idx] = true
	}

	offset := 0.0
	for i := range ws {
		if i > 0 && jumps[i] {
			gap := ws[i].Start - ws[i-1].Start
			if excess := gap - stepCadenceSec - stepToleranceSec; excess > 0 {
				offset += excess
			}
		}
		shiftWord(&ws[i], offset)
	}
}

// correctProgressive removes accumulating drift with a quadratic term. The
// accumulation rate is the mean second difference of the drift (ms) scaled
// by 100, so the term is rescaled to seconds here.
func correctProgressive(ws []words.Word, rate float64) {
	for i := range ws {
		meanSecondDiffMs := rate * 100
		correctionSec := float64(i*i) * meanSecondDiffMs / 2 / 1000
		shiftWord(&ws[i], correctionSec)
	}
}

// shiftWord moves a word earlier by the given seconds, clamping the start
// at zero while keeping the original duration.
func shiftWord(w *words.Word, bySec float64) {
	duration := w.Duration()
	start := w.Start - bySec
	if start < 0 {
		start = 0
	}
	w.Start = start
	w.End = start + duration
}
