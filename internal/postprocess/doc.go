// Package postprocess fixes recognizer artifacts in word-timestamp
// sequences: split fragments and contractions are merged back together,
// repeated single-letter runs collapse, junk tokens are dropped, and timing
// overlaps and too-short durations are repaired. Stages run in a fixed
// order; ProcessWithStats reports per-stage counters without changing the
// output.
package postprocess
