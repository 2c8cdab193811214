package timing

import "capsync/internal/words"

// repairedConfidence marks redistributed words as degraded output.
const repairedConfidence = 0.5

// Repair discards corrupted absolute positions and redistributes the words
// proportionally to character length across [0, totalDurationSec]. Every
// output word satisfies end > start and the last word ends exactly at the
// total duration. Repair is a fallback after Validate fails, never a silent
// correction: the result carries lowered confidence so consumers can treat
// it as degraded.
func Repair(ws []words.Word, totalDurationSec float64) []words.Word {
	if len(ws) == 0 || totalDurationSec <= 0 {
		return nil
	}

	weights := make([]float64, len(ws))
	var total float64
	for i, w := range ws {
		weight := float64(len(w.Text))
		if weight < 1 {
			weight = 1
		}
		weights[i] = weight
		total += weight
	}

	out := make([]words.Word, len(ws))
	cursor := 0.0
	for i, w := range ws {
		span := totalDurationSec * weights[i] / total
		out[i] = words.Word{
			Text:       w.Text,
			Start:      cursor,
			End:        cursor + span,
			Confidence: repairedConfidence,
		}
		cursor += span
	}
	// Pin the final boundary so float accumulation cannot undershoot.
	out[len(out)-1].End = totalDurationSec

	return out
}
