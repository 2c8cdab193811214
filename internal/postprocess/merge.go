package postprocess

import (
	"strings"
	"unicode"

	"capsync/internal/textutil"
	"capsync/internal/words"
)

// splitWordSuffixes maps a prefix fragment the recognizer tends to emit on
// its own to the suffixes that recombine into a known whole word. Prefix
// matching is case-sensitive; suffix matching is not.
var splitWordSuffixes = map[string][]string{
	"Str": {"uggling", "uggle", "ength", "ategy", "etch"},
	"str": {"uggling", "uggle", "ength", "ategy", "etch"},
	"hyd": {"ration", "rated", "rogen"},
	"Hyd": {"ration", "rated", "rogen"},
	"pro": {"ductivity", "bably", "duction", "gress"},
	"Pro": {"ductivity", "bably", "duction", "gress"},
	"ex":  {"ercise", "ample", "perience"},
	"Ex":  {"ercise", "ample", "perience"},
	"o":   {"kay", "ver"},
	"O":   {"kay", "ver"},
	"a":   {"bout", "gain", "head"},
	"A":   {"bout", "gain", "head"},
}

// commonSplitWords backs the generic merge heuristic: a short capitalized
// prefix plus a longer lowercase suffix merge only when the concatenation is
// a word the recognizer is known to split.
var commonSplitWords = map[string]bool{
	"struggling": true, "strength": true, "strategy": true,
	"probably": true, "productivity": true, "production": true,
	"hydration": true, "understand": true, "important": true,
	"everything": true, "something": true, "business": true,
	"beautiful": true, "different": true, "remember": true,
	"together": true, "actually": true, "experience": true,
	"exercise": true, "progress": true,
}

// dictionaryMergeFloor boosts the confidence of table-driven merges.
const dictionaryMergeFloor = 0.8

// mergeSplitWords recombines word fragments the recognizer split apart.
// Table hits merge with boosted confidence; the generic heuristic keeps the
// weaker of the two fragment confidences.
func mergeSplitWords(ws []words.Word, stats *Stats) []words.Word {
	out := make([]words.Word, 0, len(ws))
	for i := 0; i < len(ws); i++ {
		if i+1 < len(ws) {
			if merged, ok := trySplitMerge(ws[i], ws[i+1]); ok {
				out = append(out, merged)
				stats.SplitWordMerges++
				i++
				continue
			}
		}
		out = append(out, ws[i])
	}
	return out
}

func trySplitMerge(prefix, suffix words.Word) (words.Word, bool) {
	if cands, ok := splitWordSuffixes[prefix.Text]; ok {
		for _, cand := range cands {
			if strings.EqualFold(suffix.Text, cand) {
				avg := (prefix.Confidence + suffix.Confidence) / 2
				return words.Word{
					Text:       prefix.Text + strings.ToLower(suffix.Text),
					Start:      prefix.Start,
					End:        suffix.End,
					Confidence: maxFloat(avg, dictionaryMergeFloor),
				}, true
			}
		}
	}

	if genericSplitCandidate(prefix.Text, suffix.Text) {
		return words.Word{
			Text:       prefix.Text + suffix.Text,
			Start:      prefix.Start,
			End:        suffix.End,
			Confidence: minFloat(prefix.Confidence, suffix.Confidence),
		}, true
	}

	return words.Word{}, false
}

func genericSplitCandidate(prefix, suffix string) bool {
	if len(prefix) == 0 || len(prefix) > 3 || len(suffix) < 4 {
		return false
	}
	if !startsUpper(prefix) || !allLowerLetters(suffix) {
		return false
	}
	return commonSplitWords[strings.ToLower(prefix+suffix)]
}

// contractionSuffixes are the apostrophe fragments that always belong to the
// preceding word.
var contractionSuffixes = map[string]bool{
	"'s": true, "'t": true, "'re": true, "'ve": true,
	"'ll": true, "'d": true, "'m": true,
}

func mergeContractions(ws []words.Word, stats *Stats) []words.Word {
	out := make([]words.Word, 0, len(ws))
	for i := 0; i < len(ws); i++ {
		if i+1 < len(ws) {
			next := textutil.NormalizeApostrophes(ws[i+1].Text)
			if contractionSuffixes[strings.ToLower(next)] {
				out = append(out, words.Word{
					Text:       ws[i].Text + next,
					Start:      ws[i].Start,
					End:        ws[i+1].End,
					Confidence: minFloat(ws[i].Confidence, ws[i+1].Confidence),
				})
				stats.ContractionMerges++
				i++
				continue
			}
		}
		out = append(out, ws[i])
	}
	return out
}

// repeatedCharRunMin is the run length at which single-letter tokens
// collapse into one onomatopoeia-style token.
const repeatedCharRunMin = 3

func mergeRepeatedChars(ws []words.Word, stats *Stats) []words.Word {
	out := make([]words.Word, 0, len(ws))
	for i := 0; i < len(ws); i++ {
		runEnd := i
		for runEnd < len(ws) && sameSingleLetter(ws[i].Text, ws[runEnd].Text) {
			runEnd++
		}
		runLen := runEnd - i
		if runLen >= repeatedCharRunMin {
			conf := ws[i].Confidence
			var text strings.Builder
			for j := i; j < runEnd; j++ {
				text.WriteString(ws[j].Text)
				conf = minFloat(conf, ws[j].Confidence)
			}
			out = append(out, words.Word{
				Text:       text.String(),
				Start:      ws[i].Start,
				End:        ws[runEnd-1].End,
				Confidence: conf,
			})
			stats.RepeatedCharMerges++
			i = runEnd - 1
			continue
		}
		out = append(out, ws[i])
	}
	return out
}

func sameSingleLetter(first, candidate string) bool {
	if len(first) != 1 || len(candidate) != 1 {
		return false
	}
	if !unicode.IsLetter(rune(first[0])) {
		return false
	}
	return strings.EqualFold(first, candidate)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func allLowerLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return len(s) > 0
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
