package chunker

import (
	"regexp"
	"strings"

	"capsync/internal/textutil"
)

// EmphasisType labels why a caption word is highlighted.
type EmphasisType string

const (
	EmphasisNumber      EmphasisType = "number"
	EmphasisPower       EmphasisType = "power"
	EmphasisNegation    EmphasisType = "negation"
	EmphasisPunctuation EmphasisType = "punctuation"
	EmphasisPause       EmphasisType = "pause"
)

// AllEmphasisTypes lists every detector in priority order.
var AllEmphasisTypes = []EmphasisType{
	EmphasisNumber,
	EmphasisNegation,
	EmphasisPower,
	EmphasisPunctuation,
	EmphasisPause,
}

// numberPattern matches currency, percentages, and magnitude-suffixed
// figures: $500, 99%, 10x, 5k, 1.5m.
var numberPattern = regexp.MustCompile(`^[$€£]?\d[\d,]*(\.\d+)?(?i:%|x|k|m|bn|b)?$`)

// negationWords is checked before the broader power set so "don't" reads as
// negation rather than drama. Keys are punctuation-stripped with plain
// apostrophes.
var negationWords = map[string]bool{
	"no": true, "not": true, "never": true, "none": true,
	"nothing": true, "nobody": true, "neither": true, "nor": true,
	"without": true, "don't": true, "can't": true, "won't": true,
	"isn't": true, "aren't": true, "wasn't": true, "weren't": true,
	"didn't": true, "doesn't": true, "couldn't": true, "shouldn't": true,
	"wouldn't": true, "haven't": true, "hasn't": true, "cannot": true,
}

// powerWords covers superlatives, absolutes, intensifiers, and drama words.
var powerWords = map[string]bool{
	"best": true, "worst": true, "biggest": true, "greatest": true,
	"fastest": true, "easiest": true, "ultimate": true, "perfect": true,
	"every": true, "everything": true, "everyone": true, "always": true,
	"all": true, "only": true, "must": true, "need": true,
	"amazing": true, "incredible": true, "insane": true, "crazy": true,
	"massive": true, "huge": true, "powerful": true, "shocking": true,
	"unbelievable": true, "guaranteed": true, "proven": true,
	"secret": true, "critical": true, "essential": true, "free": true,
	"instantly": true, "now": true,
}

// detectEmphasis annotates each word independently of chunk boundaries. The
// first matching enabled detector wins; ambiguous words stay unemphasized.
func detectEmphasis(ws []Word, cfg Config) []ChunkedWord {
	enabled := enabledTypes(cfg)

	out := make([]ChunkedWord, len(ws))
	for i, w := range ws {
		cw := ChunkedWord{Word: w}
		for _, kind := range AllEmphasisTypes {
			if !enabled[kind] {
				continue
			}
			if matchesEmphasis(kind, ws, i, cfg) {
				cw.IsEmphasized = true
				cw.EmphasisType = kind
				break
			}
		}
		out[i] = cw
	}
	return out
}

func enabledTypes(cfg Config) map[EmphasisType]bool {
	enabled := make(map[EmphasisType]bool, len(AllEmphasisTypes))
	if len(cfg.EmphasisTypes) == 0 {
		for _, kind := range AllEmphasisTypes {
			enabled[kind] = true
		}
		return enabled
	}
	for _, kind := range cfg.EmphasisTypes {
		enabled[kind] = true
	}
	return enabled
}

func matchesEmphasis(kind EmphasisType, ws []Word, i int, cfg Config) bool {
	w := ws[i]
	switch kind {
	case EmphasisNumber:
		return numberPattern.MatchString(textutil.StripPunctuation(w.Text))
	case EmphasisNegation:
		key := strings.ToLower(textutil.NormalizeApostrophes(textutil.StripPunctuation(w.Text)))
		return negationWords[key]
	case EmphasisPower:
		key := strings.ToLower(textutil.StripPunctuation(w.Text))
		return powerWords[key]
	case EmphasisPunctuation:
		return strings.HasSuffix(w.Text, "!") || strings.HasSuffix(w.Text, "?")
	case EmphasisPause:
		if i+1 >= len(ws) {
			return false
		}
		return ws[i+1].StartMs-w.EndMs >= cfg.PauseGapMs
	}
	return false
}
