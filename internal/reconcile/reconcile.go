package reconcile

import (
	"strings"

	"capsync/internal/textutil"
	"capsync/internal/words"
)

// Options tunes the reconciliation walk. Zero values select the defaults.
type Options struct {
	// MinSimilarity is the score at which a recognized word is replaced by
	// the script word. Zero selects the default of 0.6.
	MinSimilarity float64
	// PreservePunctuation emits the script word's original surface form;
	// when false the normalized form is emitted instead.
	PreservePunctuation bool
	// MaxLookahead caps how many consecutive recognized words may combine
	// into one compound match. Zero selects the default of 3.
	MaxLookahead int
}

// DefaultOptions returns the standard reconciliation tuning.
func DefaultOptions() Options {
	return Options{MinSimilarity: 0.6, PreservePunctuation: true, MaxLookahead: 3}
}

func (o Options) withDefaults() Options {
	if o.MinSimilarity <= 0 {
		o.MinSimilarity = 0.6
	}
	if o.MaxLookahead <= 0 {
		o.MaxLookahead = 3
	}
	return o
}

// Stats counts match outcomes for observability.
type Stats struct {
	Direct      int
	Compound    int
	Relocated   int
	PassThrough int
}

// scriptWord is one token of the authoritative script: the surface form as
// written, the normalized form for matching, and its position.
type scriptWord struct {
	surface    string
	normalized string
	index      int
}

func tokenizeScript(text string) []scriptWord {
	fields := strings.Fields(text)
	out := make([]scriptWord, 0, len(fields))
	for _, field := range fields {
		norm := textutil.Normalize(field)
		if norm == "" {
			continue
		}
		out = append(out, scriptWord{surface: field, normalized: norm, index: len(out)})
	}
	return out
}

// Reconcile re-maps recognized words onto the authoritative script text,
// keeping recognizer timing. Recognized words are never dropped or
// reordered; an unmatched word passes through unchanged. Each script word is
// consumed at most once.
func Reconcile(asr []words.Word, scriptText string, opts Options) []words.Word {
	out, _ := ReconcileWithStats(asr, scriptText, opts)
	return out
}

// ReconcileWithStats is Reconcile plus match counters.
func ReconcileWithStats(asr []words.Word, scriptText string, opts Options) ([]words.Word, Stats) {
	opts = opts.withDefaults()
	var stats Stats

	script := tokenizeScript(scriptText)
	if len(script) == 0 {
		out := make([]words.Word, len(asr))
		copy(out, asr)
		stats.PassThrough = len(asr)
		return out, stats
	}

	w := walker{
		asr:    asr,
		script: script,
		used:   make(map[int]bool, len(script)),
		opts:   opts,
	}
	return w.run(&stats), stats
}

// walker threads the two independent cursors of the greedy single-pass walk.
type walker struct {
	asr    []words.Word
	script []scriptWord
	used   map[int]bool
	si     int
	opts   Options
}

func (w *walker) run(stats *Stats) []words.Word {
	out := make([]words.Word, 0, len(w.asr))

	for ai := 0; ai < len(w.asr); {
		w.skipUsed()
		if w.si >= len(w.script) {
			out = append(out, w.asr[ai])
			stats.PassThrough++
			ai++
			continue
		}

		current := w.script[w.si]
		asrNorm := textutil.Normalize(w.asr[ai].Text)

		if similarity(asrNorm, current.normalized) >= w.opts.MinSimilarity {
			out = append(out, w.emit(w.asr[ai], current))
			w.used[current.index] = true
			w.si++
			stats.Direct++
			ai++
			continue
		}

		if consumed, ok := w.compoundMatch(ai, current); ok {
			first := w.asr[ai]
			last := w.asr[ai+consumed-1]
			merged := w.emit(words.Word{
				Text:       first.Text,
				Start:      first.Start,
				End:        last.End,
				Confidence: meanConfidence(w.asr[ai : ai+consumed]),
			}, current)
			out = append(out, merged)
			w.used[current.index] = true
			w.si++
			stats.Compound++
			ai += consumed
			continue
		}

		if match, ok := w.bestRemainingMatch(asrNorm); ok {
			out = append(out, w.emit(w.asr[ai], match))
			w.used[match.index] = true
			stats.Relocated++
			ai++
			continue
		}

		out = append(out, w.asr[ai])
		stats.PassThrough++
		ai++
	}

	return out
}

func (w *walker) skipUsed() {
	for w.si < len(w.script) && w.used[w.si] {
		w.si++
	}
}

// compoundMatch tries concatenating 2..MaxLookahead consecutive recognized
// words against the current script word, for compounds the recognizer split
// across tokens. Returns the number of recognized words consumed.
func (w *walker) compoundMatch(ai int, target scriptWord) (int, bool) {
	for count := 2; count <= w.opts.MaxLookahead && ai+count <= len(w.asr); count++ {
		var joined strings.Builder
		for _, cand := range w.asr[ai : ai+count] {
			joined.WriteString(textutil.Normalize(cand.Text))
		}
		if similarity(joined.String(), target.normalized) >= w.opts.MinSimilarity {
			return count, true
		}
	}
	return 0, false
}

// bestRemainingMatch scans the entire unconsumed remainder of the script for
// the closest word above threshold, which recovers from reordered or dropped
// script words. The script cursor is left untouched so skipped entries stay
// eligible.
func (w *walker) bestRemainingMatch(asrNorm string) (scriptWord, bool) {
	best := scriptWord{}
	bestScore := 0.0
	found := false
	for i := w.si; i < len(w.script); i++ {
		if w.used[i] {
			continue
		}
		score := similarity(asrNorm, w.script[i].normalized)
		if score >= w.opts.MinSimilarity && score > bestScore {
			best = w.script[i]
			bestScore = score
			found = true
		}
	}
	return best, found
}

// emit replaces the recognized word's text with the script word's form,
// preserving the recognizer timing.
func (w *walker) emit(asr words.Word, sw scriptWord) words.Word {
	text := sw.surface
	if !w.opts.PreservePunctuation {
		text = sw.normalized
	}
	return words.Word{
		Text:       text,
		Start:      asr.Start,
		End:        asr.End,
		Confidence: asr.Confidence,
	}
}

// similarity takes the better of the direct and the digit-spelled score, so
// "tenx" still matches the script's "10x".
func similarity(a, b string) float64 {
	direct := textutil.Similarity(a, b)
	phonetic := textutil.Similarity(textutil.SpellDigits(a), textutil.SpellDigits(b))
	if phonetic > direct {
		return phonetic
	}
	return direct
}

func meanConfidence(ws []words.Word) float64 {
	if len(ws) == 0 {
		return 0
	}
	var sum float64
	for _, w := range ws {
		sum += w.Confidence
	}
	return sum / float64(len(ws))
}
