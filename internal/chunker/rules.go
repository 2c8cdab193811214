package chunker

import "strings"

// breakContext is the state a break rule sees before a word is appended:
// the chunk built so far, the candidate word, and how many input words
// remain (the candidate included).
type breakContext struct {
	chunk     []ChunkedWord
	word      Word
	remaining int
}

func (c breakContext) chunkLen() int { return len(c.chunk) }

func (c breakContext) lastWord() (ChunkedWord, bool) {
	if len(c.chunk) == 0 {
		return ChunkedWord{}, false
	}
	return c.chunk[len(c.chunk)-1], true
}

// breakRule is one boolean predicate of the segmentation cascade.
type breakRule struct {
	name  string
	fires func(breakContext, Config) bool
}

// breakRules run in priority order; the first rule that fires decides the
// break. Order: word-count limit, pause gap, characters-per-second budget,
// sentence boundary.
var breakRules = []breakRule{
	{name: "max_words", fires: maxWordsRule},
	{name: "pause_gap", fires: pauseGapRule},
	{name: "cps_budget", fires: cpsRule},
	{name: "sentence_end", fires: sentenceRule},
}

func maxWordsRule(ctx breakContext, cfg Config) bool {
	return ctx.chunkLen() >= cfg.MaxWordsPerChunk
}

func pauseGapRule(ctx breakContext, cfg Config) bool {
	last, ok := ctx.lastWord()
	if !ok {
		return false
	}
	return ctx.word.StartMs-last.EndMs >= cfg.PauseGapMs
}

func cpsRule(ctx breakContext, cfg Config) bool {
	if ctx.chunkLen() < cfg.MinWordsPerChunk {
		return false
	}
	elapsed := (ctx.word.EndMs - ctx.chunk[0].StartMs) / 1000
	if elapsed <= 0 {
		return false
	}
	// Count the chunk the way it will render: joined text plus the space
	// before the candidate word.
	chars := float64(joinedCharCount(ctx.chunk) + 1 + len(ctx.word.Text))
	return chars/elapsed > cfg.MaxCharsPerSecond
}

func sentenceRule(ctx breakContext, cfg Config) bool {
	if ctx.chunkLen() < cfg.MinWordsPerChunk {
		return false
	}
	last, _ := ctx.lastWord()
	return endsSentence(last.Text)
}

// endsSentence reports whether a word closes a sentence. An ellipsis is a
// continuation, not a boundary.
func endsSentence(text string) bool {
	if strings.HasSuffix(text, "...") {
		return false
	}
	return strings.HasSuffix(text, ".") ||
		strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?")
}

func firstFiringRule(ctx breakContext, cfg Config) (breakRule, bool) {
	for _, rule := range breakRules {
		if rule.fires(ctx, cfg) {
			return rule, true
		}
	}
	return breakRule{}, false
}

// suppressOrphanBreak keeps the very last input word from becoming a chunk
// of its own: any break other than the hard word-count limit is suppressed
// when exactly one word remains.
func suppressOrphanBreak(rule breakRule, ctx breakContext) bool {
	return rule.name != "max_words" && ctx.remaining == 1
}
