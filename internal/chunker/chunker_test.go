package chunker

import (
	"strings"
	"testing"
)

// evenWords builds n words of the given text, wordMs long, back to back.
func evenWords(n int, text string, wordMs float64) []Word {
	ws := make([]Word, n)
	for i := range ws {
		start := float64(i) * wordMs
		ws[i] = Word{Text: text, StartMs: start, EndMs: start + wordMs}
	}
	return ws
}

func TestChunkWordCountBounds(t *testing.T) {
	cfg := DefaultConfig()
	ws := evenWords(23, "word", 400)

	chunks := Chunk(ws, cfg)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	total := 0
	for i, c := range chunks {
		total += len(c.Words)
		if len(c.Words) > cfg.MaxWordsPerChunk {
			t.Errorf("chunk %d: %d words exceeds max %d", i, len(c.Words), cfg.MaxWordsPerChunk)
		}
		if i < len(chunks)-1 && len(c.Words) < cfg.MinWordsPerChunk {
			t.Errorf("chunk %d: %d words below min %d", i, len(c.Words), cfg.MinWordsPerChunk)
		}
		if c.Index != i {
			t.Errorf("chunk %d: expected sequential index, got %d", i, c.Index)
		}
	}
	if total != len(ws) {
		t.Errorf("expected all %d words chunked, got %d", len(ws), total)
	}
}

func TestChunkPauseGapForcesBreak(t *testing.T) {
	ws := []Word{
		{Text: "before", StartMs: 0, EndMs: 400},
		{Text: "gap", StartMs: 450, EndMs: 800},
		{Text: "after", StartMs: 1400, EndMs: 1800}, // 600ms gap
		{Text: "words", StartMs: 1850, EndMs: 2200},
	}

	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks around the pause, got %d: %v", len(chunks), chunks)
	}
	if chunks[0].Text != "before gap" {
		t.Errorf("expected first chunk %q, got %q", "before gap", chunks[0].Text)
	}
	if chunks[1].Text != "after words" {
		t.Errorf("expected second chunk %q, got %q", "after words", chunks[1].Text)
	}
}

func TestChunkCPSBudgetBreaks(t *testing.T) {
	// Dense long words blow the characters-per-second budget quickly.
	ws := evenWords(6, "extraordinarily", 200)

	cfg := DefaultConfig()
	chunks := Chunk(ws, cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected CPS budget to split dense words, got %d chunk(s)", len(chunks))
	}
	for i, c := range chunks[:len(chunks)-1] {
		if len(c.Words) < cfg.MinWordsPerChunk {
			t.Errorf("chunk %d: CPS break below min words: %d", i, len(c.Words))
		}
	}
}

func TestChunkCPSBudgetCountsJoiningSpaces(t *testing.T) {
	// 14 letters over one second fit a budget of 15, but the caption renders
	// with joining spaces: "seven chars four" is 16 characters.
	ws := []Word{
		{Text: "seven", StartMs: 0, EndMs: 300},
		{Text: "chars", StartMs: 320, EndMs: 600},
		{Text: "four", StartMs: 620, EndMs: 1000},
		{Text: "tail", StartMs: 1020, EndMs: 1400},
	}

	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 2 {
		t.Fatalf("expected the joined length to blow the budget, got %d chunk(s)", len(chunks))
	}
	if chunks[0].Text != "seven chars" {
		t.Errorf("expected first chunk %q, got %q", "seven chars", chunks[0].Text)
	}
	if chunks[0].CharCount != joinedCharCount(chunks[0].Words) {
		t.Errorf("expected CharCount %d to match the joined length %d",
			chunks[0].CharCount, joinedCharCount(chunks[0].Words))
	}
}

func TestChunkSentenceBoundaryBreaks(t *testing.T) {
	ws := []Word{
		{Text: "It", StartMs: 0, EndMs: 300},
		{Text: "works.", StartMs: 350, EndMs: 700},
		{Text: "Next", StartMs: 750, EndMs: 1100},
		{Text: "sentence", StartMs: 1150, EndMs: 1500},
		{Text: "here", StartMs: 1550, EndMs: 1900},
	}

	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 2 {
		t.Fatalf("expected a break after the sentence, got %d chunks", len(chunks))
	}
	if chunks[0].Text != "It works." {
		t.Errorf("expected first chunk %q, got %q", "It works.", chunks[0].Text)
	}
}

func TestChunkEllipsisIsNotSentenceEnd(t *testing.T) {
	ws := []Word{
		{Text: "Wait", StartMs: 0, EndMs: 300},
		{Text: "for...", StartMs: 350, EndMs: 700},
		{Text: "it", StartMs: 750, EndMs: 1100},
	}

	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected no break on ellipsis, got %d chunks", len(chunks))
	}
}

func TestChunkOrphanPrevention(t *testing.T) {
	// The sentence boundary after "done." would leave "Bye" dangling as a
	// one-word chunk; orphan prevention folds it into the current chunk.
	ws := []Word{
		{Text: "We", StartMs: 0, EndMs: 300},
		{Text: "are", StartMs: 350, EndMs: 700},
		{Text: "done.", StartMs: 750, EndMs: 1100},
		{Text: "Bye", StartMs: 1150, EndMs: 1500},
	}

	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected orphan prevention to keep one chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "We are done. Bye" {
		t.Errorf("expected %q, got %q", "We are done. Bye", chunks[0].Text)
	}
}

func TestChunkMaxWordsStillBreaksBeforeFinalWord(t *testing.T) {
	// Orphan prevention never overrides the hard word-count limit.
	ws := evenWords(6, "word", 400)

	cfg := DefaultConfig()
	chunks := Chunk(ws, cfg)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Words) != 5 || len(chunks[1].Words) != 1 {
		t.Errorf("expected 5+1 split at the word limit, got %d+%d",
			len(chunks[0].Words), len(chunks[1].Words))
	}
}

func TestChunkMinOnScreenExtension(t *testing.T) {
	ws := []Word{
		{Text: "fast", StartMs: 0, EndMs: 100},
		{Text: "words!", StartMs: 120, EndMs: 200},
		{Text: "Later", StartMs: 1200, EndMs: 1600},
		{Text: "words", StartMs: 1650, EndMs: 2000},
	}

	cfg := DefaultConfig()
	chunks := Chunk(ws, cfg)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	first := chunks[0]
	if first.EndMs-first.StartMs < cfg.MinOnScreenMs {
		t.Errorf("expected first chunk extended to %vms, got %vms", cfg.MinOnScreenMs, first.EndMs-first.StartMs)
	}
	if first.EndMs > chunks[1].StartMs-50 {
		t.Errorf("expected extension capped 50ms before next chunk start %v, got end %v",
			chunks[1].StartMs, first.EndMs)
	}
}

func TestChunkEmphasisMetadata(t *testing.T) {
	ws := []Word{
		{Text: "Save", StartMs: 0, EndMs: 300},
		{Text: "$500", StartMs: 350, EndMs: 700},
		{Text: "never", StartMs: 750, EndMs: 1100},
		{Text: "best", StartMs: 1150, EndMs: 1500},
		{Text: "today!", StartMs: 1550, EndMs: 1900},
	}

	chunks := Chunk(ws, DefaultConfig())
	var flat []ChunkedWord
	for _, c := range chunks {
		flat = append(flat, c.Words...)
		if !c.HasEmphasis {
			t.Errorf("chunk %d: expected HasEmphasis", c.Index)
		}
	}

	wantTypes := map[string]EmphasisType{
		"$500":   EmphasisNumber,
		"never":  EmphasisNegation,
		"best":   EmphasisPower,
		"today!": EmphasisPunctuation,
	}
	for _, w := range flat {
		want, emphasized := wantTypes[w.Text]
		if emphasized != w.IsEmphasized {
			t.Errorf("word %q: expected emphasized=%v", w.Text, emphasized)
			continue
		}
		if emphasized && w.EmphasisType != want {
			t.Errorf("word %q: expected emphasis %q, got %q", w.Text, want, w.EmphasisType)
		}
	}
}

func TestChunkPauseEmphasis(t *testing.T) {
	ws := []Word{
		{Text: "wait", StartMs: 0, EndMs: 300},
		{Text: "here", StartMs: 350, EndMs: 700},
		{Text: "then", StartMs: 1400, EndMs: 1700},
		{Text: "go", StartMs: 1750, EndMs: 2000},
	}

	chunks := Chunk(ws, Config{EmphasisTypes: []EmphasisType{EmphasisPause}})
	var found bool
	for _, c := range chunks {
		for _, w := range c.Words {
			if w.Text == "here" {
				found = true
				if !w.IsEmphasized || w.EmphasisType != EmphasisPause {
					t.Errorf("expected %q flagged as pause, got %+v", "here", w)
				}
			} else if w.IsEmphasized {
				t.Errorf("word %q: expected only the pause detector enabled, got %q", w.Text, w.EmphasisType)
			}
		}
	}
	if !found {
		t.Fatal("expected the word before the pause in the output")
	}
}

func TestChunkDisabledEmphasis(t *testing.T) {
	ws := []Word{
		{Text: "never", StartMs: 0, EndMs: 300},
		{Text: "best", StartMs: 350, EndMs: 700},
	}
	chunks := Chunk(ws, Config{EmphasisTypes: []EmphasisType{EmphasisNumber}})
	for _, c := range chunks {
		for _, w := range c.Words {
			if w.IsEmphasized {
				t.Errorf("word %q: expected no emphasis with only numbers enabled", w.Text)
			}
		}
	}
}

func TestChunkTextAndCharCount(t *testing.T) {
	ws := []Word{
		{Text: "two", StartMs: 0, EndMs: 300},
		{Text: "words", StartMs: 350, EndMs: 700},
	}
	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Text != "two words" {
		t.Errorf("expected text %q, got %q", "two words", c.Text)
	}
	if c.CharCount != len("two words") {
		t.Errorf("expected char count %d, got %d", len("two words"), c.CharCount)
	}
	if c.StartMs != 0 || c.EndMs != 700 {
		t.Errorf("expected bounds [0, 700], got [%v, %v]", c.StartMs, c.EndMs)
	}
}

func TestCaptionChunkTimingsDropEmphasis(t *testing.T) {
	ws := []Word{
		{Text: "only", StartMs: 0, EndMs: 300},
		{Text: "$99", StartMs: 350, EndMs: 700},
	}
	chunks := Chunk(ws, DefaultConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !chunks[0].HasEmphasis {
		t.Fatal("expected emphasis on power word and number")
	}
	timings := chunks[0].Timings()
	if len(timings) != 2 {
		t.Fatalf("expected 2 timing words, got %d", len(timings))
	}
	if timings[1] != (Word{Text: "$99", StartMs: 350, EndMs: 700}) {
		t.Errorf("unexpected timing word: %+v", timings[1])
	}
}

func TestChunkEmptyInput(t *testing.T) {
	if chunks := Chunk(nil, DefaultConfig()); chunks != nil {
		t.Fatalf("expected nil for empty input, got %v", chunks)
	}
}

func TestChunkWordsRoundTrip(t *testing.T) {
	ws := evenWords(17, "steady", 300)
	chunks := Chunk(ws, DefaultConfig())

	var rebuilt []string
	for _, c := range chunks {
		rebuilt = append(rebuilt, strings.Fields(c.Text)...)
	}
	if len(rebuilt) != len(ws) {
		t.Fatalf("expected %d words reconstructed, got %d", len(ws), len(rebuilt))
	}
}
