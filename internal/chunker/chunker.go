package chunker

import (
	"strings"

	"capsync/internal/words"
)

// Word is a display-ready word with timing in milliseconds.
type Word struct {
	Text    string  `json:"text"`
	StartMs float64 `json:"startMs"`
	EndMs   float64 `json:"endMs"`
}

// DurationMs returns the word's on-screen length in milliseconds.
func (w Word) DurationMs() float64 {
	return w.EndMs - w.StartMs
}

// ChunkedWord is a caption word annotated with emphasis metadata.
type ChunkedWord struct {
	Word
	IsEmphasized bool         `json:"isEmphasized"`
	EmphasisType EmphasisType `json:"emphasisType,omitempty"`
}

// CaptionChunk is one short on-screen caption unit.
type CaptionChunk struct {
	Words       []ChunkedWord `json:"words"`
	Text        string        `json:"text"`
	StartMs     float64       `json:"startMs"`
	EndMs       float64       `json:"endMs"`
	CharCount   int           `json:"charCount"`
	Index       int           `json:"index"`
	HasEmphasis bool          `json:"hasEmphasis"`
}

// Timings returns the chunk's words without emphasis metadata, the shape the
// playback query functions operate on.
func (c CaptionChunk) Timings() []Word {
	out := make([]Word, len(c.Words))
	for i, w := range c.Words {
		out[i] = w.Word
	}
	return out
}

// Config tunes segmentation. Zero values select the defaults.
type Config struct {
	MaxWordsPerChunk  int
	MinWordsPerChunk  int
	MaxCharsPerSecond float64
	MinOnScreenMs     float64
	PauseGapMs        float64
	// EmphasisTypes lists the detectors to run. Nil enables all of them.
	EmphasisTypes []EmphasisType
}

// DefaultConfig returns the standard segmentation tuning.
func DefaultConfig() Config {
	return Config{
		MaxWordsPerChunk:  5,
		MinWordsPerChunk:  2,
		MaxCharsPerSecond: 15,
		MinOnScreenMs:     350,
		PauseGapMs:        500,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxWordsPerChunk <= 0 {
		c.MaxWordsPerChunk = def.MaxWordsPerChunk
	}
	if c.MinWordsPerChunk <= 0 {
		c.MinWordsPerChunk = def.MinWordsPerChunk
	}
	if c.MaxCharsPerSecond <= 0 {
		c.MaxCharsPerSecond = def.MaxCharsPerSecond
	}
	if c.MinOnScreenMs <= 0 {
		c.MinOnScreenMs = def.MinOnScreenMs
	}
	if c.PauseGapMs <= 0 {
		c.PauseGapMs = def.PauseGapMs
	}
	return c
}

// FromSeconds converts pipeline words (seconds) to caption words (ms).
func FromSeconds(ws []words.Word) []Word {
	out := make([]Word, len(ws))
	for i, w := range ws {
		out[i] = Word{Text: w.Text, StartMs: w.StartMs(), EndMs: w.EndMs()}
	}
	return out
}

// minOnScreenBufferMs keeps an extended chunk from touching its successor.
const minOnScreenBufferMs = 50

// Chunk groups words into short caption units. Break rules run in fixed
// priority order before each word is appended; a final pass extends chunks
// that would flash off-screen too quickly.
func Chunk(ws []Word, cfg Config) []CaptionChunk {
	cfg = cfg.withDefaults()
	if len(ws) == 0 {
		return nil
	}

	annotated := detectEmphasis(ws, cfg)

	var chunks []CaptionChunk
	var current []ChunkedWord

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, buildChunk(current, len(chunks)))
		current = nil
	}

	for i, cw := range annotated {
		ctx := breakContext{
			chunk:     current,
			word:      cw.Word,
			remaining: len(annotated) - i,
		}
		if rule, fired := firstFiringRule(ctx, cfg); fired {
			if suppressOrphanBreak(rule, ctx) {
				// Let the final word ride along instead of dangling alone.
			} else {
				flush()
			}
		}
		current = append(current, cw)
	}
	flush()

	extendShortChunks(chunks, cfg)
	return chunks
}

// joinedCharCount is the length of the words once rendered as space-joined
// caption text. CharCount and the characters-per-second rule both count
// characters this way.
func joinedCharCount(ws []ChunkedWord) int {
	total := 0
	for i, w := range ws {
		if i > 0 {
			total++
		}
		total += len(w.Text)
	}
	return total
}

func buildChunk(ws []ChunkedWord, index int) CaptionChunk {
	texts := make([]string, len(ws))
	hasEmphasis := false
	for i, w := range ws {
		texts[i] = w.Text
		if w.IsEmphasized {
			hasEmphasis = true
		}
	}
	text := strings.Join(texts, " ")
	return CaptionChunk{
		Words:       ws,
		Text:        text,
		StartMs:     ws[0].StartMs,
		EndMs:       ws[len(ws)-1].EndMs,
		CharCount:   joinedCharCount(ws),
		Index:       index,
		HasEmphasis: hasEmphasis,
	}
}

// extendShortChunks pushes out the end of any chunk shorter than the
// configured minimum display time, stopping short of the next chunk's start.
func extendShortChunks(chunks []CaptionChunk, cfg Config) {
	for i := range chunks {
		duration := chunks[i].EndMs - chunks[i].StartMs
		if duration >= cfg.MinOnScreenMs {
			continue
		}
		target := chunks[i].StartMs + cfg.MinOnScreenMs
		if i+1 < len(chunks) {
			limit := chunks[i+1].StartMs - minOnScreenBufferMs
			if target > limit {
				target = limit
			}
		}
		if target > chunks[i].EndMs {
			chunks[i].EndMs = target
		}
	}
}
