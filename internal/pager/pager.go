// Package pager is the legacy caption segmenter: a plain character-budget
// line breaker with gap- and word-count page breaks. Older display
// consumers depend on its exact behavior, so it stays behaviorally frozen;
// new consumers should use the chunker.
package pager

import (
	"strings"

	"capsync/internal/chunker"
)

// Config tunes pagination. Zero values select the defaults.
type Config struct {
	MaxCharsPerLine int
	MaxLinesPerPage int
	MaxWordsPerPage int
	// MaxGapMs forces a new page when the silence to the next word exceeds it.
	MaxGapMs float64
}

// DefaultConfig returns the tuning older display code was built against.
func DefaultConfig() Config {
	return Config{
		MaxCharsPerLine: 32,
		MaxLinesPerPage: 2,
		MaxWordsPerPage: 12,
		MaxGapMs:        1000,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxCharsPerLine <= 0 {
		c.MaxCharsPerLine = def.MaxCharsPerLine
	}
	if c.MaxLinesPerPage <= 0 {
		c.MaxLinesPerPage = def.MaxLinesPerPage
	}
	if c.MaxWordsPerPage <= 0 {
		c.MaxWordsPerPage = def.MaxWordsPerPage
	}
	if c.MaxGapMs <= 0 {
		c.MaxGapMs = def.MaxGapMs
	}
	return c
}

// Line is a run of words that fits the character budget.
type Line struct {
	Words   []chunker.Word `json:"words"`
	Text    string         `json:"text"`
	StartMs float64        `json:"startMs"`
	EndMs   float64        `json:"endMs"`
}

// Page is one or more lines displayed together.
type Page struct {
	Lines   []Line  `json:"lines"`
	Text    string  `json:"text"`
	StartMs float64 `json:"startMs"`
	EndMs   float64 `json:"endMs"`
	Index   int     `json:"index"`
}

// Paginate groups words into pages of character-budgeted lines. A word is
// never split mid-word: one that alone exceeds the budget becomes its own
// line.
func Paginate(ws []chunker.Word, cfg Config) []Page {
	cfg = cfg.withDefaults()
	if len(ws) == 0 {
		return nil
	}

	var pages []Page
	var lines []Line
	var line []chunker.Word
	pageWords := 0

	lineChars := func() int {
		total := 0
		for i, w := range line {
			if i > 0 {
				total++ // joining space
			}
			total += len(w.Text)
		}
		return total
	}

	flushLine := func() {
		if len(line) == 0 {
			return
		}
		lines = append(lines, buildLine(line))
		line = nil
	}

	flushPage := func() {
		flushLine()
		if len(lines) == 0 {
			return
		}
		pages = append(pages, buildPage(lines, len(pages)))
		lines = nil
		pageWords = 0
	}

	var prevEnd float64
	for i, w := range ws {
		if i > 0 && w.StartMs-prevEnd > cfg.MaxGapMs {
			flushPage()
		}

		if len(line) > 0 && lineChars()+1+len(w.Text) > cfg.MaxCharsPerLine {
			flushLine()
			if len(lines) >= cfg.MaxLinesPerPage {
				flushPage()
			}
		}

		line = append(line, w)
		pageWords++
		prevEnd = w.EndMs

		if pageWords >= cfg.MaxWordsPerPage {
			flushPage()
		}
	}
	flushPage()

	return pages
}

func buildLine(ws []chunker.Word) Line {
	texts := make([]string, len(ws))
	for i, w := range ws {
		texts[i] = w.Text
	}
	return Line{
		Words:   ws,
		Text:    strings.Join(texts, " "),
		StartMs: ws[0].StartMs,
		EndMs:   ws[len(ws)-1].EndMs,
	}
}

func buildPage(lines []Line, index int) Page {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return Page{
		Lines:   lines,
		Text:    strings.Join(texts, "\n"),
		StartMs: lines[0].StartMs,
		EndMs:   lines[len(lines)-1].EndMs,
		Index:   index,
	}
}
