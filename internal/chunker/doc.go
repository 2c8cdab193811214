// Package chunker groups cleaned caption words into short on-screen units.
// Break decisions run as an ordered cascade of independent rules (word-count
// limit, pause gap, characters-per-second budget, sentence boundary) with
// orphan prevention for the final word, and every word carries emphasis
// metadata detected from small lookup tables.
package chunker
