package postprocess

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"capsync/internal/words"
)

// validShortWords whitelists one- and two-letter tokens that are real words.
// Everything else that short is recognizer noise once the merge stages have
// had their chance to recombine fragments.
var validShortWords = map[string]bool{
	"a": true, "i": true, "o": true,
	"ok": true, "oh": true, "no": true, "hi": true, "ah": true,
	"he": true, "we": true, "be": true, "me": true, "my": true,
	"us": true, "so": true, "to": true, "of": true, "on": true,
	"in": true, "it": true, "is": true, "at": true, "as": true,
	"do": true, "go": true, "up": true, "or": true, "if": true,
	"an": true, "am": true, "by": true,
}

// filterArtifacts drops recognizer junk: empty tokens, bracketed markers
// like [music] or <noise>, lone punctuation, and short tokens that are not
// words. It runs after the merge stages so fragments that should combine
// get the chance first.
func filterArtifacts(ws []words.Word, stats *Stats) []words.Word {
	out := make([]words.Word, 0, len(ws))
	for _, w := range ws {
		if isArtifact(w.Text) {
			stats.ArtifactsDropped++
			continue
		}
		out = append(out, w)
	}
	return out
}

func isArtifact(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if isBracketMarker(trimmed) {
		return true
	}
	if isAllPunctuation(trimmed) {
		return true
	}
	if isShortNonWord(trimmed) {
		return true
	}
	return false
}

// isShortNonWord flags one- and two-letter tokens outside the whitelist.
// Tokens with any non-letter rune ("$5", "10", "9%") are not letters at all
// and stay; numerals are real caption words.
func isShortNonWord(s string) bool {
	if utf8.RuneCountInString(s) > 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return !validShortWords[strings.ToLower(s)]
}

func isBracketMarker(s string) bool {
	pairs := [][2]byte{{'[', ']'}, {'<', '>'}, {'(', ')'}, {'{', '}'}}
	for _, p := range pairs {
		if len(s) >= 2 && s[0] == p[0] && s[len(s)-1] == p[1] {
			return true
		}
	}
	return false
}

func isAllPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
