package textutil

import (
	"strings"
	"unicode"
)

// Normalize lowercases a token and strips everything that is not a letter or
// digit, the canonical form used for fuzzy word comparison.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeApostrophes converts typographic apostrophes to the plain ASCII
// form so contraction lookups only need one spelling.
func NormalizeApostrophes(s string) string {
	s = strings.ReplaceAll(s, "’", "'")
	return strings.ReplaceAll(s, "ʼ", "'")
}

// StripPunctuation removes leading and trailing punctuation from a token,
// leaving interior characters (apostrophes, hyphens) intact.
func StripPunctuation(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

var numberWords = map[string]string{
	"0": "zero", "1": "one", "2": "two", "3": "three", "4": "four",
	"5": "five", "6": "six", "7": "seven", "8": "eight", "9": "nine",
	"10": "ten", "11": "eleven", "12": "twelve", "13": "thirteen",
	"14": "fourteen", "15": "fifteen", "16": "sixteen", "17": "seventeen",
	"18": "eighteen", "19": "nineteen", "20": "twenty", "30": "thirty",
	"40": "forty", "50": "fifty", "60": "sixty", "70": "seventy",
	"80": "eighty", "90": "ninety", "100": "hundred", "1000": "thousand",
}

// SpellDigits replaces every digit run in a token with its spelled-out form,
// so "10x" compares equal to a recognizer's "tenx". Runs without a direct
// lookup are spelled digit by digit.
func SpellDigits(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] < '0' || s[i] > '9' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		run := s[i:j]
		if word, ok := numberWords[run]; ok {
			b.WriteString(word)
		} else {
			for _, d := range run {
				b.WriteString(numberWords[string(d)])
			}
		}
		i = j
	}
	return b.String()
}
