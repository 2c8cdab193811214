// Package textutil provides the text primitives shared by the caption
// pipeline: token normalization, Levenshtein edit distance, and digit
// spelling for phonetic-style comparison ("10x" vs "tenx").
package textutil
