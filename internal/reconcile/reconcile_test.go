package reconcile

import (
	"testing"

	"capsync/internal/words"
)

func TestReconcileDigitScript(t *testing.T) {
	asr := []words.Word{{Text: "tenex", Start: 0.5, End: 0.8, Confidence: 0.9}}

	out := Reconcile(asr, "10x faster", DefaultOptions())
	if len(out) != 1 {
		t.Fatalf("expected 1 word, got %d", len(out))
	}
	if out[0].Text != "10x" {
		t.Errorf("expected script text %q, got %q", "10x", out[0].Text)
	}
	if out[0].Start != 0.5 || out[0].End != 0.8 {
		t.Errorf("expected recognizer timing [0.5, 0.8] untouched, got [%v, %v]", out[0].Start, out[0].End)
	}
}

func TestReconcilePreservesLength(t *testing.T) {
	asr := []words.Word{
		words.New("the", 0, 0.2),
		words.New("kwick", 0.2, 0.5),
		words.New("brown", 0.5, 0.8),
		words.New("focks", 0.8, 1.1),
		words.New("zzz", 1.1, 1.3),
	}

	out, stats := ReconcileWithStats(asr, "The quick brown fox jumps", DefaultOptions())
	if len(out) != len(asr) {
		t.Fatalf("expected output length %d, got %d", len(asr), len(out))
	}
	if stats.PassThrough == 0 {
		t.Error("expected the unmatchable word to pass through")
	}
	if out[0].Text != "The" {
		t.Errorf("expected surface form %q, got %q", "The", out[0].Text)
	}
	if out[1].Text != "quick" {
		t.Errorf("expected fuzzy match to %q, got %q", "quick", out[1].Text)
	}
	if out[4].Text != "zzz" {
		t.Errorf("expected unmatched word unchanged, got %q", out[4].Text)
	}
}

func TestReconcileCompoundMatch(t *testing.T) {
	asr := []words.Word{
		{Text: "under", Start: 0, End: 0.3, Confidence: 0.8},
		{Text: "stand", Start: 0.3, End: 0.6, Confidence: 0.6},
		{Text: "me", Start: 0.7, End: 0.9, Confidence: 1.0},
	}

	out, stats := ReconcileWithStats(asr, "understand me", DefaultOptions())
	if stats.Compound != 1 {
		t.Fatalf("expected 1 compound match, got %d", stats.Compound)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 words after compound merge, got %d", len(out))
	}
	if out[0].Text != "understand" {
		t.Errorf("expected %q, got %q", "understand", out[0].Text)
	}
	if out[0].Start != 0 || out[0].End != 0.6 {
		t.Errorf("expected span [0, 0.6], got [%v, %v]", out[0].Start, out[0].End)
	}
	if out[0].Confidence != 0.7 {
		t.Errorf("expected mean confidence 0.7, got %v", out[0].Confidence)
	}
	if out[1].Text != "me" {
		t.Errorf("expected %q, got %q", "me", out[1].Text)
	}
}

func TestReconcileRelocatedMatch(t *testing.T) {
	// The recognizer skipped "very" and said "fox" early; the best-match
	// scan should find "fox" further along without burning "very".
	asr := []words.Word{
		words.New("the", 0, 0.2),
		words.New("fox", 0.2, 0.5),
		words.New("very", 0.5, 0.8),
	}

	out, stats := ReconcileWithStats(asr, "the very quick fox", DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("expected 3 words, got %d", len(out))
	}
	if stats.Relocated == 0 {
		t.Error("expected a relocated match")
	}
	if out[1].Text != "fox" {
		t.Errorf("expected relocated %q, got %q", "fox", out[1].Text)
	}
	if out[2].Text != "very" {
		t.Errorf("expected %q still matchable after relocation, got %q", "very", out[2].Text)
	}
}

func TestReconcileScriptWordConsumedOnce(t *testing.T) {
	asr := []words.Word{
		words.New("go", 0, 0.2),
		words.New("go", 0.2, 0.4),
		words.New("go", 0.4, 0.6),
	}

	out, stats := ReconcileWithStats(asr, "go now", DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("expected 3 words, got %d", len(out))
	}
	matched := stats.Direct + stats.Relocated
	if matched != 1 {
		t.Errorf("expected the single script %q consumed once, got %d matches", "go", matched)
	}
	if stats.PassThrough != 2 {
		t.Errorf("expected 2 pass-throughs, got %d", stats.PassThrough)
	}
}

func TestReconcileNormalizedOutput(t *testing.T) {
	asr := []words.Word{words.New("hello", 0, 0.4)}
	out := Reconcile(asr, "Hello, world", Options{PreservePunctuation: false})
	if out[0].Text != "hello" {
		t.Errorf("expected normalized form %q, got %q", "hello", out[0].Text)
	}
}

func TestReconcileEmptyScript(t *testing.T) {
	asr := []words.Word{words.New("alone", 0, 0.4)}
	out := Reconcile(asr, "   ", DefaultOptions())
	if len(out) != 1 || out[0].Text != "alone" {
		t.Fatalf("expected pass-through for empty script, got %v", out)
	}
}
