package postprocess

import (
	"math"
	"reflect"
	"testing"

	"capsync/internal/words"
)

func TestSplitWordMergeFromTable(t *testing.T) {
	ws := []words.Word{
		{Text: "Str", Start: 0.17, End: 0.37, Confidence: 0.6},
		{Text: "uggling", Start: 0.32, End: 0.56, Confidence: 0.7},
		{Text: "to", Start: 0.6, End: 0.7, Confidence: 0.9},
	}

	out, stats := ProcessWithStats(ws, Options{MergeSplitWords: true})
	if len(out) != 2 {
		t.Fatalf("expected 2 words after merge, got %d: %v", len(out), out)
	}
	merged := out[0]
	if merged.Text != "Struggling" {
		t.Errorf("expected merged text %q, got %q", "Struggling", merged.Text)
	}
	if merged.Start != 0.17 {
		t.Errorf("expected merged start 0.17, got %v", merged.Start)
	}
	if merged.End != 0.56 {
		t.Errorf("expected merged end 0.56, got %v", merged.End)
	}
	// Table hits get the boosted confidence floor: max(avg(0.6,0.7), 0.8).
	if math.Abs(merged.Confidence-0.8) > 1e-9 {
		t.Errorf("expected boosted confidence 0.8, got %v", merged.Confidence)
	}
	if stats.SplitWordMerges != 1 {
		t.Errorf("expected 1 split-word merge counted, got %d", stats.SplitWordMerges)
	}
}

func TestSplitWordMergeGenericHeuristic(t *testing.T) {
	ws := []words.Word{
		{Text: "Bus", Start: 0, End: 0.2, Confidence: 0.9},
		{Text: "iness", Start: 0.2, End: 0.5, Confidence: 0.6},
	}

	out := Process(ws, Options{MergeSplitWords: true})
	if len(out) != 1 {
		t.Fatalf("expected 1 word, got %d: %v", len(out), out)
	}
	if out[0].Text != "Business" {
		t.Errorf("expected %q, got %q", "Business", out[0].Text)
	}
	// Generic merges keep the weaker fragment confidence.
	if out[0].Confidence != 0.6 {
		t.Errorf("expected min confidence 0.6, got %v", out[0].Confidence)
	}
}

func TestContractionMerge(t *testing.T) {
	ws := []words.Word{
		{Text: "It", Start: 0, End: 0.1, Confidence: 0.9},
		{Text: "'s", Start: 0.1, End: 0.2, Confidence: 0.8},
		{Text: "great", Start: 0.25, End: 0.5, Confidence: 1.0},
	}

	out := Process(ws, Options{MergeContractions: true})
	if len(out) != 2 {
		t.Fatalf("expected 2 words, got %d: %v", len(out), out)
	}
	if out[0].Text != "It's" {
		t.Errorf("expected %q, got %q", "It's", out[0].Text)
	}
	if out[0].Start != 0 || out[0].End != 0.2 {
		t.Errorf("expected span [0, 0.2], got [%v, %v]", out[0].Start, out[0].End)
	}
	if out[0].Confidence != 0.8 {
		t.Errorf("expected min confidence 0.8, got %v", out[0].Confidence)
	}
}

func TestRepeatedCharMerge(t *testing.T) {
	ws := []words.Word{
		{Text: "a", Start: 0, End: 0.1, Confidence: 0.9},
		{Text: "A", Start: 0.1, End: 0.2, Confidence: 0.5},
		{Text: "a", Start: 0.2, End: 0.3, Confidence: 0.7},
		{Text: "scream", Start: 0.4, End: 0.9, Confidence: 1.0},
	}

	out, stats := ProcessWithStats(ws, Options{})
	if len(out) != 2 {
		t.Fatalf("expected 2 words, got %d: %v", len(out), out)
	}
	if out[0].Text != "aAa" {
		t.Errorf("expected collapsed run %q, got %q", "aAa", out[0].Text)
	}
	if out[0].Start != 0 || out[0].End != 0.3 {
		t.Errorf("expected run span [0, 0.3], got [%v, %v]", out[0].Start, out[0].End)
	}
	if out[0].Confidence != 0.5 {
		t.Errorf("expected min confidence 0.5, got %v", out[0].Confidence)
	}
	if stats.RepeatedCharMerges != 1 {
		t.Errorf("expected 1 repeated-char merge, got %d", stats.RepeatedCharMerges)
	}
}

func TestRunOfTwoIsNotMerged(t *testing.T) {
	ws := []words.Word{
		{Text: "a", Start: 0, End: 0.1, Confidence: 1},
		{Text: "a", Start: 0.1, End: 0.2, Confidence: 1},
		{Text: "word", Start: 0.3, End: 0.6, Confidence: 1},
	}
	out, stats := ProcessWithStats(ws, Options{})
	if stats.RepeatedCharMerges != 0 {
		t.Fatalf("expected no merge for a run of two, got %d", stats.RepeatedCharMerges)
	}
	// The lone "a" tokens survive filtering via the short-word whitelist.
	if len(out) != 3 {
		t.Fatalf("expected 3 words, got %d: %v", len(out), out)
	}
}

func TestArtifactFiltering(t *testing.T) {
	ws := []words.Word{
		{Text: "[music]", Start: 0, End: 0.5, Confidence: 1},
		{Text: "real", Start: 0.5, End: 0.9, Confidence: 1},
		{Text: "!", Start: 0.9, End: 1.0, Confidence: 1},
		{Text: "xz", Start: 1.0, End: 1.1, Confidence: 1},
		{Text: "ok", Start: 1.1, End: 1.3, Confidence: 1},
		{Text: "", Start: 1.3, End: 1.4, Confidence: 1},
	}

	out, stats := ProcessWithStats(ws, Options{})
	want := []string{"real", "ok"}
	var got []string
	for _, w := range out {
		got = append(got, w.Text)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected surviving words %v, got %v", want, got)
	}
	if stats.ArtifactsDropped != 4 {
		t.Errorf("expected 4 artifacts dropped, got %d", stats.ArtifactsDropped)
	}
}

func TestArtifactFilterKeepsNumericTokens(t *testing.T) {
	ws := []words.Word{
		{Text: "save", Start: 0, End: 0.3, Confidence: 1},
		{Text: "$5", Start: 0.3, End: 0.6, Confidence: 1},
		{Text: "or", Start: 0.6, End: 0.8, Confidence: 1},
		{Text: "10", Start: 0.8, End: 1.0, Confidence: 1},
		{Text: "9%", Start: 1.0, End: 1.2, Confidence: 1},
		{Text: "qx", Start: 1.2, End: 1.3, Confidence: 1},
	}

	out, stats := ProcessWithStats(ws, Options{})
	want := []string{"save", "$5", "or", "10", "9%"}
	var got []string
	for _, w := range out {
		got = append(got, w.Text)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected surviving words %v, got %v", want, got)
	}
	if stats.ArtifactsDropped != 1 {
		t.Errorf("expected 1 artifact dropped, got %d", stats.ArtifactsDropped)
	}
}

func TestOverlapFixSplitsAtMidpoint(t *testing.T) {
	ws := []words.Word{
		{Text: "first", Start: 0, End: 1.0, Confidence: 1},
		{Text: "second", Start: 0.8, End: 1.5, Confidence: 1},
		{Text: "third", Start: 1.5, End: 2.0, Confidence: 1},
	}

	out, stats := ProcessWithStats(ws, Options{FixOverlaps: true})
	if out[0].End != 0.9 || out[1].Start != 0.9 {
		t.Errorf("expected midpoint split at 0.9, got end=%v start=%v", out[0].End, out[1].Start)
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i].End > out[i+1].Start {
			t.Errorf("pair %d still overlaps after fix: %v > %v", i, out[i].End, out[i+1].Start)
		}
	}
	if stats.OverlapsFixed != 1 {
		t.Errorf("expected 1 overlap fixed, got %d", stats.OverlapsFixed)
	}
}

func TestShortDurationExtension(t *testing.T) {
	ws := []words.Word{
		{Text: "blip", Start: 0, End: 0.02, Confidence: 1},
		{Text: "next", Start: 0.05, End: 0.5, Confidence: 1},
		{Text: "tail", Start: 0.55, End: 0.56, Confidence: 1},
	}

	out, stats := ProcessWithStats(ws, Options{MinDurationMs: 100})
	// First word wants 0.1 but the next word starts at 0.05.
	if out[0].End != 0.05 {
		t.Errorf("expected extension capped at next start 0.05, got %v", out[0].End)
	}
	// Last word has no successor, so it gets the full minimum.
	if math.Abs(out[2].End-0.65) > 1e-9 {
		t.Errorf("expected last word extended to 0.65, got %v", out[2].End)
	}
	if stats.DurationsExtended != 2 {
		t.Errorf("expected 2 extensions, got %d", stats.DurationsExtended)
	}
}

func TestProcessIdempotent(t *testing.T) {
	ws := []words.Word{
		{Text: "Str", Start: 0.17, End: 0.37, Confidence: 0.6},
		{Text: "uggling", Start: 0.32, End: 0.56, Confidence: 0.7},
		{Text: "It", Start: 0.6, End: 0.62, Confidence: 0.9},
		{Text: "'s", Start: 0.62, End: 0.7, Confidence: 0.9},
		{Text: "[noise]", Start: 0.7, End: 0.8, Confidence: 0.3},
		{Text: "fine", Start: 0.75, End: 1.2, Confidence: 1},
	}

	once := Process(ws, DefaultOptions())
	twice := Process(once, DefaultOptions())
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected idempotent cleanup, got %v then %v", once, twice)
	}
}

func TestStatsVariantMatchesProcess(t *testing.T) {
	ws := []words.Word{
		{Text: "It", Start: 0, End: 0.1, Confidence: 1},
		{Text: "'ll", Start: 0.1, End: 0.2, Confidence: 1},
		{Text: "work", Start: 0.15, End: 0.6, Confidence: 1},
	}
	plain := Process(ws, DefaultOptions())
	counted, stats := ProcessWithStats(ws, DefaultOptions())
	if !reflect.DeepEqual(plain, counted) {
		t.Errorf("expected identical output, got %v vs %v", plain, counted)
	}
	if stats.Total() == 0 {
		t.Error("expected non-zero stats for dirty input")
	}
}
