package pipeline_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"capsync/internal/drift"
	"capsync/internal/pipeline"
	"capsync/internal/reconcile"
	"capsync/internal/timing"
	"capsync/internal/words"
)

func cleanWords() []words.Word {
	return []words.Word{
		words.New("hello", 0.0, 0.4),
		words.New("there", 0.45, 0.9),
		words.New("friend", 1.0, 1.5),
	}
}

func TestRunCleanInputProducesChunks(t *testing.T) {
	res, err := pipeline.Run(context.Background(), cleanWords(), 1.5, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Mode != pipeline.ModeChunks {
		t.Fatalf("expected chunks mode, got %q", res.Mode)
	}
	if res.Repaired {
		t.Error("expected no repair on clean input")
	}
	if len(res.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(res.Words))
	}
	if len(res.Chunks) == 0 {
		t.Fatal("expected chunk output")
	}
	if res.Pages != nil {
		t.Error("expected no pages in chunk mode")
	}
}

func TestRunRepairsBrokenTiming(t *testing.T) {
	broken := []words.Word{
		words.New("a", 0.0, 0.5),
		words.New("broken", 2.0, 1.0),
	}

	res, err := pipeline.Run(context.Background(), broken, 1.4, pipeline.Options{RepairEnabled: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !res.Repaired {
		t.Fatal("expected repair to run")
	}
	if res.RepairReason != string(timing.IssueEndBeforeStart) {
		t.Errorf("expected repair reason %q, got %q", timing.IssueEndBeforeStart, res.RepairReason)
	}
	last := res.Words[len(res.Words)-1]
	if last.End != 1.4 {
		t.Errorf("expected repaired timeline to end at 1.4, got %v", last.End)
	}
}

func TestRunRejectsWhenRepairDisabled(t *testing.T) {
	broken := []words.Word{words.New("bad", 1.0, 0.5)}

	_, err := pipeline.Run(context.Background(), broken, 1.0, pipeline.Options{})
	if err == nil {
		t.Fatal("expected error for broken timing with repair disabled")
	}
	var verr *timing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected wrapped ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "repair disabled") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestRunReconcilesAgainstScript(t *testing.T) {
	asr := []words.Word{
		words.New("the", 0.0, 0.2),
		words.New("tenex", 0.25, 0.5),
		words.New("plan", 0.55, 0.8),
	}
	opts := pipeline.Options{
		Script:    "the 10x plan",
		Reconcile: reconcile.Options{PreservePunctuation: true},
	}

	res, err := pipeline.Run(context.Background(), asr, 0.8, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Reconcile == nil {
		t.Fatal("expected reconciliation stats")
	}
	if res.Words[1].Text != "10x" {
		t.Errorf("expected script word substituted, got %q", res.Words[1].Text)
	}
	if res.Words[1].Start != 0.25 || res.Words[1].End != 0.5 {
		t.Errorf("expected recognized timing preserved, got [%v, %v]", res.Words[1].Start, res.Words[1].End)
	}
}

func TestRunCorrectsLinearDrift(t *testing.T) {
	texts := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	ws := make([]words.Word, len(texts))
	expected := make([]float64, len(texts))
	for i, text := range texts {
		expected[i] = float64(i) * 0.4
		start := expected[i] + 0.01*float64(i)
		ws[i] = words.New(text, start, start+0.2)
	}
	total := ws[len(ws)-1].End

	opts := pipeline.Options{
		ExpectedStarts:   expected,
		DriftEnabled:     true,
		DriftAutoCorrect: true,
	}
	res, err := pipeline.Run(context.Background(), ws, total, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Drift == nil {
		t.Fatal("expected drift analysis")
	}
	if res.Drift.Pattern != drift.PatternLinear {
		t.Fatalf("expected linear pattern, got %q", res.Drift.Pattern)
	}
	if !res.DriftCorrected {
		t.Fatal("expected drift correction to run")
	}
	if math.Abs(res.Words[4].Start-expected[4]) > 0.02 {
		t.Errorf("expected word 4 near %v after correction, got %v", expected[4], res.Words[4].Start)
	}
}

func TestRunDriftAnalysisWithoutCorrection(t *testing.T) {
	ws := cleanWords()
	expected := []float64{0.0, 0.45, 1.0}

	opts := pipeline.Options{
		ExpectedStarts: expected,
		DriftEnabled:   true,
	}
	res, err := pipeline.Run(context.Background(), ws, 1.5, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Drift == nil {
		t.Fatal("expected drift analysis")
	}
	if res.Drift.Pattern != drift.PatternNone {
		t.Errorf("expected no drift on exact timings, got %q", res.Drift.Pattern)
	}
	if res.DriftCorrected {
		t.Error("expected no correction without auto-correct")
	}
}

func TestRunLegacyModeProducesPages(t *testing.T) {
	res, err := pipeline.Run(context.Background(), cleanWords(), 1.5, pipeline.Options{Legacy: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Mode != pipeline.ModePages {
		t.Fatalf("expected pages mode, got %q", res.Mode)
	}
	if len(res.Pages) == 0 {
		t.Fatal("expected page output")
	}
	if res.Chunks != nil {
		t.Error("expected no chunks in legacy mode")
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Run(ctx, cleanWords(), 1.5, pipeline.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
