package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"capsync/internal/chunker"
	"capsync/internal/config"
	"capsync/internal/pager"
	"capsync/internal/words"
)

// runDocument is the JSON shape written by process/chunk/pages and stored in
// run history.
type runDocument struct {
	Words  []words.Word           `json:"words"`
	Chunks []chunker.CaptionChunk `json:"chunks,omitempty"`
	Pages  []pager.Page           `json:"pages,omitempty"`
}

// loadTranscript reads a word transcript and returns it along with the clip
// duration. When durationFlag is zero or negative the duration is inferred
// from the last word's end time.
func loadTranscript(arg string, durationFlag float64) ([]words.Word, float64, error) {
	path, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return nil, 0, err
	}
	ws, err := words.Load(path)
	if err != nil {
		return nil, 0, err
	}
	if len(ws) == 0 {
		return nil, 0, fmt.Errorf("transcript %s contains no words", path)
	}
	duration := durationFlag
	if duration <= 0 {
		duration = ws[len(ws)-1].End
	}
	return ws, duration, nil
}

// loadExpectedStarts reads a reference transcript and returns its word start
// times for drift comparison.
func loadExpectedStarts(arg string) ([]float64, error) {
	path, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return nil, err
	}
	ref, err := words.Load(path)
	if err != nil {
		return nil, err
	}
	if len(ref) == 0 {
		return nil, fmt.Errorf("reference transcript %s contains no words", path)
	}
	starts := make([]float64, len(ref))
	for i, w := range ref {
		starts[i] = w.Start
	}
	return starts, nil
}

// readScript loads the reference script text used for reconciliation.
func readScript(arg string) (string, error) {
	path, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("script file is empty")
	}
	return text, nil
}

// writeJSON encodes a report or run document as indented JSON on the
// command's stdout, the machine-readable twin of the table renderers.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutputFile expands the destination path and writes the data.
func writeOutputFile(path string, data []byte) error {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func formatSeconds(sec float64) string {
	return fmt.Sprintf("%.2fs", sec)
}

func formatMs(ms float64) string {
	return fmt.Sprintf("%.0fms", ms)
}

func formatCount(n int) string {
	return fmt.Sprintf("%d", n)
}
