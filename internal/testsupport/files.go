package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"capsync/internal/words"
)

// WriteTranscript saves the words as a flat transcript JSON file under the
// test temp directory and returns its path.
func WriteTranscript(t testing.TB, ws []words.Word) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := words.Save(path, ws); err != nil {
		t.Fatalf("write transcript %s: %v", path, err)
	}
	return path
}

// WriteScript saves plain script text under the test temp directory and
// returns its path.
func WriteScript(t testing.TB, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}
