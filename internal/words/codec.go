package words

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type segmentWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Score float64 `json:"score"`
}

type segment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []segmentWord `json:"words"`
}

type segmentPayload struct {
	Segments []segment `json:"segments"`
}

// Load reads a transcript JSON file and returns its words in order. Both the
// segmented whisper-style payload ({"segments":[{"words":[...]}]}) and a flat
// word array ([{word,start,end,confidence}]) are accepted. Words with no
// confidence value default to 1.0.
func Load(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	ws, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return ws, nil
}

// Decode parses transcript JSON bytes. See Load for accepted shapes.
func Decode(data []byte) ([]Word, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var flat []Word
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("parse word array: %w", err)
		}
		return normalizeLoaded(flat), nil
	}

	var payload segmentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse segment payload: %w", err)
	}
	var ws []Word
	for _, seg := range payload.Segments {
		for _, sw := range seg.Words {
			w := Word{
				Text:       strings.TrimSpace(sw.Word),
				Start:      sw.Start,
				End:        sw.End,
				Confidence: sw.Score,
			}
			ws = append(ws, w)
		}
	}
	return normalizeLoaded(ws), nil
}

// Save writes words as a flat JSON array with fields word/start/end/confidence
// in seconds, the shape consumed by downstream persistence.
func Save(path string, ws []Word) error {
	data, err := Encode(ws)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Encode marshals words as an indented flat JSON array.
func Encode(ws []Word) ([]byte, error) {
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal words: %w", err)
	}
	return append(data, '\n'), nil
}

func normalizeLoaded(ws []Word) []Word {
	out := make([]Word, 0, len(ws))
	for _, w := range ws {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		if w.Confidence <= 0 {
			w.Confidence = 1.0
		}
		out = append(out, w)
	}
	return out
}
