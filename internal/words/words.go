package words

// Word is a single recognized word with timing in seconds.
type Word struct {
	Text       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Duration returns the word's length in seconds.
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// StartMs returns the word's start time in milliseconds.
func (w Word) StartMs() float64 {
	return w.Start * 1000
}

// EndMs returns the word's end time in milliseconds.
func (w Word) EndMs() float64 {
	return w.End * 1000
}

// New constructs a word with full confidence.
func New(text string, start, end float64) Word {
	return Word{Text: text, Start: start, End: end, Confidence: 1.0}
}
