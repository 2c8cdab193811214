package timing

import (
	"fmt"

	"capsync/internal/words"
)

// Issue identifies the first structural problem found in a word sequence.
type Issue string

const (
	IssueEndBeforeStart       Issue = "end_before_start"
	IssueGapTooLarge          Issue = "gap_too_large"
	IssueInsufficientCoverage Issue = "insufficient_coverage"
)

// ValidationError reports the first word that failed a timing check.
type ValidationError struct {
	Issue     Issue
	WordIndex int
	Word      string
	Detail    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("timing validation: %s at word %d %q: %s", e.Issue, e.WordIndex, e.Word, e.Detail)
}

// ErrorKind classifies the error for status mapping.
func (e *ValidationError) ErrorKind() string { return "validation" }

// ValidateOptions tunes the structural checks.
type ValidateOptions struct {
	// MinCoverageRatio is the fraction of the total duration the last word's
	// end must reach. Zero selects the default of 0.85.
	MinCoverageRatio float64
	// MaxGapSec is the largest tolerated silence between consecutive words.
	// Zero selects the default of 0.5s.
	MaxGapSec float64
}

const (
	defaultMinCoverageRatio = 0.85
	defaultMaxGapSec        = 0.5
)

func (o ValidateOptions) withDefaults() ValidateOptions {
	if o.MinCoverageRatio <= 0 {
		o.MinCoverageRatio = defaultMinCoverageRatio
	}
	if o.MaxGapSec <= 0 {
		o.MaxGapSec = defaultMaxGapSec
	}
	return o
}

// Validate sanity-checks a word sequence against the known total duration.
// It fails fast: the returned *ValidationError describes the first violation
// only. A nil error means the sequence is structurally sound.
func Validate(ws []words.Word, totalDurationSec float64, opts ValidateOptions) error {
	opts = opts.withDefaults()

	if len(ws) == 0 {
		return &ValidationError{
			Issue:  IssueInsufficientCoverage,
			Detail: "no words to cover the audio",
		}
	}

	for i, w := range ws {
		if w.End <= w.Start {
			return &ValidationError{
				Issue:     IssueEndBeforeStart,
				WordIndex: i,
				Word:      w.Text,
				Detail:    fmt.Sprintf("end %.3fs does not follow start %.3fs", w.End, w.Start),
			}
		}
		if i > 0 {
			gap := w.Start - ws[i-1].End
			if gap > opts.MaxGapSec {
				return &ValidationError{
					Issue:     IssueGapTooLarge,
					WordIndex: i,
					Word:      w.Text,
					Detail:    fmt.Sprintf("gap of %.3fs from previous word exceeds %.3fs", gap, opts.MaxGapSec),
				}
			}
		}
	}

	if totalDurationSec > 0 {
		last := ws[len(ws)-1]
		covered := last.End / totalDurationSec
		if covered < opts.MinCoverageRatio {
			return &ValidationError{
				Issue:     IssueInsufficientCoverage,
				WordIndex: len(ws) - 1,
				Word:      last.Text,
				Detail:    fmt.Sprintf("words cover %.1f%% of %.3fs, need %.1f%%", covered*100, totalDurationSec, opts.MinCoverageRatio*100),
			}
		}
	}

	return nil
}
