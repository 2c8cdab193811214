package drift

import (
	"math"

	"capsync/internal/words"
)

// Pattern classifies the shape of systematic timing error.
type Pattern string

const (
	PatternNone        Pattern = "none"
	PatternLinear      Pattern = "linear"
	PatternStepped     Pattern = "stepped"
	PatternProgressive Pattern = "progressive"
	PatternRandom      Pattern = "random"
)

// Severity bands the worst observed drift magnitude.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Direction reports which way the words drift relative to expectation.
type Direction string

const (
	DirectionLeading Direction = "leading"
	DirectionLagging Direction = "lagging"
	DirectionMixed   Direction = "mixed"
)

// Sample pairs a recognized word with the start time the caller expected.
type Sample struct {
	Word          words.Word
	ExpectedStart float64
}

// Analysis is the classification result. Pattern-specific fields are only
// meaningful for their pattern: SlopeSecPerWord for linear, JumpIndices and
// JumpMagnitudeMs for stepped, AccumulationRate for progressive.
type Analysis struct {
	Pattern     Pattern
	Severity    Severity
	Direction   Direction
	MeanDriftMs float64
	MaxDriftMs  float64
	Correctable bool

	SlopeSecPerWord  float64
	JumpIndices      []int
	JumpMagnitudeMs  float64
	AccumulationRate float64
}

// Options tunes classification. Zero values select the defaults.
type Options struct {
	// ToleranceMs is the max drift considered noise. Zero selects 30ms.
	ToleranceMs float64
	// StepThresholdMs is the adjacent-drift delta that marks a jump. Zero
	// selects 200ms.
	StepThresholdMs float64
}

const (
	defaultToleranceMs     = 30
	defaultStepThresholdMs = 200

	linearMinR2         = 0.85
	linearMinSlopeMs    = 5
	progressiveStrictR2 = 0.95
	progressiveRate     = 0.1
	progressiveRelaxed  = 0.05
	accelToleranceMs    = 5
)

func (o Options) withDefaults() Options {
	if o.ToleranceMs <= 0 {
		o.ToleranceMs = defaultToleranceMs
	}
	if o.StepThresholdMs <= 0 {
		o.StepThresholdMs = defaultStepThresholdMs
	}
	return o
}

// Analyze classifies systematic timing error in a word sequence. The checks
// run in a fixed order and the first match wins: stepped, strict
// progressive, linear, none, relaxed progressive, random.
func Analyze(samples []Sample, opts Options) Analysis {
	opts = opts.withDefaults()

	drifts := driftSeries(samples)
	analysis := Analysis{Pattern: PatternNone, Severity: SeverityOK, Direction: DirectionMixed}
	if len(drifts) == 0 {
		return analysis
	}

	analysis.MeanDriftMs = mean(drifts)
	analysis.MaxDriftMs = maxAbs(drifts)
	analysis.Severity = severityFor(analysis.MaxDriftMs)
	analysis.Direction = directionFor(drifts)

	if jumps, magnitude := findJumps(drifts, opts.StepThresholdMs); len(jumps) > 0 {
		analysis.Pattern = PatternStepped
		analysis.JumpIndices = jumps
		analysis.JumpMagnitudeMs = magnitude
		analysis.Correctable = true
		return analysis
	}

	slope, _, r2 := linearFit(drifts)

	if rate, ok := progressiveCheck(drifts, progressiveRate); ok && r2 < progressiveStrictR2 {
		analysis.Pattern = PatternProgressive
		analysis.AccumulationRate = rate
		analysis.Correctable = true
		return analysis
	}

	if r2 > linearMinR2 && math.Abs(slope) > linearMinSlopeMs {
		analysis.Pattern = PatternLinear
		analysis.SlopeSecPerWord = slope / 1000
		analysis.Correctable = true
		return analysis
	}

	if analysis.MaxDriftMs <= opts.ToleranceMs {
		analysis.Pattern = PatternNone
		analysis.Correctable = false
		return analysis
	}

	if rate, ok := progressiveCheck(drifts, progressiveRelaxed); ok {
		analysis.Pattern = PatternProgressive
		analysis.AccumulationRate = rate
		analysis.Correctable = true
		return analysis
	}

	// Un-fittable data is surfaced for manual review, never corrected.
	analysis.Pattern = PatternRandom
	analysis.Correctable = false
	return analysis
}

// driftSeries computes per-word drift in milliseconds.
func driftSeries(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = (s.Word.Start - s.ExpectedStart) * 1000
	}
	return out
}

// findJumps returns the indices where adjacent drift changes by at least the
// step threshold, and the largest such change.
func findJumps(drifts []float64, thresholdMs float64) ([]int, float64) {
	var jumps []int
	var magnitude float64
	for i := 1; i < len(drifts); i++ {
		delta := math.Abs(drifts[i] - drifts[i-1])
		if delta >= thresholdMs {
			jumps = append(jumps, i)
			if delta > magnitude {
				magnitude = delta
			}
		}
	}
	return jumps, magnitude
}

// linearFit runs ordinary least squares over (index, drift) and returns the
// slope (ms per word), intercept, and r-squared.
func linearFit(drifts []float64) (slope, intercept, r2 float64) {
	n := float64(len(drifts))
	if n < 2 {
		return 0, 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, d := range drifts {
		x := float64(i)
		sumX += x
		sumY += d
		sumXY += x * d
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTot, ssRes float64
	for i, d := range drifts {
		fit := slope*float64(i) + intercept
		ssTot += (d - meanY) * (d - meanY)
		ssRes += (d - fit) * (d - fit)
	}
	if ssTot == 0 {
		// A perfectly flat series is perfectly explained by the fit.
		return slope, intercept, 1
	}
	return slope, intercept, 1 - ssRes/ssTot
}

// progressiveCheck looks for accelerating drift: more than half of the
// first-difference magnitudes grow (within a small tolerance) and the mean
// second difference clears the rate threshold. The returned accumulation
// rate is |mean second difference| scaled down by 100.
func progressiveCheck(drifts []float64, minRate float64) (float64, bool) {
	if len(drifts) < 3 {
		return 0, false
	}

	diffs := make([]float64, len(drifts)-1)
	for i := 1; i < len(drifts); i++ {
		diffs[i-1] = drifts[i] - drifts[i-1]
	}

	growing := 0
	for i := 1; i < len(diffs); i++ {
		if math.Abs(diffs[i]) > math.Abs(diffs[i-1])-accelToleranceMs {
			growing++
		}
	}
	if float64(growing)/float64(len(diffs)-1) <= 0.5 {
		return 0, false
	}

	second := make([]float64, len(diffs)-1)
	for i := 1; i < len(diffs); i++ {
		second[i-1] = diffs[i] - diffs[i-1]
	}
	rate := math.Abs(mean(second)) / 100
	if rate <= minRate {
		return 0, false
	}
	return rate, true
}

func severityFor(maxDriftMs float64) Severity {
	switch {
	case maxDriftMs <= 50:
		return SeverityOK
	case maxDriftMs <= 150:
		return SeverityWarning
	case maxDriftMs <= 500:
		return SeverityError
	default:
		return SeverityCritical
	}
}

// directionFor votes on drift direction: lagging when positive drifts
// outnumber negative at least 2:1, leading for the reverse, mixed otherwise.
func directionFor(drifts []float64) Direction {
	var positive, negative int
	for _, d := range drifts {
		switch {
		case d > 0:
			positive++
		case d < 0:
			negative++
		}
	}
	switch {
	case positive >= 2*negative && positive > 0:
		return DirectionLagging
	case negative >= 2*positive && negative > 0:
		return DirectionLeading
	default:
		return DirectionMixed
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxAbs(values []float64) float64 {
	var out float64
	for _, v := range values {
		if a := math.Abs(v); a > out {
			out = a
		}
	}
	return out
}
