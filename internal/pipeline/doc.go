// Package pipeline sequences the transcript processing stages: timing
// validation with proportional repair fallback, word post-processing,
// optional script reconciliation, optional drift analysis and correction,
// and finally chunk or page segmentation. Per-stage statistics are collected
// into the Result and logged.
package pipeline
