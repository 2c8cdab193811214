// Package timing validates and repairs raw word-timestamp sequences and
// answers "which word is active" queries during caption playback. Validate
// is the only operation in the pipeline that returns an error; Repair is the
// caller's fallback when it does.
package timing
