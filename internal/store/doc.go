// Package store persists pipeline run history in SQLite.
//
// Each processed transcript becomes a run row carrying the stage statistics
// and the resulting word and chunk JSON, so earlier outputs can be inspected
// or re-exported without re-running the pipeline. A file lock next to the
// database enforces a single writer.
package store
