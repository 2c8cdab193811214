// Package words defines the core word-timing value type shared by every
// pipeline stage and the JSON codec used at the transcript edge. All times
// are seconds; millisecond views are provided for caption consumers.
package words
