// Package reconcile re-maps recognized words onto the authoritative script
// text with fuzzy and digit-spelled matching, preserving recognizer timing.
package reconcile
