// Package main hosts the capsync CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into pipeline
// runs over word-timestamp transcripts: validation, cleanup, script
// reconciliation, drift analysis, and chunk or page segmentation, plus run
// history maintenance and configuration scaffolding.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
