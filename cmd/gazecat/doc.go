// Package main hosts the gazecat CLI entrypoint and command graph.
//
// The Cobra-based command tree classifies recording directories, runs catalog
// scans, renders catalog contents, exports them as JSON, and follows roots
// for new recordings. It centralizes configuration resolution and structured
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
