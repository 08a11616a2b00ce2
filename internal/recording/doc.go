// Package recording validates and classifies eye-tracking recording
// directories.
//
// Four generations of capture software each left a distinct marker file
// behind, and a directory is classified by probing for those markers in a
// fixed priority order: new-style (info.player.json), old-style (info.csv
// with a Data Format Version key), Invisible (info.json), then mobile
// (info.csv written by Pupil Mobile without a format version). The order
// matters; a directory carrying several markers takes the first match.
//
// All probes are read-only and hold no state, so the package is safe to use
// from concurrent callers as long as nothing mutates the directories
// underneath. Validation and classification failures are reported as
// *InvalidRecordingError with a human-readable reason and an optional
// recovery hint; any other error is a real filesystem or parse fault.
package recording
