// Package info reads the metadata marker files that identify eye-tracking
// recording directories.
//
// Each generation of capture software left a different marker behind:
// info.player.json (versioned JSON written by the modern player), info.csv
// (legacy key-value CSV written by the old desktop and mobile apps), and
// info.json (written by the Invisible companion app). The readers here parse
// those files without interpreting them; format classification on top of the
// markers lives in the recording package.
package info
