// Package scanner walks configured roots, classifies every recording
// directory it finds, and keeps the catalog in sync with the filesystem.
//
// Discovery stops descending once a directory classifies as a recording;
// recordings never nest. Classification faults on individual directories are
// logged and counted but do not abort the scan. An exclusive file lock keeps
// concurrent scans from interleaving catalog writes.
package scanner
