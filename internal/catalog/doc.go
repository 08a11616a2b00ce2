// Package catalog persists classified recordings in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// upsert/list/remove operations the scanner and CLI need. Each row captures a
// recording directory's path, detected format, display label, payload size,
// and scan timestamps. The database is a rebuildable index of what is on
// disk, not the source of truth; a fresh scan recreates it from scratch.
//
// Schema changes bump the version in schema.go; users clear the catalog to
// adopt the new schema.
package catalog
