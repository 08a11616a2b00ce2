// Package preflight verifies that the environment can support scanning and
// cataloging before any work starts: recording roots are readable, the
// catalog directory is writable, and the filesystem holding the catalog has
// headroom.
package preflight
