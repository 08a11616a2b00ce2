// Package testsupport fabricates recording directories for tests. Each
// builder writes the minimal marker file that makes a directory classify as
// one specific format.
package testsupport
