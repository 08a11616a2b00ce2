// Package watch follows recording roots and catalogs new recordings as they
// appear.
//
// A filesystem watcher debounces directory activity so recordings are only
// classified once the capture app has finished writing its marker files. On
// Linux a udev netlink monitor additionally reports plugged-in block devices,
// since companion phones and capture rigs show up as USB storage before their
// recordings are copied in.
package watch
