package recording

import (
	"fmt"
	"os"
	"path/filepath"

	"gazecat/internal/recording/info"
)

// Validate checks that path can be used as a recording directory: it must
// exist and be a directory. Paths that point at a loose video file get a
// dedicated error with a recovery hint, since dragging a single video in is
// the most common user mistake. Format-specific validity is deferred to
// Classify.
func Validate(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	stat, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return &InvalidRecordingError{
				Reason: fmt.Sprintf("target at path does not exist: %s", resolved),
			}
		}
		return fmt.Errorf("stat %s: %w", resolved, err)
	}

	if stat.IsDir() {
		return nil
	}

	if stat.Mode().IsRegular() && info.IsVideoExtension(filepath.Ext(resolved)) {
		return &InvalidRecordingError{
			Reason:   "the provided path is a video, not a recording directory",
			Recovery: "please provide a recording directory",
		}
	}

	return &InvalidRecordingError{
		Reason: fmt.Sprintf("target at path is not a directory: %s", resolved),
	}
}

// resolvePath returns the absolute form of path, following symlinks when the
// target exists. A dangling symlink or missing path keeps its absolute form
// so error messages stay meaningful.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
