package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gazecat/internal/config"
	"gazecat/internal/logging"
	"gazecat/internal/recording"
	"gazecat/internal/recording/info"
	"gazecat/internal/scanner"
)

// Watcher follows recording roots and classifies directories once they
// settle.
type Watcher struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	logger  *slog.Logger

	// pending maps a candidate directory to the last time it saw activity.
	pending map[string]time.Time
}

// New constructs a watcher. The logger may be nil.
func New(cfg *config.Config, sc *scanner.Scanner, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || sc == nil {
		return nil, errors.New("watcher requires config and scanner")
	}
	return &Watcher{
		cfg:     cfg,
		scanner: sc,
		logger:  logging.NewComponentLogger(logger, "watcher"),
		pending: make(map[string]time.Time),
	}, nil
}

// Run watches roots (falling back to the configured roots) until ctx is
// cancelled. New directories are classified after the configured debounce;
// directories without markers stay watched so a marker written later still
// triggers classification.
func (w *Watcher) Run(ctx context.Context, roots []string) error {
	if len(roots) == 0 {
		roots = w.cfg.Paths.Roots
	}
	if len(roots) == 0 {
		return errors.New("no watch roots configured")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, root := range roots {
		if err := w.addTree(fsw, root); err != nil {
			return err
		}
	}

	w.logger.Info("watching for recordings", logging.Int("roots", len(roots)))

	debounce := time.Duration(w.cfg.Watch.DebounceSeconds) * time.Second
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		case now := <-ticker.C:
			w.flush(ctx, now, debounce)
		}
	}
}

// addTree watches root and every non-recording directory below it.
// Recording directories themselves are not watched; they are already
// cataloged by scans and internal churn is not interesting.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping unreadable path", logging.String(logging.FieldPath, path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			if _, err := recording.Classify(path); err == nil {
				return fs.SkipDir
			}
		}
		return fsw.Add(path)
	})
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	stat, err := os.Stat(event.Name)
	if err == nil && stat.IsDir() {
		// A new directory is both a classification candidate and a place
		// where further recordings may appear.
		if addErr := fsw.Add(event.Name); addErr != nil {
			w.logger.Warn("cannot watch new directory",
				logging.String(logging.FieldPath, event.Name),
				logging.Error(addErr),
			)
		}
		w.pending[event.Name] = time.Now()
		return
	}

	// Marker files settle their parent directory's candidacy.
	if isMarkerName(filepath.Base(event.Name)) {
		w.pending[filepath.Dir(event.Name)] = time.Now()
	}
}

// flush classifies pending directories whose debounce window has passed.
func (w *Watcher) flush(ctx context.Context, now time.Time, debounce time.Duration) {
	for dir, last := range w.pending {
		if now.Sub(last) < debounce {
			continue
		}
		delete(w.pending, dir)

		entry, err := w.scanner.ClassifyOne(ctx, dir)
		if err != nil {
			var invalid *recording.InvalidRecordingError
			if errors.As(err, &invalid) {
				// Not a recording (yet); the directory stays watched.
				w.logger.Debug("directory not classifiable",
					logging.String(logging.FieldPath, dir),
				)
				continue
			}
			w.logger.Warn("classification failed",
				logging.String(logging.FieldPath, dir),
				logging.Error(err),
			)
			continue
		}
		w.logger.Info("cataloged recording",
			logging.String(logging.FieldPath, entry.Path),
			logging.String(logging.FieldFormat, string(entry.Format)),
			logging.String("label", entry.Label),
		)
	}
}

func isMarkerName(name string) bool {
	switch name {
	case info.PlayerInfoName, info.LegacyInfoName, info.InvisibleInfoName:
		return true
	default:
		return false
	}
}
