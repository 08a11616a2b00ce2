package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"gazecat/internal/catalog"
	"gazecat/internal/config"
	"gazecat/internal/logging"
	"gazecat/internal/recording"
	"gazecat/internal/recording/info"
)

// ErrScanInProgress is returned when another process holds the scan lock.
var ErrScanInProgress = errors.New("another scan is already running")

// Summary reports what a scan found.
type Summary struct {
	Roots      []string
	Classified int
	ByFormat   map[recording.Type]int
	Faults     int
	Removed    int
	Elapsed    time.Duration
}

// Scanner discovers and catalogs recording directories.
type Scanner struct {
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger
}

// New constructs a scanner. The logger may be nil.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) (*Scanner, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("scanner requires config and store")
	}
	return &Scanner{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "scanner"),
	}, nil
}

// Scan walks roots (falling back to the configured roots), classifies every
// recording directory, updates the catalog, and removes entries whose
// directories vanished. Only one scan may run at a time per catalog.
func (s *Scanner) Scan(ctx context.Context, roots []string) (*Summary, error) {
	if len(roots) == 0 {
		roots = s.cfg.Paths.Roots
	}
	if len(roots) == 0 {
		return nil, errors.New("no scan roots configured")
	}

	lock := flock.New(s.cfg.ScanLockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !locked {
		return nil, ErrScanInProgress
	}
	defer func() { _ = lock.Unlock() }()

	started := time.Now()
	summary := &Summary{Roots: roots, ByFormat: make(map[recording.Type]int)}

	var candidates []string
	for _, root := range roots {
		found, err := s.discover(ctx, root)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	results := s.classifyAll(ctx, candidates, summary)

	scanned := make(map[string]struct{}, len(results))
	for _, result := range results {
		scanned[result.Path] = struct{}{}
		if _, err := s.store.Upsert(ctx, result); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", result.Path, err)
		}
	}

	removed, err := s.prune(ctx, roots, scanned)
	if err != nil {
		return nil, err
	}
	summary.Removed = removed
	summary.Elapsed = time.Since(started)

	s.logger.Info("scan complete",
		logging.Int("classified", summary.Classified),
		logging.Int("faults", summary.Faults),
		logging.Int("removed", summary.Removed),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

// ClassifyOne classifies a single directory and catalogs the result.
func (s *Scanner) ClassifyOne(ctx context.Context, dir string) (*catalog.Entry, error) {
	format, err := recording.Classify(dir)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", dir, err)
	}
	entry := catalog.Entry{
		Path:       resolved,
		Format:     format,
		Label:      deriveLabel(resolved, format),
		SizeBytes:  directorySize(resolved),
		RecordedAt: deriveRecordedAt(resolved, format),
	}
	return s.store.Upsert(ctx, entry)
}

// discover walks root and returns candidate recording directories: any
// directory holding a marker file. Descent stops at the first marker since
// recordings never nest.
func (s *Scanner) discover(ctx context.Context, root string) ([]string, error) {
	stat, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}
	visited := make(map[string]struct{})
	return s.discoverDir(ctx, root, visited)
}

func (s *Scanner) discoverDir(ctx context.Context, root string, visited map[string]struct{}) ([]string, error) {
	if _, ok := visited[root]; ok {
		return nil, nil
	}
	visited[root] = struct{}{}

	var candidates []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable path", logging.String(logging.FieldPath, path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() {
			// WalkDir never follows symlinks; descend into symlinked
			// directories by hand when configured to.
			if d.Type()&fs.ModeSymlink != 0 && s.cfg.Scan.FollowSymlinks {
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil
				}
				if stat, err := os.Stat(target); err == nil && stat.IsDir() {
					extra, err := s.discoverDir(ctx, target, visited)
					if err != nil {
						return err
					}
					candidates = append(candidates, extra...)
				}
			}
			return nil
		}
		if hasMarker(path) {
			candidates = append(candidates, path)
			return fs.SkipDir
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	return candidates, nil
}

// classifyAll runs classification over candidates with a bounded worker pool
// and returns catalog entries for everything that classified cleanly.
func (s *Scanner) classifyAll(ctx context.Context, candidates []string, summary *Summary) []catalog.Entry {
	workers := s.cfg.Scan.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var mu sync.Mutex
	var results []catalog.Entry
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dir := range jobs {
				entry, err := s.classifyCandidate(dir)
				mu.Lock()
				if err != nil {
					summary.Faults++
				} else {
					summary.Classified++
					summary.ByFormat[entry.Format]++
					results = append(results, *entry)
				}
				mu.Unlock()
			}
		}()
	}

	for _, dir := range candidates {
		if ctx.Err() != nil {
			break
		}
		jobs <- dir
	}
	close(jobs)
	wg.Wait()
	return results
}

func (s *Scanner) classifyCandidate(dir string) (*catalog.Entry, error) {
	format, err := recording.Classify(dir)
	if err != nil {
		s.logger.Warn("classification failed",
			logging.String(logging.FieldPath, dir),
			logging.Error(err),
		)
		return nil, err
	}
	entry := &catalog.Entry{
		Path:       dir,
		Format:     format,
		Label:      deriveLabel(dir, format),
		SizeBytes:  directorySize(dir),
		RecordedAt: deriveRecordedAt(dir, format),
	}
	s.logger.Debug("classified recording",
		logging.String(logging.FieldPath, dir),
		logging.String(logging.FieldFormat, string(format)),
	)
	return entry, nil
}

// prune removes catalog entries under the scanned roots whose directories no
// longer exist on disk. Entries outside the scanned roots are left alone.
func (s *Scanner) prune(ctx context.Context, roots []string, scanned map[string]struct{}) (int, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if _, ok := scanned[entry.Path]; ok {
			continue
		}
		if !underAnyRoot(entry.Path, roots) {
			continue
		}
		if _, err := os.Stat(entry.Path); !os.IsNotExist(err) {
			continue
		}
		gone, err := s.store.Remove(ctx, entry.Path)
		if err != nil {
			return removed, err
		}
		if gone {
			removed++
			s.logger.Info("removed vanished recording", logging.String(logging.FieldPath, entry.Path))
		}
	}
	return removed, nil
}

func underAnyRoot(path string, roots []string) bool {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// hasMarker reports whether dir directly contains any known marker file.
// This is a cheap pre-filter; real classification happens afterwards.
func hasMarker(dir string) bool {
	for _, name := range []string{info.PlayerInfoName, info.LegacyInfoName, info.InvisibleInfoName} {
		if stat, err := os.Stat(filepath.Join(dir, name)); err == nil && stat.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// directorySize sums the regular files under dir. Unreadable entries are
// skipped; a size of zero is better than a failed scan.
func directorySize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if stat, err := d.Info(); err == nil {
				total += stat.Size()
			}
		}
		return nil
	})
	return total
}
