package catalog

import (
	"time"

	"gazecat/internal/recording"
)

// Entry is one cataloged recording directory.
type Entry struct {
	ID          string
	Path        string
	Format      recording.Type
	Label       string
	SizeBytes   int64
	RecordedAt  *time.Time
	FirstSeenAt time.Time
	ScannedAt   time.Time
}

// Stats summarizes catalog contents.
type Stats struct {
	Total      int
	TotalBytes int64
	ByFormat   map[recording.Type]int
}
