package preflight

import (
	"fmt"

	"gazecat/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Catalog directory (always checked; scans and watches both write here)
	results = append(results, CheckWritableDirectory("Catalog directory", cfg.Paths.CatalogDir))
	results = append(results, CheckFreeSpace("Catalog free space", cfg.Paths.CatalogDir))

	if len(cfg.Paths.Roots) == 0 {
		results = append(results, Result{
			Name:   "Recording roots",
			Detail: "no roots configured (set paths.roots or GAZECAT_ROOTS)",
		})
		return results
	}
	for i, root := range cfg.Paths.Roots {
		results = append(results, CheckReadableDirectory(fmt.Sprintf("Recording root %d", i+1), root))
	}

	return results
}

// AllPassed reports whether every check in results passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
