package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/store"
)

// CachedSummary is a summary plus where it came from.
type CachedSummary struct {
	Summary      model.Summary
	ExpenseCount int
	CacheHit     bool
}

// SummarizeWithCache returns category totals for the data file, reusing the
// cached totals when the file's mtime and size are unchanged. A missing data
// file summarizes to nothing and drops any cached entry for it.
func SummarizeWithCache(data *store.JSONFile, cache *store.Cache) (*CachedSummary, error) {
	absPath, err := filepath.Abs(data.Path())
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", data.Path(), err)
	}

	fi, err := data.Stat()
	if err != nil {
		if os.IsNotExist(err) {
			if err := cache.DeleteFileTracker(absPath); err != nil {
				slog.Warn("could not drop stale cache entry", "path", absPath, "error", err)
			}
			return &CachedSummary{Summary: model.Summary{}}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", data.Path(), err)
	}

	summary, ok, err := cache.LookupSummary(absPath, fi)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok {
		slog.Debug("summary cache hit", "path", absPath)
		return &CachedSummary{Summary: summary, ExpenseCount: countOf(summary), CacheHit: true}, nil
	}

	expenses, err := data.Load()
	if err != nil {
		return nil, err
	}
	summary = Summarize(expenses)

	if err := cache.SaveSummary(absPath, fi, len(expenses), summary); err != nil {
		slog.Warn("could not update summary cache", "path", absPath, "error", err)
	}
	return &CachedSummary{Summary: summary, ExpenseCount: len(expenses)}, nil
}

func countOf(summary model.Summary) int {
	n := 0
	for _, ct := range summary {
		n += ct.Count
	}
	return n
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "spendlog")
}

// CachePath returns the full path to the summary cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "summary.db")
}
