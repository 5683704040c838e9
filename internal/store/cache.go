package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores category totals per data file, keyed by the file's mtime and size.
type Cache struct {
	db *sql.DB
}

// FileInfo holds the tracked mtime and size for a data file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// LookupSummary returns the cached summary for filePath if the stored
// mtime and size still match fi.
func (c *Cache) LookupSummary(filePath string, fi FileInfo) (model.Summary, bool, error) {
	var tracked FileInfo
	err := c.db.QueryRow("SELECT mtime_ns, size_bytes FROM file_tracker WHERE file_path = ?", filePath).
		Scan(&tracked.MtimeNs, &tracked.SizeBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if tracked != fi {
		return nil, false, nil
	}

	rows, err := c.db.Query(`SELECT category, total, expense_count
		FROM category_totals WHERE file_path = ? ORDER BY position`, filePath)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	summary := model.Summary{}
	for rows.Next() {
		var ct model.CategoryTotal
		var total string
		if err := rows.Scan(&ct.Category, &total, &ct.Count); err != nil {
			return nil, false, err
		}
		ct.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, false, fmt.Errorf("decoding cached total for %q: %w", ct.Category, err)
		}
		summary = append(summary, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return summary, true, nil
}

// SaveSummary replaces the cached summary and file tracking info for filePath.
func (c *Cache) SaveSummary(filePath string, fi FileInfo, expenseCount int, summary model.Summary) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec("DELETE FROM category_totals WHERE file_path = ?", filePath)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker
		(file_path, mtime_ns, size_bytes, expense_count, summarized_at)
		VALUES (?, ?, ?, ?, ?)`,
		filePath, fi.MtimeNs, fi.SizeBytes, expenseCount, now,
	)
	if err != nil {
		return err
	}

	for i, ct := range summary {
		_, err = tx.Exec(`INSERT INTO category_totals
			(file_path, position, category, total, expense_count)
			VALUES (?, ?, ?, ?, ?)`,
			filePath, i, ct.Category, ct.Total.String(), ct.Count,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteFileTracker removes a data file and its cached totals.
func (c *Cache) DeleteFileTracker(filePath string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath)
	return err
}

// TrackedCount returns the number of data files with cached totals.
func (c *Cache) TrackedCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM file_tracker").Scan(&count)
	return count, err
}
