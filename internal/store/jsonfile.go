// Package store persists expenses to the JSON data file and keeps a SQLite
// cache of category totals.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/theirongolddev/spendlog/internal/model"
)

// DefaultDataFile is the data file used when nothing else is configured.
const DefaultDataFile = "expenses.json"

// JSONFile reads and writes the whole expense list as one JSON array.
// The file is opened and closed on every call.
type JSONFile struct {
	path string
}

// NewJSONFile returns a store for the data file at path.
func NewJSONFile(path string) *JSONFile {
	if path == "" {
		path = DefaultDataFile
	}
	return &JSONFile{path: path}
}

// Path returns the data file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads every expense from disk. A missing file is an empty list;
// malformed content is an error.
func (f *JSONFile) Load() ([]model.Expense, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("data file not found, starting empty", "path", f.path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}

	slog.Debug("loaded expenses", "path", f.path, "count", len(expenses))
	return expenses, nil
}

// Save overwrites the data file with expenses, indented for readability.
func (f *JSONFile) Save(expenses []model.Expense) error {
	if expenses == nil {
		expenses = []model.Expense{}
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(expenses); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.path, err)
	}

	slog.Debug("saved expenses", "path", f.path, "count", len(expenses))
	return nil
}

// Stat returns the modification time (ns) and size of the data file.
func (f *JSONFile) Stat() (FileInfo, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}, nil
}
