package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    expense_count        INTEGER NOT NULL DEFAULT 0,
    summarized_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS category_totals (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    category             TEXT NOT NULL,
    total                TEXT NOT NULL,
    expense_count        INTEGER NOT NULL,
    PRIMARY KEY (file_path, position)
);

CREATE INDEX IF NOT EXISTS idx_category_totals_category ON category_totals(category);
`
