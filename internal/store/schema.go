package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    analysis TEXT NOT NULL,
    description TEXT,
    parameters TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS annotations (
    run_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (run_id, key),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_analysis ON runs(analysis);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
