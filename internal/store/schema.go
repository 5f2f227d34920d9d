package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    kind                 TEXT NOT NULL,
    name                 TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    gross_estate         TEXT NOT NULL,
    total_tax            TEXT NOT NULL,
    net_to_heirs         TEXT NOT NULL,
    recommended          TEXT NOT NULL DEFAULT '',
    payload              BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
