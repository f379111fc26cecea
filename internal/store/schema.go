package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path            TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    tx_date              TEXT NOT NULL,
    category             TEXT NOT NULL,
    amount               REAL NOT NULL,
    payment_terms        TEXT
);

CREATE TABLE IF NOT EXISTS runs (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at           TEXT NOT NULL,
    scenario             TEXT NOT NULL,
    start_date           TEXT NOT NULL,
    opening_balance      REAL NOT NULL,
    final_balance        REAL NOT NULL,
    total_inflows        REAL NOT NULL,
    total_outflows       REAL NOT NULL,
    threshold            REAL,
    crossing_period      INTEGER
);

CREATE INDEX IF NOT EXISTS idx_transactions_file ON transactions(file_path);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
