// Package store provides a SQLite-backed cache for parsed transaction
// files and a history of forecast runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flowcast/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache wraps the SQLite database.
type Cache struct {
	db *sql.DB
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

// FileInfo holds the tracked mtime and size for a source file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFile returns the stored mtime/size for a file, if tracked.
func (c *Cache) TrackedFile(path string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow("SELECT mtime_ns, size_bytes FROM files WHERE file_path = ?", path).
		Scan(&fi.MtimeNs, &fi.SizeBytes)
	if err == sql.ErrNoRows {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return fi, true, nil
}

// SaveTransactions replaces the cached transactions for a source file and
// records its tracking info.
func (c *Cache) SaveTransactions(path string, txs []model.Transaction, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO files (file_path, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?)`, path, mtimeNs, sizeBytes, now)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM transactions WHERE file_path = ?", path); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO transactions
		(file_path, tx_date, category, amount, payment_terms)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txs {
		_, err = stmt.Exec(path, t.Date.UTC().Format(time.RFC3339), string(t.Category), t.Amount, t.PaymentTerms)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadTransactions reads the cached transactions for a source file.
func (c *Cache) LoadTransactions(path string) ([]model.Transaction, error) {
	rows, err := c.db.Query(`SELECT tx_date, category, amount, payment_terms
		FROM transactions WHERE file_path = ? ORDER BY id`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var dateStr, category string
		var terms sql.NullString
		if err := rows.Scan(&dateStr, &category, &t.Amount, &terms); err != nil {
			return nil, err
		}
		t.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached date %q: %w", dateStr, err)
		}
		t.Category = model.Category(category)
		if terms.Valid {
			t.PaymentTerms = terms.String
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// DeleteFile removes a file's tracking entry and, via cascade, its
// cached transactions.
func (c *Cache) DeleteFile(path string) error {
	_, err := c.db.Exec("DELETE FROM files WHERE file_path = ?", path)
	return err
}

// RunRecord is one persisted forecast invocation.
type RunRecord struct {
	ID             int64
	CreatedAt      time.Time
	Scenario       model.Scenario
	StartDate      time.Time
	OpeningBalance float64
	FinalBalance   float64
	TotalInflows   float64
	TotalOutflows  float64
	Threshold      *float64
	CrossingPeriod *int
}

// SaveRun appends a forecast run to the history.
func (c *Cache) SaveRun(r RunRecord) error {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	var threshold, crossing any
	if r.Threshold != nil {
		threshold = *r.Threshold
	}
	if r.CrossingPeriod != nil {
		crossing = *r.CrossingPeriod
	}

	_, err := c.db.Exec(`INSERT INTO runs
		(created_at, scenario, start_date, opening_balance, final_balance,
		 total_inflows, total_outflows, threshold, crossing_period)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.UTC().Format(time.RFC3339), string(r.Scenario),
		r.StartDate.UTC().Format(time.RFC3339), r.OpeningBalance, r.FinalBalance,
		r.TotalInflows, r.TotalOutflows, threshold, crossing,
	)
	return err
}

// ListRuns returns the most recent runs, newest first.
func (c *Cache) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.Query(`SELECT id, created_at, scenario, start_date,
		opening_balance, final_balance, total_inflows, total_outflows,
		threshold, crossing_period
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdStr, startStr, scenario string
		var threshold sql.NullFloat64
		var crossing sql.NullInt64
		err := rows.Scan(&r.ID, &createdStr, &scenario, &startStr,
			&r.OpeningBalance, &r.FinalBalance, &r.TotalInflows, &r.TotalOutflows,
			&threshold, &crossing)
		if err != nil {
			return nil, err
		}
		r.Scenario = model.Scenario(scenario)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		r.StartDate, _ = time.Parse(time.RFC3339, startStr)
		if threshold.Valid {
			v := threshold.Float64
			r.Threshold = &v
		}
		if crossing.Valid {
			v := int(crossing.Int64)
			r.CrossingPeriod = &v
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunCount returns the number of persisted runs.
func (c *Cache) RunCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}
