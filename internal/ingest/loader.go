// Package ingest loads historical cash flow transactions from CSV files
// and generates sample datasets. The forecasting core never touches files;
// this package is the boundary between disk and in-memory records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"flowcast/internal/model"

	"github.com/shopspring/decimal"
)

// Columns is the required CSV column order.
var Columns = []string{"date", "category", "amount", "payment_terms"}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// LoadFile reads and validates a transaction CSV from disk.
func LoadFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	txs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return txs, nil
}

// Parse reads transaction records from r. The first record may be a
// header row matching Columns; it is skipped when present. Every data
// record is validated and any violation aborts the parse with a
// MalformedTransactionError identifying the record.
func Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.TrimLeadingSpace = true

	var txs []model.Transaction
	recordNum := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &model.MalformedTransactionError{
				Record: recordNum + 1,
				Field:  "record",
				Reason: err.Error(),
			}
		}
		recordNum++

		if recordNum == 1 && isHeader(record) {
			continue
		}

		tx, err := parseRecord(record, recordNum)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// isHeader reports whether a record looks like the expected header row.
func isHeader(record []string) bool {
	for i, col := range Columns {
		if !strings.EqualFold(strings.TrimSpace(record[i]), col) {
			return false
		}
	}
	return true
}

// parseRecord converts one CSV record into a validated Transaction.
func parseRecord(record []string, n int) (model.Transaction, error) {
	date, ok := parseDate(strings.TrimSpace(record[0]))
	if !ok {
		return model.Transaction{}, &model.MalformedTransactionError{
			Record: n, Field: "date",
			Reason: fmt.Sprintf("unparseable date %q", record[0]),
		}
	}

	category, ok := model.ParseCategory(strings.TrimSpace(record[1]))
	if !ok {
		return model.Transaction{}, &model.MalformedTransactionError{
			Record: n, Field: "category",
			Reason: fmt.Sprintf("unknown category %q", record[1]),
		}
	}

	amount, err := parseAmount(strings.TrimSpace(record[2]))
	if err != nil {
		return model.Transaction{}, &model.MalformedTransactionError{
			Record: n, Field: "amount",
			Reason: err.Error(),
		}
	}

	tx := model.Transaction{
		Date:         date,
		Category:     category,
		Amount:       amount,
		PaymentTerms: strings.TrimSpace(record[3]),
	}
	if err := tx.Validate(); err != nil {
		var merr *model.MalformedTransactionError
		if errors.As(err, &merr) {
			merr.Record = n
		}
		return model.Transaction{}, err
	}
	return tx, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses a monetary amount exactly before converting to the
// float64 the forecasting core computes in. Rejects non-numeric input and
// non-positive values.
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("amount must be positive, got %s", d)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return f, nil
}
