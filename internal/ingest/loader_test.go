package ingest

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"flowcast/internal/model"
)

func TestParse_ValidRecords(t *testing.T) {
	input := strings.Join([]string{
		"date,category,amount,payment_terms",
		"2025-03-03,Revenue,85000.00,Net 30",
		"2025-03-04,Payroll,55000.50,Immediate",
		"2025-03-05,AR Collections,12000,Various",
	}, "\n")

	txs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}

	if txs[0].Category != model.CategoryRevenue || txs[0].Amount != 85000 {
		t.Errorf("txs[0] = %+v, want Revenue 85000", txs[0])
	}
	if txs[1].Amount != 55000.50 {
		t.Errorf("txs[1].Amount = %v, want 55000.50", txs[1].Amount)
	}
	wantDate := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !txs[0].Date.Equal(wantDate) {
		t.Errorf("txs[0].Date = %v, want %v", txs[0].Date, wantDate)
	}
}

func TestParse_HeaderOptional(t *testing.T) {
	input := "2025-03-03,Revenue,1000,Net 30\n"

	txs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
}

func TestParse_MalformedRecords(t *testing.T) {
	tests := []struct {
		name      string
		record    string
		wantField string
	}{
		{"bad date", "03/05/2025,Revenue,1000,Net 30", "date"},
		{"unknown category", "2025-03-03,Lottery,1000,Net 30", "category"},
		{"non-numeric amount", "2025-03-03,Revenue,lots,Net 30", "amount"},
		{"zero amount", "2025-03-03,Revenue,0,Net 30", "amount"},
		{"negative amount", "2025-03-03,Revenue,-500,Net 30", "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "date,category,amount,payment_terms\n" + tt.record + "\n"
			_, err := Parse(strings.NewReader(input))

			var merr *model.MalformedTransactionError
			if !errors.As(err, &merr) {
				t.Fatalf("err = %v, want MalformedTransactionError", err)
			}
			if merr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", merr.Field, tt.wantField)
			}
			if merr.Record != 2 {
				t.Errorf("Record = %d, want 2", merr.Record)
			}
		})
	}
}

func TestParse_WrongColumnCount(t *testing.T) {
	input := "2025-03-03,Revenue,1000\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Error("expected error for record with 3 columns")
	}
}

func TestSampleTransactions_Deterministic(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	a := SampleTransactions(start, 42)
	b := SampleTransactions(start, 42)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different datasets")
	}

	c := SampleTransactions(start, 7)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical datasets")
	}
}

func TestSampleTransactions_ValidAndLoadable(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	txs := SampleTransactions(start, 42)

	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			t.Fatalf("sample tx %d invalid: %v", i, err)
		}
	}

	// Round-trip through the CSV writer and loader.
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := WriteCSV(path, txs); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(txs) {
		t.Errorf("loaded %d transactions, wrote %d", len(loaded), len(txs))
	}
}

func FuzzParseRecord(f *testing.F) {
	f.Add("2025-03-03", "Revenue", "1000.50", "Net 30")
	f.Add("not-a-date", "Revenue", "1000", "")
	f.Add("2025-03-03", "???", "1000", "x")
	f.Add("2025-03-03", "Revenue", "NaN", "")
	f.Add("", "", "", "")
	f.Add("2025-03-03T10:00:00Z", "AR Collections", "0.01", "Various")

	f.Fuzz(func(t *testing.T, date, category, amount, terms string) {
		// Must never panic; either a valid transaction or an error.
		tx, err := parseRecord([]string{date, category, amount, terms}, 1)
		if err == nil {
			if verr := tx.Validate(); verr != nil {
				t.Errorf("parseRecord accepted a transaction that fails validation: %v", verr)
			}
		}
	})
}
