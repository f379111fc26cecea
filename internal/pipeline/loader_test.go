package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flowcast/internal/model"
	"flowcast/internal/store"
)

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "history.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleCSV = `date,category,amount,payment_terms
2025-03-03,Revenue,85000,Net 30
2025-03-05,Payroll,55000,Immediate
2025-03-10,Revenue,86000,Net 30
2025-03-11,AR Collections,40000,Various
`

func TestLoad(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)

	result, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 4 {
		t.Errorf("got %d transactions, want 4", len(result.Transactions))
	}
	if result.FromCache {
		t.Error("direct load should not report FromCache")
	}
}

func TestLoadWithCache_HitAndInvalidation(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, sampleCSV)

	cache, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// First load parses and populates the cache.
	first, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Error("first load unexpectedly served from cache")
	}

	// Untouched file: cache hit.
	second, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Error("second load should be a cache hit")
	}
	if len(second.Transactions) != len(first.Transactions) {
		t.Errorf("cache returned %d transactions, want %d", len(second.Transactions), len(first.Transactions))
	}

	// Modified file: reparse.
	if err := os.WriteFile(path, []byte(sampleCSV+"2025-03-12,Travel,1500,Net 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if third.FromCache {
		t.Error("modified file should be reparsed")
	}
	if len(third.Transactions) != 5 {
		t.Errorf("got %d transactions after modification, want 5", len(third.Transactions))
	}
}

func TestFilterByCategory(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	result, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	revenue := FilterByCategory(result.Transactions, model.CategoryRevenue)
	if len(revenue) != 2 {
		t.Errorf("got %d revenue transactions, want 2", len(revenue))
	}
}

func TestFilterByDateRange(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	result, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	since := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	later := FilterByDateRange(result.Transactions, since, time.Time{})
	if len(later) != 2 {
		t.Errorf("got %d transactions from %s, want 2", len(later), since.Format("2006-01-02"))
	}

	all := FilterByDateRange(result.Transactions, time.Time{}, time.Time{})
	if len(all) != 4 {
		t.Errorf("open range returned %d transactions, want all 4", len(all))
	}
}

func TestAggregateWeeks(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	result, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	weeks := AggregateWeeks(result.Transactions)
	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}

	// Oldest first.
	if !weeks[0].WeekStart.Before(weeks[1].WeekStart) {
		t.Error("weeks not sorted ascending")
	}
	if weeks[0].Revenue != 85000 || weeks[0].Outflows != 55000 {
		t.Errorf("week 0 = %+v, want revenue 85000 outflows 55000", weeks[0])
	}
	if weeks[1].Revenue != 86000 || weeks[1].Collections != 40000 {
		t.Errorf("week 1 = %+v, want revenue 86000 collections 40000", weeks[1])
	}
}
