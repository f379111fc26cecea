package store

import (
	"path/filepath"
	"testing"
	"time"

	"flowcast/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTransactionRoundTrip(t *testing.T) {
	c := openTestCache(t)

	txs := []model.Transaction{
		{
			Date:         time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			Category:     model.CategoryRevenue,
			Amount:       85000,
			PaymentTerms: "Net 30",
		},
		{
			Date:     time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			Category: model.CategoryPayroll,
			Amount:   55000.50,
		},
	}

	if err := c.SaveTransactions("/data/history.csv", txs, 12345, 678); err != nil {
		t.Fatal(err)
	}

	fi, ok, err := c.TrackedFile("/data/history.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("file not tracked after save")
	}
	if fi.MtimeNs != 12345 || fi.SizeBytes != 678 {
		t.Errorf("FileInfo = %+v, want {12345 678}", fi)
	}

	loaded, err := c.LoadTransactions("/data/history.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d transactions, want 2", len(loaded))
	}
	for i := range txs {
		if !loaded[i].Date.Equal(txs[i].Date) || loaded[i].Category != txs[i].Category ||
			loaded[i].Amount != txs[i].Amount || loaded[i].PaymentTerms != txs[i].PaymentTerms {
			t.Errorf("loaded[%d] = %+v, want %+v", i, loaded[i], txs[i])
		}
	}
}

func TestSaveTransactionsReplaces(t *testing.T) {
	c := openTestCache(t)
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	first := []model.Transaction{{Date: date, Category: model.CategoryRevenue, Amount: 1}}
	second := []model.Transaction{
		{Date: date, Category: model.CategoryRevenue, Amount: 2},
		{Date: date, Category: model.CategoryPayroll, Amount: 3},
	}

	if err := c.SaveTransactions("/f.csv", first, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveTransactions("/f.csv", second, 2, 2); err != nil {
		t.Fatal(err)
	}

	loaded, err := c.LoadTransactions("/f.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 || loaded[0].Amount != 2 {
		t.Errorf("stale rows survived re-save: %+v", loaded)
	}
}

func TestUntrackedFile(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.TrackedFile("/nope.csv")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown file reported as tracked")
	}
}

func TestRunHistory(t *testing.T) {
	c := openTestCache(t)

	threshold := 50000.0
	crossing := 7
	runs := []RunRecord{
		{
			Scenario:       model.ScenarioBase,
			StartDate:      time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
			OpeningBalance: 500000,
			FinalBalance:   430000,
			TotalInflows:   1200000,
			TotalOutflows:  1270000,
		},
		{
			Scenario:       model.ScenarioWorst,
			StartDate:      time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
			OpeningBalance: 500000,
			FinalBalance:   20000,
			TotalInflows:   900000,
			TotalOutflows:  1380000,
			Threshold:      &threshold,
			CrossingPeriod: &crossing,
		},
	}
	for _, r := range runs {
		if err := c.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	count, err := c.RunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("RunCount = %d, want 2", count)
	}

	listed, err := c.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d runs, want 2", len(listed))
	}
	// Newest first.
	if listed[0].Scenario != model.ScenarioWorst {
		t.Errorf("listed[0].Scenario = %s, want worst", listed[0].Scenario)
	}
	if listed[0].CrossingPeriod == nil || *listed[0].CrossingPeriod != 7 {
		t.Errorf("CrossingPeriod = %v, want 7", listed[0].CrossingPeriod)
	}
	if listed[0].Threshold == nil || *listed[0].Threshold != 50000 {
		t.Errorf("Threshold = %v, want 50000", listed[0].Threshold)
	}
	if listed[1].CrossingPeriod != nil {
		t.Errorf("base run CrossingPeriod = %v, want nil", listed[1].CrossingPeriod)
	}
}
