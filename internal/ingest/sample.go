package ingest

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"flowcast/internal/model"
)

// SampleWeeks is the span of the generated sample history.
const SampleWeeks = 26

// sampleLag drives the generated AR collection timing: portions of each
// week's revenue arrive as collections 0-3 weeks later.
var sampleLag = [4]float64{0.30, 0.40, 0.20, 0.10}

// SampleTransactions generates a deterministic sample history starting at
// the Monday of the week containing start. The same seed always produces
// the same dataset: weekly revenue around $80k with a +$500/week trend,
// AR collections lagging that revenue, bi-weekly payroll around $55k,
// weekly operating expenses, and monthly rent.
func SampleTransactions(start time.Time, seed int64) []model.Transaction {
	rng := rand.New(rand.NewSource(seed))
	anchor := model.WeekStartOf(start)

	var txs []model.Transaction
	revenues := make([]float64, SampleWeeks)

	for w := 0; w < SampleWeeks; w++ {
		weekStart := anchor.AddDate(0, 0, 7*w)

		revenue := 80000 + rng.NormFloat64()*10000 + float64(w)*500
		if revenue < 1000 {
			revenue = 1000
		}
		revenues[w] = revenue
		txs = append(txs, model.Transaction{
			Date:         weekStart,
			Category:     model.CategoryRevenue,
			Amount:       revenue,
			PaymentTerms: "Net 30",
		})

		// Collections of prior weeks' revenue per the lag split.
		var collections float64
		for lag, share := range sampleLag {
			if w-lag >= 0 {
				collections += revenues[w-lag] * share
			}
		}
		if collections > 0 {
			txs = append(txs, model.Transaction{
				Date:         weekStart,
				Category:     model.CategoryARCollections,
				Amount:       collections,
				PaymentTerms: "Various",
			})
		}

		if w%2 == 0 {
			txs = append(txs, model.Transaction{
				Date:         weekStart,
				Category:     model.CategoryPayroll,
				Amount:       55000 + rng.NormFloat64()*2000,
				PaymentTerms: "Immediate",
			})
		}

		for _, e := range []struct {
			cat      model.Category
			min, max float64
			monthly  bool
		}{
			{model.CategoryMarketing, 8000, 15000, false},
			{model.CategorySoftware, 3000, 5000, false},
			{model.CategoryRent, 12000, 12000, true},
			{model.CategoryUtilities, 2000, 3000, false},
			{model.CategoryProfServices, 5000, 10000, false},
			{model.CategorySupplies, 1000, 3000, false},
			{model.CategoryTravel, 2000, 8000, false},
		} {
			if e.monthly && w%4 != 0 {
				continue
			}
			amount := e.min
			if e.max > e.min {
				amount = e.min + rng.Float64()*(e.max-e.min)
			}
			txs = append(txs, model.Transaction{
				Date:         weekStart.AddDate(0, 0, rng.Intn(7)),
				Category:     e.cat,
				Amount:       amount,
				PaymentTerms: "Net 30",
			})
		}
	}

	return txs
}

// WriteCSV writes transactions to a CSV file in the loader's format.
func WriteCSV(path string, txs []model.Transaction) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.Format("2006-01-02"),
			string(tx.Category),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.PaymentTerms,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
