// Package forecast implements the 13-week cash flow projection core:
// pattern extraction from historical transactions, scenario-adjusted
// projection, scenario comparison, sensitivity analysis, and runway
// detection. Everything here is a pure function over immutable inputs.
package forecast

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"flowcast/internal/model"
)

// DefaultCollectionLag is the policy default used when the history
// contains no AR Collections data. It reflects typical Net-30 collection
// behavior and is a documented assumption, not a computed fact.
var DefaultCollectionLag = model.LagDistribution{0.30, 0.40, 0.20, 0.08, 0.02}

// weekFlows holds the per-category totals for one historical week.
type weekFlows struct {
	start       time.Time
	revenue     float64
	collections float64
	outflows    map[model.Category]float64
}

// ExtractPatterns derives the weekly growth rate, seasonality index, and
// collection lag distribution from historical transactions in a single
// linear scan plus a sort over the (small) set of distinct weeks.
//
// Returns ErrInsufficientData when the history spans fewer than two
// distinct calendar weeks, and a MalformedTransactionError when a record
// fails validation.
func ExtractPatterns(historical []model.Transaction) (model.PatternSummary, error) {
	buckets := make(map[time.Time]*weekFlows)

	for i, tx := range historical {
		if err := tx.Validate(); err != nil {
			var merr *model.MalformedTransactionError
			if errors.As(err, &merr) && merr.Record == 0 {
				merr.Record = i + 1
			}
			return model.PatternSummary{}, err
		}

		ws := tx.WeekStart()
		b, ok := buckets[ws]
		if !ok {
			b = &weekFlows{start: ws, outflows: make(map[model.Category]float64)}
			buckets[ws] = b
		}
		switch tx.Category {
		case model.CategoryRevenue:
			b.revenue += tx.Amount
		case model.CategoryARCollections:
			b.collections += tx.Amount
		default:
			b.outflows[tx.Category] += tx.Amount
		}
	}

	if len(buckets) < 2 {
		return model.PatternSummary{}, fmt.Errorf("%w: need at least 2 distinct weeks, got %d", ErrInsufficientData, len(buckets))
	}

	weeks := make([]*weekFlows, 0, len(buckets))
	for _, b := range buckets {
		weeks = append(weeks, b)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].start.Before(weeks[j].start) })

	summary := model.PatternSummary{
		WeeklyGrowthRate: growthRate(weeks),
		Seasonality:      seasonality(weeks),
		CollectionLag:    collectionLag(historical, weeks),
		LastRevenue:      lastRevenue(weeks),
		LastOutflows:     lastOutflows(weeks),
		HistoryWeeks:     len(weeks),
	}
	return summary, nil
}

// growthRate is the mean week-over-week percentage change of revenue
// across weeks with non-zero revenue. Zero-revenue weeks are dropped from
// the series; with fewer than two non-zero weeks the rate defaults to 0.
func growthRate(weeks []*weekFlows) float64 {
	var series []float64
	for _, w := range weeks {
		if w.revenue > 0 {
			series = append(series, w.revenue)
		}
	}
	if len(series) < 2 {
		return 0
	}

	var sum float64
	for i := 1; i < len(series); i++ {
		sum += (series[i] - series[i-1]) / series[i-1]
	}
	return sum / float64(len(series)-1)
}

// seasonality builds a 13-position cyclical index from historical weekly
// revenue, normalized to a mean of 1.0. With fewer than 13 weeks of
// history there is no seasonality signal and the index stays flat.
func seasonality(weeks []*weekFlows) [model.HorizonWeeks]float64 {
	var idx [model.HorizonWeeks]float64
	for i := range idx {
		idx[i] = 1.0
	}
	if len(weeks) < model.HorizonWeeks {
		return idx
	}

	var sums, counts [model.HorizonWeeks]float64
	for i, w := range weeks {
		pos := i % model.HorizonWeeks
		sums[pos] += w.revenue
		counts[pos]++
	}

	var mean float64
	var avgs [model.HorizonWeeks]float64
	for i := range avgs {
		if counts[i] > 0 {
			avgs[i] = sums[i] / counts[i]
		}
		mean += avgs[i]
	}
	mean /= model.HorizonWeeks
	if mean <= 0 {
		return idx
	}

	for i := range idx {
		idx[i] = avgs[i] / mean
	}
	return idx
}

// collectionLag attributes each AR Collections transaction to the most
// recent revenue week at or before it and buckets the elapsed week count,
// weighted by collected amount. Falls back to DefaultCollectionLag when
// the history has no traceable collections.
func collectionLag(historical []model.Transaction, weeks []*weekFlows) model.LagDistribution {
	var revenueWeeks []time.Time
	for _, w := range weeks {
		if w.revenue > 0 {
			revenueWeeks = append(revenueWeeks, w.start)
		}
	}

	var dist model.LagDistribution
	var total float64
	for _, tx := range historical {
		if tx.Category != model.CategoryARCollections {
			continue
		}
		cw := tx.WeekStart()
		// Latest revenue week at or before the collection week.
		i := sort.Search(len(revenueWeeks), func(i int) bool { return revenueWeeks[i].After(cw) })
		if i == 0 {
			continue // collection precedes all revenue, untraceable
		}
		lag := int(cw.Sub(revenueWeeks[i-1]).Hours() / (24 * 7))
		if lag > model.MaxLag {
			lag = model.MaxLag
		}
		dist[lag] += tx.Amount
		total += tx.Amount
	}

	if total <= 0 {
		return DefaultCollectionLag
	}
	for i := range dist {
		dist[i] /= total
	}
	return dist
}

// lastRevenue is the revenue total of the most recent week that had any.
func lastRevenue(weeks []*weekFlows) float64 {
	for i := len(weeks) - 1; i >= 0; i-- {
		if weeks[i].revenue > 0 {
			return weeks[i].revenue
		}
	}
	return 0
}

// lastOutflows captures, per expense category, the weekly total of the
// most recent week in which that category appears.
func lastOutflows(weeks []*weekFlows) map[model.Category]float64 {
	out := make(map[model.Category]float64)
	for _, w := range weeks {
		for cat, amt := range w.outflows {
			out[cat] = amt
		}
	}
	return out
}
