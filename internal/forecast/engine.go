package forecast

import (
	"math"
	"time"

	"flowcast/internal/model"
)

// residualDecay is the geometric decay applied to the "4+" collection lag
// bucket: the bucket's weight is spread over lags 4, 5, 6, ... with each
// week receiving (1-residualDecay)*residualDecay^(lag-4) of the bucket.
// The tail that would reach back before projected history collapses onto
// the last historical revenue, so the bucket's total mass is preserved.
const residualDecay = 0.5

// Generate produces the 13-week forecast table for one multiplier set.
// start anchors period 0; opening may be any real number, including an
// already-negative position. The result always has exactly 13 rows.
func Generate(start time.Time, opening float64, pattern model.PatternSummary, mult model.ScenarioMultipliers) model.ForecastTable {
	// Scenario-adjusted revenue per period, computed up front because
	// lagged collections reference earlier periods.
	var revenues [model.HorizonWeeks]float64
	for i := 0; i < model.HorizonWeeks; i++ {
		growth := math.Pow(1+pattern.WeeklyGrowthRate, float64(i+1))
		revenues[i] = pattern.LastRevenue * growth * pattern.Seasonality[i] * mult.Revenue
	}

	table := model.ForecastTable{
		OpeningBalance: opening,
		Rows:           make([]model.ForecastRow, 0, model.HorizonWeeks),
	}

	balance := opening
	for i := 0; i < model.HorizonWeeks; i++ {
		collections := collectionsForPeriod(i, revenues, pattern) * mult.Collection

		outflows := make(map[model.Category]float64, len(pattern.LastOutflows))
		var totalOut float64
		for cat, amt := range pattern.LastOutflows {
			adjusted := amt * mult.Expense
			outflows[cat] = adjusted
			totalOut += adjusted
		}

		totalIn := revenues[i] + collections
		net := totalIn - totalOut
		balance += net

		table.Rows = append(table.Rows, model.ForecastRow{
			PeriodIndex:   i,
			PeriodStart:   start.AddDate(0, 0, 7*i),
			RevenueInflow: revenues[i],
			ARCollections: collections,
			TotalInflow:   totalIn,
			Outflows:      outflows,
			TotalOutflow:  totalOut,
			NetChange:     net,
			EndingBalance: balance,
		})
	}

	return table
}

// collectionsForPeriod sums lagged collections into period i. Revenue from
// periods before the horizon start is approximated by the last historical
// weekly revenue held constant, unadjusted by scenario multipliers since
// historical cash is not scenario-dependent.
func collectionsForPeriod(i int, revenues [model.HorizonWeeks]float64, pattern model.PatternSummary) float64 {
	sourceAt := func(period int) float64 {
		if period < 0 {
			return pattern.LastRevenue
		}
		return revenues[period]
	}

	var total float64
	for lag := 0; lag < model.MaxLag; lag++ {
		total += sourceAt(i-lag) * pattern.CollectionLag[lag]
	}

	// Residual bucket: geometric spread over lags >= MaxLag. Lags that
	// land within the horizon use projected revenue; the remaining mass
	// (lags reaching before period 0) uses the historical constant.
	mass := pattern.CollectionLag[model.MaxLag]
	if mass > 0 {
		var allocated float64
		for lag := model.MaxLag; lag <= i; lag++ {
			w := mass * (1 - residualDecay) * math.Pow(residualDecay, float64(lag-model.MaxLag))
			total += revenues[i-lag] * w
			allocated += w
		}
		total += (mass - allocated) * pattern.LastRevenue
	}

	return total
}
