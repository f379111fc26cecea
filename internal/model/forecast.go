package model

import "time"

// HorizonWeeks is the fixed forecast horizon.
const HorizonWeeks = 13

// MaxLag is the last explicit collection lag bucket; the final bucket
// covers lag MaxLag and beyond.
const MaxLag = 4

// LagDistribution maps collection lag in weeks (0..MaxLag, where MaxLag
// means "MaxLag or more") to a probability weight. Weights are
// non-negative and sum to 1 within floating tolerance.
type LagDistribution [MaxLag + 1]float64

// Sum returns the total weight, which should be 1.0 for a valid distribution.
func (d LagDistribution) Sum() float64 {
	var s float64
	for _, w := range d {
		s += w
	}
	return s
}

// PatternSummary holds the behavioral patterns extracted from historical
// transactions. Computed once per dataset and reused across scenario runs.
type PatternSummary struct {
	WeeklyGrowthRate float64              // mean week-over-week revenue change, may be negative
	Seasonality      [HorizonWeeks]float64 // per-week multipliers, mean 1.0; all 1.0 when no signal
	CollectionLag    LagDistribution
	LastRevenue      float64              // most recent historical weekly revenue total
	LastOutflows     map[Category]float64 // most recent weekly total per expense category
	HistoryWeeks     int                  // distinct historical weeks observed
}

// Scenario names a fixed multiplier set.
type Scenario string

const (
	ScenarioBest  Scenario = "best"
	ScenarioBase  Scenario = "base"
	ScenarioWorst Scenario = "worst"
)

// Scenarios lists the named scenarios in canonical comparison order.
var Scenarios = []Scenario{ScenarioBest, ScenarioBase, ScenarioWorst}

// ScenarioMultipliers adjusts the three forecast drivers. All values are
// positive; 1.0 means no adjustment.
type ScenarioMultipliers struct {
	Revenue    float64
	Collection float64
	Expense    float64
}

// ForecastRow is one projected week.
type ForecastRow struct {
	PeriodIndex   int // 0..12
	PeriodStart   time.Time
	RevenueInflow float64
	ARCollections float64
	TotalInflow   float64
	Outflows      map[Category]float64
	TotalOutflow  float64
	NetChange     float64
	EndingBalance float64
}

// ForecastTable is the full 13-week projection for one scenario, ordered
// by period index. Immutable once produced.
type ForecastTable struct {
	Scenario       Scenario
	OpeningBalance float64
	Rows           []ForecastRow
}

// FinalBalance returns the ending balance of the last period.
func (t ForecastTable) FinalBalance() float64 {
	if len(t.Rows) == 0 {
		return t.OpeningBalance
	}
	return t.Rows[len(t.Rows)-1].EndingBalance
}

// TotalInflows sums inflows across all periods.
func (t ForecastTable) TotalInflows() float64 {
	var s float64
	for _, r := range t.Rows {
		s += r.TotalInflow
	}
	return s
}

// TotalOutflows sums outflows across all periods.
func (t ForecastTable) TotalOutflows() float64 {
	var s float64
	for _, r := range t.Rows {
		s += r.TotalOutflow
	}
	return s
}

// NetChange is the total balance movement over the horizon.
func (t ForecastTable) NetChange() float64 {
	return t.FinalBalance() - t.OpeningBalance
}

// RunwayResult reports the first period at which the projected balance
// falls below a threshold. CrossingPeriod is nil when the balance stays
// above the threshold through the full horizon.
type RunwayResult struct {
	Threshold      float64
	CrossingPeriod *int
	Message        string
}

// SensitivityDriver names a perturbed forecast driver.
type SensitivityDriver string

const (
	DriverRevenue    SensitivityDriver = "revenue"
	DriverCollection SensitivityDriver = "collection"
	DriverExpense    SensitivityDriver = "expense"
)

// SensitivityResult is one row of a one-factor-at-a-time sensitivity
// analysis: a single driver perturbed in a single direction.
type SensitivityResult struct {
	Driver        SensitivityDriver
	Perturbation  float64 // signed, e.g. +0.20 or -0.20
	EndingBalance float64
	DollarDelta   float64 // vs unperturbed base ending balance
	PercentDelta  float64 // vs unperturbed base ending balance, in percent
}
