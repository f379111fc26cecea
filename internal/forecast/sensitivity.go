package forecast

import (
	"time"

	"flowcast/internal/model"
)

// DefaultPerturbation is the standard one-factor-at-a-time perturbation.
const DefaultPerturbation = 0.20

// sensitivityDrivers fixes the row ordering of the analysis output.
var sensitivityDrivers = []model.SensitivityDriver{
	model.DriverRevenue,
	model.DriverCollection,
	model.DriverExpense,
}

// AnalyzeSensitivity perturbs one driver at a time by ±perturbation around
// the given base multipliers and reports the resulting ending-balance
// deltas. Produces exactly 6 rows: each driver up, then down. Deltas are
// measured against the unperturbed base ending balance, isolating each
// driver's marginal effect without cross-interaction.
func AnalyzeSensitivity(start time.Time, opening float64, pattern model.PatternSummary, base model.ScenarioMultipliers, perturbation float64) []model.SensitivityResult {
	if perturbation == 0 {
		perturbation = DefaultPerturbation
	}

	baseEnd := Generate(start, opening, pattern, base).FinalBalance()

	results := make([]model.SensitivityResult, 0, len(sensitivityDrivers)*2)
	for _, driver := range sensitivityDrivers {
		for _, direction := range []float64{perturbation, -perturbation} {
			mult := perturb(base, driver, direction)
			end := Generate(start, opening, pattern, mult).FinalBalance()

			r := model.SensitivityResult{
				Driver:        driver,
				Perturbation:  direction,
				EndingBalance: end,
				DollarDelta:   end - baseEnd,
			}
			if baseEnd != 0 {
				r.PercentDelta = (end/baseEnd - 1) * 100
			}
			results = append(results, r)
		}
	}
	return results
}

// perturb scales a single driver's multiplier, holding the others at base.
func perturb(base model.ScenarioMultipliers, driver model.SensitivityDriver, delta float64) model.ScenarioMultipliers {
	m := base
	switch driver {
	case model.DriverRevenue:
		m.Revenue *= 1 + delta
	case model.DriverCollection:
		m.Collection *= 1 + delta
	case model.DriverExpense:
		m.Expense *= 1 + delta
	}
	return m
}
