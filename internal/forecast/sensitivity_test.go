package forecast

import (
	"testing"

	"flowcast/internal/model"
)

func TestAnalyzeSensitivity_RowCountAndOrder(t *testing.T) {
	results := AnalyzeSensitivity(forecastStart, 500000, flatPattern(85000, 55000), baseMultipliers(t), 0.20)

	if len(results) != 6 {
		t.Fatalf("got %d results, want 6 (3 drivers x 2 directions)", len(results))
	}

	wantOrder := []struct {
		driver model.SensitivityDriver
		pert   float64
	}{
		{model.DriverRevenue, 0.20},
		{model.DriverRevenue, -0.20},
		{model.DriverCollection, 0.20},
		{model.DriverCollection, -0.20},
		{model.DriverExpense, 0.20},
		{model.DriverExpense, -0.20},
	}
	for i, w := range wantOrder {
		if results[i].Driver != w.driver || results[i].Perturbation != w.pert {
			t.Errorf("results[%d] = (%s, %v), want (%s, %v)",
				i, results[i].Driver, results[i].Perturbation, w.driver, w.pert)
		}
	}
}

func TestAnalyzeSensitivity_RevenueDeltaSigns(t *testing.T) {
	results := AnalyzeSensitivity(forecastStart, 500000, flatPattern(85000, 55000), baseMultipliers(t), 0.20)

	if results[0].DollarDelta <= 0 {
		t.Errorf("+20%% revenue DollarDelta = %v, want strictly positive", results[0].DollarDelta)
	}
	if results[1].DollarDelta >= 0 {
		t.Errorf("-20%% revenue DollarDelta = %v, want strictly negative", results[1].DollarDelta)
	}
}

func TestAnalyzeSensitivity_ExpenseDeltaSigns(t *testing.T) {
	results := AnalyzeSensitivity(forecastStart, 500000, flatPattern(85000, 55000), baseMultipliers(t), 0.20)

	// Higher expenses lower the ending balance and vice versa.
	if results[4].DollarDelta >= 0 {
		t.Errorf("+20%% expense DollarDelta = %v, want strictly negative", results[4].DollarDelta)
	}
	if results[5].DollarDelta <= 0 {
		t.Errorf("-20%% expense DollarDelta = %v, want strictly positive", results[5].DollarDelta)
	}
}

func TestAnalyzeSensitivity_ZeroPerturbationDefaults(t *testing.T) {
	results := AnalyzeSensitivity(forecastStart, 500000, flatPattern(85000, 55000), baseMultipliers(t), 0)

	if results[0].Perturbation != DefaultPerturbation {
		t.Errorf("Perturbation = %v, want default %v", results[0].Perturbation, DefaultPerturbation)
	}
}
