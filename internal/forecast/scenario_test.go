package forecast

import (
	"errors"
	"testing"

	"flowcast/internal/model"
)

func TestMultipliersFor_FixedTable(t *testing.T) {
	tests := []struct {
		scenario model.Scenario
		want     model.ScenarioMultipliers
	}{
		{model.ScenarioBest, model.ScenarioMultipliers{Revenue: 1.15, Collection: 1.10, Expense: 0.95}},
		{model.ScenarioBase, model.ScenarioMultipliers{Revenue: 1.00, Collection: 1.00, Expense: 1.00}},
		{model.ScenarioWorst, model.ScenarioMultipliers{Revenue: 0.85, Collection: 0.90, Expense: 1.05}},
	}

	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			got, err := MultipliersFor(tt.scenario)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("MultipliersFor(%s) = %+v, want %+v", tt.scenario, got, tt.want)
			}

			// Pure lookup: a second call yields the identical value.
			again, err := MultipliersFor(tt.scenario)
			if err != nil {
				t.Fatal(err)
			}
			if again != got {
				t.Errorf("second lookup differs: %+v vs %+v", again, got)
			}
		})
	}
}

func TestMultipliersFor_UnknownScenario(t *testing.T) {
	for _, name := range []model.Scenario{"", "optimistic", "BASE", "Best"} {
		if _, err := MultipliersFor(name); !errors.Is(err, ErrUnknownScenario) {
			t.Errorf("MultipliersFor(%q) err = %v, want ErrUnknownScenario", name, err)
		}
	}
}
