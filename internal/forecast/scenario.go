package forecast

import (
	"fmt"

	"flowcast/internal/model"
)

// Fixed scenario multiplier table. MultipliersFor is a pure lookup; ad-hoc
// multiplier sets (sensitivity runs, config overrides) are built directly.
var scenarioTable = map[model.Scenario]model.ScenarioMultipliers{
	model.ScenarioBest:  {Revenue: 1.15, Collection: 1.10, Expense: 0.95},
	model.ScenarioBase:  {Revenue: 1.00, Collection: 1.00, Expense: 1.00},
	model.ScenarioWorst: {Revenue: 0.85, Collection: 0.90, Expense: 1.05},
}

// MultipliersFor returns the fixed multipliers for a named scenario, or
// ErrUnknownScenario for any other name.
func MultipliersFor(name model.Scenario) (model.ScenarioMultipliers, error) {
	m, ok := scenarioTable[name]
	if !ok {
		return model.ScenarioMultipliers{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return m, nil
}
