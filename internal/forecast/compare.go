package forecast

import (
	"time"

	"flowcast/internal/model"
)

// ScenarioForecast pairs a scenario name with its forecast table.
type ScenarioForecast struct {
	Scenario model.Scenario
	Table    model.ForecastTable
}

// CompareScenarios runs the engine for best, base, and worst and returns
// the results in that fixed order. All three tables share an identical
// period-start sequence because they are generated from the same anchor.
func CompareScenarios(start time.Time, opening float64, pattern model.PatternSummary) ([]ScenarioForecast, error) {
	results := make([]ScenarioForecast, 0, len(model.Scenarios))
	for _, name := range model.Scenarios {
		mult, err := MultipliersFor(name)
		if err != nil {
			return nil, err
		}
		table := Generate(start, opening, pattern, mult)
		table.Scenario = name
		results = append(results, ScenarioForecast{Scenario: name, Table: table})
	}
	return results, nil
}
