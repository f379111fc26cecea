package forecast

import (
	"fmt"
	"math"

	"flowcast/internal/model"
)

// Runway scans a forecast table in period order and reports the first
// period whose ending balance falls below the threshold. The scan is
// monotonic in index only: the first crossing is reported even if the
// balance later recovers. Returns ErrInvalidThreshold for a NaN or
// infinite threshold.
func Runway(table model.ForecastTable, threshold float64) (model.RunwayResult, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return model.RunwayResult{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	result := model.RunwayResult{Threshold: threshold}
	for _, row := range table.Rows {
		if row.EndingBalance < threshold {
			p := row.PeriodIndex
			result.CrossingPeriod = &p
			result.Message = fmt.Sprintf("cash falls below %.0f in week %d", threshold, p+1)
			return result, nil
		}
	}

	result.Message = fmt.Sprintf("balance stays above %.0f through the full %d-week horizon", threshold, model.HorizonWeeks)
	return result, nil
}
