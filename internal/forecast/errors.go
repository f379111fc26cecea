package forecast

import "errors"

var (
	// ErrInsufficientData means the historical dataset spans fewer than
	// two distinct weeks, so no growth rate can be extracted.
	ErrInsufficientData = errors.New("insufficient historical data")

	// ErrUnknownScenario means a scenario name outside best/base/worst.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrInvalidThreshold means a runway threshold that is NaN or infinite.
	ErrInvalidThreshold = errors.New("invalid runway threshold")
)
