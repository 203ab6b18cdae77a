package indicators

import (
	"fmt"
	"math"

	"RegimePulse/internal/domain/models"
)

// ValidationError is a hard failure raised before any computation when a
// series violates one of the data-model invariants. The invariant name is
// part of the error so callers can surface it verbatim.
type ValidationError struct {
	Invariant string
	Detail    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid series: %s: %s", e.Invariant, e.Detail)
}

// ValidateSeries rejects malformed input. Insufficient history is NOT an
// error here; short series simply produce undefined indicator values.
func ValidateSeries(series models.PriceSeries) error {
	if len(series) == 0 {
		return &ValidationError{Invariant: "non-empty series", Detail: "series contains no points"}
	}
	for i, p := range series {
		if i > 0 && !series[i-1].Timestamp.Before(p.Timestamp) {
			return &ValidationError{
				Invariant: "strictly increasing timestamps",
				Detail:    fmt.Sprintf("point %d (%s) not after point %d (%s)", i, p.Timestamp, i-1, series[i-1].Timestamp),
			}
		}
		if p.Volume < 0 {
			return &ValidationError{
				Invariant: "non-negative volume",
				Detail:    fmt.Sprintf("point %d has volume %v", i, p.Volume),
			}
		}
		for name, v := range map[string]float64{"open": p.Open, "high": p.High, "low": p.Low, "close": p.Close} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return &ValidationError{
					Invariant: "non-negative finite prices",
					Detail:    fmt.Sprintf("point %d has %s=%v", i, name, v),
				}
			}
		}
		if p.High < p.Low {
			return &ValidationError{
				Invariant: "high >= low",
				Detail:    fmt.Sprintf("point %d has high %v below low %v", i, p.High, p.Low),
			}
		}
	}
	return nil
}
