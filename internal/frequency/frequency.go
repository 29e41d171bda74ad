// internal/frequency/frequency.go
package frequency

import (
	"math"

	"autoremind-core/internal/common/errors"
)

const (
	// MinDays is the lowest allowed reminder cadence.
	MinDays = 0
	// MaxDays is the highest allowed reminder cadence.
	MaxDays = 7
)

// Clamp normalizes a caller-supplied cadence value into [MinDays, MaxDays].
// The value is rounded to the nearest integer (half away from zero) before
// clamping. Non-finite input is rejected.
func Clamp(raw float64) (int, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, errors.NewValidationError("days_before must be a finite number")
	}

	rounded := int(math.Round(raw))
	if rounded < MinDays {
		return MinDays, nil
	}
	if rounded > MaxDays {
		return MaxDays, nil
	}
	return rounded, nil
}
