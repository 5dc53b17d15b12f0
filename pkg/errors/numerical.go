package errors

import (
	"math"
)

// CheckFinite returns a NumericalInstabilityError if values contain NaN or
// Inf. Used by entry points that require finite caller-supplied buffers.
func CheckFinite(operation string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, collectNonFinite(values))
		}
	}
	return nil
}

// CheckFiniteScalar checks a single scalar value.
func CheckFiniteScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value})
	}
	return nil
}

func collectNonFinite(values []float64) []float64 {
	bad := make([]float64, 0, 5)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, v)
			if len(bad) >= 5 {
				break
			}
		}
	}
	return bad
}
