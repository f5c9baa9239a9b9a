package arcade

import (
	"math"
)

const (
	infinity float64 = math.MaxFloat64
	// DefaultTimeStep is the fixed step used when none is configured.
	DefaultTimeStep float64 = 1.0 / 60.0
)

func clamp(f, min, max float64) float64 {
	if f > min {
		return math.Min(f, max)
	} else {
		return math.Min(min, max)
	}
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}
