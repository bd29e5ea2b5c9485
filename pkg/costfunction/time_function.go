package costfunction

import (
	"github.com/lintang-b-s/greenroute/pkg"
)

type TimeFunction struct {
	maxSpeed float64 // m/s
}

func NewTimeCostFunction(maxSpeedKmh float64) *TimeFunction {
	return &TimeFunction{maxSpeed: pkg.KmhToMps(maxSpeedKmh)}
}

// GetWeight. travel time in seconds.
func (tf *TimeFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetTime()
}

// Heuristic. time to cover distMeters at the fastest road speed.
func (tf *TimeFunction) Heuristic(distMeters float64) float64 {
	return distMeters / tf.maxSpeed
}

func (tf *TimeFunction) GetCriterion() Criterion {
	return TIME
}
