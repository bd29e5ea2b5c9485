package costfunction

// DistanceFunction. fallback criterion, minimises segment length in meters.
type DistanceFunction struct {
}

func NewDistanceCostFunction() *DistanceFunction {
	return &DistanceFunction{}
}

func (df *DistanceFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength()
}

func (df *DistanceFunction) Heuristic(distMeters float64) float64 {
	return distMeters
}

func (df *DistanceFunction) GetCriterion() Criterion {
	return DISTANCE
}
