package costfunction

type PollutionFunction struct {
	minMultiplier float64
}

func NewPollutionCostFunction(minMultiplier float64) *PollutionFunction {
	return &PollutionFunction{minMultiplier: minMultiplier}
}

func (pf *PollutionFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetPollution()
}

// Heuristic. the cleanest road type without intersection penalty.
func (pf *PollutionFunction) Heuristic(distMeters float64) float64 {
	return distMeters * pf.minMultiplier
}

func (pf *PollutionFunction) GetCriterion() Criterion {
	return POLLUTION
}
