package costfunction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/greenroute/pkg"
)

var (
	ErrUnknownCriterion = errors.New("unknown criterion")
)

// Criterion selects the scalar edge weight a search minimises.
type Criterion uint8

const (
	TIME Criterion = iota
	POLLUTION
	DISTANCE
	numCriteria
)

var criterionNames = [numCriteria]string{
	TIME:      "time",
	POLLUTION: "pollution",
	DISTANCE:  "distance",
}

func (c Criterion) String() string {
	if c >= numCriteria {
		return fmt.Sprintf("criterion(%d)", uint8(c))
	}
	return criterionNames[c]
}

func (c Criterion) IsValid() bool {
	return c < numCriteria
}

func ParseCriterion(s string) (Criterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range criterionNames {
		if name == s {
			return Criterion(c), nil
		}
	}
	return numCriteria, fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
}

// Criteria. every criterion in enumeration order.
func Criteria() []Criterion {
	return []Criterion{TIME, POLLUTION, DISTANCE}
}

type EdgeAttributes interface {
	GetLength() float64
	GetTime() float64
	GetPollution() float64
	GetRoadType() pkg.OsmHighwayType
}

// CostFunction. edge weight and admissible lower bound of one criterion.
// Heuristic receives the great-circle distance to the target in meters.
type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
	Heuristic(distMeters float64) float64
	GetCriterion() Criterion
}

type options struct {
	maxSpeedKmh            float64
	minPollutionMultiplier float64
}

type Option func(o *options)

// WithMaxSpeed overrides V_max of the time heuristic. must not be lower than the fastest edge speed of the graph.
func WithMaxSpeed(kmh float64) Option {
	return func(o *options) {
		o.maxSpeedKmh = kmh
	}
}

// WithMinPollutionMultiplier overrides M_min of the pollution heuristic.
func WithMinPollutionMultiplier(m float64) Option {
	return func(o *options) {
		o.minPollutionMultiplier = m
	}
}

var costFunctions = [numCriteria]func(o options) CostFunction{
	TIME: func(o options) CostFunction {
		return NewTimeCostFunction(o.maxSpeedKmh)
	},
	POLLUTION: func(o options) CostFunction {
		return NewPollutionCostFunction(o.minPollutionMultiplier)
	},
	DISTANCE: func(o options) CostFunction {
		return NewDistanceCostFunction()
	},
}

func New(criterion Criterion, opts ...Option) (CostFunction, error) {
	if !criterion.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCriterion, criterion)
	}
	o := options{
		maxSpeedKmh:            pkg.MaxRoadSpeedKmh(),
		minPollutionMultiplier: pkg.MinPollutionMultiplier(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxSpeedKmh <= 0 {
		return nil, fmt.Errorf("max speed must be positive, got %f", o.maxSpeedKmh)
	}
	if o.minPollutionMultiplier < 0 {
		return nil, fmt.Errorf("min pollution multiplier must be non-negative, got %f", o.minPollutionMultiplier)
	}
	return costFunctions[criterion](o), nil
}

// NewAll. one cost function per criterion, indexed by Criterion.
func NewAll(opts ...Option) ([]CostFunction, error) {
	cfs := make([]CostFunction, numCriteria)
	for _, c := range Criteria() {
		cf, err := New(c, opts...)
		if err != nil {
			return nil, err
		}
		cfs[c] = cf
	}
	return cfs, nil
}
