package routing

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/concurrent"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"golang.org/x/exp/rand"
	"go.uber.org/zap"
)

var (
	ErrEmptyGraph    = errors.New("graph has no vertices")
	ErrUnboundedHunt = errors.New("hunt needs a time budget or a maximum number of attempts")
)

// Scenario. one sampled pair with its trade-off between fastest and greenest route.
type Scenario struct {
	Source                 da.Index   `json:"source"`
	Target                 da.Index   `json:"target"`
	PollutionSavingPercent float64    `json:"pollution_saving_percent"`
	TimeLossMinutes        float64    `json:"time_loss_minutes"`
	Route                  *DualRoute `json:"-"`
}

type HuntResult struct {
	Attempts     int       `json:"attempts"`
	Evaluated    int       `json:"evaluated"`
	BestSaving   *Scenario `json:"best_saving"`
	BestTimeLoss *Scenario `json:"best_time_loss"`
}

// ScenarioSampler. draws random vertex pairs and keeps the most interesting trade-offs.
// it only reads the engine graph, every search owns its state.
type ScenarioSampler struct {
	engine      *RoutingEngine
	rng         *rand.Rand
	logger      *zap.Logger
	numWorkers  int
	batchSize   int
	maxAttempts int
}

type SamplerOption func(ss *ScenarioSampler)

func WithNumWorkers(n int) SamplerOption {
	return func(ss *ScenarioSampler) {
		ss.numWorkers = max(1, n)
	}
}

func WithBatchSize(n int) SamplerOption {
	return func(ss *ScenarioSampler) {
		ss.batchSize = max(1, n)
	}
}

// WithMaxAttempts caps the number of sampled pairs. 0 means no cap.
func WithMaxAttempts(n int) SamplerOption {
	return func(ss *ScenarioSampler) {
		ss.maxAttempts = max(0, n)
	}
}

func NewScenarioSampler(engine *RoutingEngine, rng *rand.Rand, opts ...SamplerOption) *ScenarioSampler {
	ss := &ScenarioSampler{
		engine:     engine,
		rng:        rng,
		logger:     engine.GetLogger(),
		numWorkers: runtime.NumCPU(),
		batchSize:  pkg.SCENARIO_BATCH_SIZE,
	}
	for _, opt := range opts {
		opt(ss)
	}
	if ss.logger == nil {
		ss.logger = zap.NewNop()
	}
	return ss
}

type scenarioJob struct {
	attempt int
	s, t    da.Index
}

type scenarioJobResult struct {
	attempt int
	route   *DualRoute
	err     error
}

func (ss *ScenarioSampler) randomVertex() da.Index {
	return da.Index(ss.rng.Intn(ss.engine.graph.NumberOfVertices()))
}

// Hunt. samples pairs until budget elapses, ctx is done or the attempt cap is reached.
// pairs are drawn sequentially and folded in attempt order, so a seeded source gives a reproducible result
// for a fixed number of attempts.
func (ss *ScenarioSampler) Hunt(ctx context.Context, budget time.Duration) (*HuntResult, error) {
	if ss.engine.graph.NumberOfVertices() == 0 {
		return nil, ErrEmptyGraph
	}
	if budget <= 0 && ss.maxAttempts == 0 {
		return nil, ErrUnboundedHunt
	}

	sugar := ss.logger.Sugar()
	sugar.Infof("hunting for the best trade-off scenario, budget %v, max attempts %d", budget, ss.maxAttempts)

	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	result := &HuntResult{}
	for {
		batchSize := ss.batchSize
		if ss.maxAttempts > 0 {
			batchSize = min(batchSize, ss.maxAttempts-result.Attempts)
		}
		if batchSize <= 0 || ctx.Err() != nil {
			break
		}

		jobs := make([]scenarioJob, batchSize)
		for i := range jobs {
			jobs[i] = scenarioJob{attempt: result.Attempts + i, s: ss.randomVertex(), t: ss.randomVertex()}
		}

		routes, interrupted := ss.evaluateBatch(ctx, jobs)
		for i, job := range jobs {
			if interrupted[i] {
				continue
			}
			result.Attempts++
			if routes[i] == nil {
				continue
			}
			result.Evaluated++
			ss.fold(result, job, routes[i])
		}
		if ctx.Err() != nil {
			break
		}
	}

	sugar.Infof("hunt complete (%d attempts, %d evaluated)", result.Attempts, result.Evaluated)
	return result, nil
}

// evaluateBatch. dual routes of every job, indexed like jobs. a nil route means no route between the pair,
// interrupted marks jobs cut short by ctx.
func (ss *ScenarioSampler) evaluateBatch(ctx context.Context, jobs []scenarioJob) ([]*DualRoute, []bool) {
	wp := concurrent.NewWorkerPool[scenarioJob, scenarioJobResult](min(ss.numWorkers, len(jobs)), len(jobs))
	wp.Start(func(job scenarioJob) scenarioJobResult {
		route, err := ss.engine.ComputeDualRoutes(ctx, job.s, job.t)
		return scenarioJobResult{attempt: job.attempt, route: route, err: err}
	})

	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Wait()

	first := jobs[0].attempt
	routes := make([]*DualRoute, len(jobs))
	interrupted := make([]bool, len(jobs))
	for res := range wp.CollectResults() {
		i := res.attempt - first
		switch {
		case res.err == nil:
			routes[i] = res.route
		case errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded):
			interrupted[i] = true
		case !errors.Is(res.err, ErrNoRoute):
			ss.logger.Warn("scenario evaluation failed", zap.Int("attempt", res.attempt), zap.Error(res.err))
		}
	}
	return routes, interrupted
}

func (ss *ScenarioSampler) fold(result *HuntResult, job scenarioJob, route *DualRoute) {
	comparison := route.Comparison()
	scenario := &Scenario{
		Source:                 job.s,
		Target:                 job.t,
		PollutionSavingPercent: comparison.PollutionReductionPercent,
		TimeLossMinutes:        comparison.TimeDiffMinutes,
		Route:                  route,
	}

	if scenario.PollutionSavingPercent > bestSaving(result) {
		result.BestSaving = scenario
		ss.logger.Sugar().Infof("new pollution record: %.1f%% saving (nodes %d->%d)",
			scenario.PollutionSavingPercent, job.s, job.t)
	}
	if scenario.TimeLossMinutes > bestTimeLoss(result) {
		result.BestTimeLoss = scenario
		ss.logger.Sugar().Infof("new time loss record: %.1f min slower (nodes %d->%d)",
			scenario.TimeLossMinutes, job.s, job.t)
	}
}

func bestSaving(result *HuntResult) float64 {
	if result.BestSaving == nil {
		return 0
	}
	return result.BestSaving.PollutionSavingPercent
}

func bestTimeLoss(result *HuntResult) float64 {
	if result.BestTimeLoss == nil {
		return 0
	}
	return result.BestTimeLoss.TimeLossMinutes
}

// SampleDistantPair. random pair whose great-circle distance lies strictly between minMeters and maxMeters.
// falls back to the first and last vertex after maxAttempts draws.
func (ss *ScenarioSampler) SampleDistantPair(minMeters, maxMeters float64, maxAttempts int) (da.Index, da.Index, error) {
	n := ss.engine.graph.NumberOfVertices()
	if n == 0 {
		return da.INVALID_VERTEX_ID, da.INVALID_VERTEX_ID, ErrEmptyGraph
	}
	for i := 0; i < maxAttempts; i++ {
		s, t := ss.randomVertex(), ss.randomVertex()
		dist := ss.engine.GetHaversineDistanceFromUtoV(s, t)
		if dist > minMeters && dist < maxMeters {
			return s, t, nil
		}
	}
	return 0, da.Index(n - 1), nil
}
