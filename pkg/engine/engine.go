package engine

import (
	"time"

	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/engine/routing"
	"github.com/lintang-b-s/greenroute/pkg/spatialindex"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	SearchTimeout          time.Duration
	MaxSpeedKmh            float64 // 0 keeps the road profile maximum
	MinPollutionMultiplier float64 // 0 keeps the road profile minimum
}

// NewConfigFromViper. SEARCH_TIMEOUT, MAX_SPEED_KMH and MIN_POLLUTION_MULTIPLIER.
func NewConfigFromViper() Config {
	return Config{
		SearchTimeout:          viper.GetDuration("SEARCH_TIMEOUT"),
		MaxSpeedKmh:            viper.GetFloat64("MAX_SPEED_KMH"),
		MinPollutionMultiplier: viper.GetFloat64("MIN_POLLUTION_MULTIPLIER"),
	}
}

type Engine struct {
	routingEngine *routing.RoutingEngine
	rtree         *spatialindex.Rtree
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetRtree() *spatialindex.Rtree {
	return e.rtree
}

func NewEngine(graphFilePath string, logger *zap.Logger, config Config) (*Engine, error) {
	logger.Info("Starting dual-objective routing engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Sugar().Infof("Loaded: %d nodes, %d edges", graph.NumberOfVertices(), graph.NumberOfEdges())

	return NewEngineFromGraph(graph, logger, config)
}

func NewEngineFromGraph(graph *datastructure.Graph, logger *zap.Logger, config Config) (*Engine, error) {
	cfOpts := make([]costfunction.Option, 0, 2)
	if config.MaxSpeedKmh > 0 {
		cfOpts = append(cfOpts, costfunction.WithMaxSpeed(config.MaxSpeedKmh))
	}
	if config.MinPollutionMultiplier > 0 {
		cfOpts = append(cfOpts, costfunction.WithMinPollutionMultiplier(config.MinPollutionMultiplier))
	}

	routingEngine, err := routing.NewRoutingEngine(graph, logger, cfOpts,
		routing.WithSearchTimeout(config.SearchTimeout))
	if err != nil {
		return nil, err
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, logger)

	return &Engine{
		routingEngine: routingEngine,
		rtree:         rtree,
	}, nil
}
