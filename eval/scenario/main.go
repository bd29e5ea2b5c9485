package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/engine"
	"github.com/lintang-b-s/greenroute/pkg/engine/routing"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/lintang-b-s/greenroute/pkg/logger"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"golang.org/x/exp/rand"
	"go.uber.org/zap"
)

var (
	graphFile   = flag.String("graph", "./data/jakarta_network_processed.graph", "weighted graph snapshot")
	duration    = flag.Duration("duration", 120*time.Second, "scenario hunt time budget")
	seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random source seed")
	maxAttempts = flag.Int("max_attempts", 0, "maximum number of sampled pairs, 0 means no cap")
	numWorkers  = flag.Int("workers", 0, "evaluation goroutines, 0 means one per cpu")
	outFile     = flag.String("out", "./data/routes_data.json", "routes json for visualization")
)

type routeExport struct {
	Path     [][2]float64       `json:"path"`
	Stats    routing.RouteStats `json:"stats"`
	Explored [][2]float64       `json:"explored"`
}

type routesExport struct {
	TimeRoute      routeExport `json:"time_route"`
	PollutionRoute routeExport `json:"pollution_route"`
}

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.SetConfigDefaults()
	if err := util.ReadConfig(); err != nil {
		logger.Info("config file not loaded, using defaults", zap.Error(err))
	}

	eng, err := engine.NewEngine(*graphFile, logger, engine.NewConfigFromViper())
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}
	re := eng.GetRoutingEngine()

	opts := []routing.SamplerOption{routing.WithMaxAttempts(*maxAttempts)}
	if *numWorkers > 0 {
		opts = append(opts, routing.WithNumWorkers(*numWorkers))
	}
	sampler := routing.NewScenarioSampler(re, rand.New(rand.NewSource(*seed)), opts...)

	result, err := sampler.Hunt(ctx, *duration)
	if err != nil {
		logger.Fatal("scenario hunt failed", zap.Error(err))
	}

	sugar := logger.Sugar()
	sugar.Infof("HUNT COMPLETE (%d attempts, %d evaluated)", result.Attempts, result.Evaluated)

	var dual *routing.DualRoute
	if result.BestSaving != nil {
		best := result.BestSaving
		sugar.Infof("Best pollution saving: %.1f%% (nodes %d->%d)", best.PollutionSavingPercent, best.Source, best.Target)
		dual = best.Route
	} else {
		sugar.Info("no scenario improves pollution, falling back to a distant pair")
		s, t, err := sampler.SampleDistantPair(pkg.SAMPLE_ROUTE_MIN_METER, pkg.SAMPLE_ROUTE_MAX_METER,
			pkg.SAMPLE_ROUTE_MAX_ATTEMPT)
		if err != nil {
			logger.Fatal("failed to sample a route", zap.Error(err))
		}
		dual, err = re.ComputeDualRoutes(context.Background(), s, t)
		if err != nil {
			logger.Fatal("no route between sampled pair", zap.Uint32("source", uint32(s)),
				zap.Uint32("target", uint32(t)), zap.Error(err))
		}
	}
	if result.BestTimeLoss != nil {
		sugar.Infof("Worst time loss: %.1f min (nodes %d->%d)", result.BestTimeLoss.TimeLossMinutes,
			result.BestTimeLoss.Source, result.BestTimeLoss.Target)
	}

	printRoute(logger, dual.TimeStats, dual.TimeRoute)
	printRoute(logger, dual.PollutionStats, dual.PollutionRoute)

	comparison := dual.Comparison()
	sugar.Infof("Time difference: %+.2f minutes (%.1f%% longer)", comparison.TimeDiffMinutes, comparison.TimeDiffPercent)
	sugar.Infof("Pollution reduction: %.1f%% less pollution", comparison.PollutionReductionPercent)

	if err := exportRoutes(re, dual, *outFile); err != nil {
		logger.Fatal("failed to export routes", zap.Error(err))
	}
	sugar.Infof("Routes exported to: %s", *outFile)
}

func printRoute(logger *zap.Logger, stats routing.RouteStats, sr *routing.SearchResult) {
	logger.Sugar().Infof("%s: %d nodes, %.2f km, %.2f minutes, pollution %.2f, explored %d nodes",
		stats.Name, len(sr.Path), stats.DistanceKm, stats.TimeMinutes, stats.PollutionScore, len(sr.ExploredNodes))
}

func exportRoutes(re *routing.RoutingEngine, dual *routing.DualRoute, filename string) error {
	data := routesExport{
		TimeRoute:      newRouteExport(re, dual.TimeRoute, dual.TimeStats),
		PollutionRoute: newRouteExport(re, dual.PollutionRoute, dual.PollutionStats),
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func newRouteExport(re *routing.RoutingEngine, sr *routing.SearchResult, stats routing.RouteStats) routeExport {
	return routeExport{
		Path:     toLatLon(re.PathToCoords(sr.Path)),
		Stats:    stats,
		Explored: toLatLon(re.PathToCoords(sr.ExploredNodes)),
	}
}

func toLatLon(coords []geo.Coordinate) [][2]float64 {
	out := make([][2]float64, len(coords))
	for i, c := range coords {
		out[i] = [2]float64{c.Lat, c.Lon}
	}
	return out
}
