package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/greenroute/pkg/engine"
	"github.com/lintang-b-s/greenroute/pkg/http"
	"github.com/lintang-b-s/greenroute/pkg/http/usecases"
	"github.com/lintang-b-s/greenroute/pkg/logger"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable the global request rate limiter")
	graphFile    = flag.String("graph", "", "weighted graph snapshot, overrides GRAPH_FILE")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	util.SetConfigDefaults()
	if err := util.ReadConfig(); err != nil {
		logger.Info("config file not loaded, using defaults", zap.Error(err))
	}

	graphPath := viper.GetString("GRAPH_FILE")
	if *graphFile != "" {
		graphPath = *graphFile
	}

	routingEngine, err := engine.NewEngine(graphPath, logger, engine.NewConfigFromViper())
	if err != nil {
		logger.Fatal("failed to start routing engine", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(),
		routingEngine.GetRtree(), viper.GetFloat64("SNAP_RADIUS_KM"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := http.NewServer(logger)
	err = api.Use(ctx, *useRateLimit, routingService)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}

	logger.Info("greenroute routing engine server stopped")
}
