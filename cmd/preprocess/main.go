package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/logger"
	"github.com/lintang-b-s/greenroute/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile    = flag.String("f", "./data/jakarta.osm.pbf", "openstreetmap pbf file")
	outFile    = flag.String("out", "./data/jakarta_network_processed.graph", "output graph snapshot")
	largestSCC = flag.Bool("largest_scc", false, "keep only the largest strongly connected component")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	osmParser := osmparser.NewOSMParser(logger)
	graph, err := osmParser.Parse(ctx, *mapFile)
	if err != nil {
		logger.Fatal("failed to parse openstreetmap file", zap.Error(err))
	}
	logger.Sugar().Infof("Parsed: %d nodes, %d edges", graph.NumberOfVertices(), graph.NumberOfEdges())

	if *largestSCC {
		keep := graph.LargestSCC()
		graph, _, err = graph.InducedSubgraph(func(u datastructure.Index) bool { return keep[u] })
		if err != nil {
			logger.Fatal("failed to extract largest strongly connected component", zap.Error(err))
		}
		logger.Sugar().Infof("Largest strongly connected component: %d nodes, %d edges",
			graph.NumberOfVertices(), graph.NumberOfEdges())
	}

	weighted, err := osmparser.AddPollutionWeights(graph, logger)
	if err != nil {
		logger.Fatal("failed to add pollution weights", zap.Error(err))
	}

	if err := weighted.WriteGraph(*outFile); err != nil {
		logger.Fatal("failed to write graph", zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. Saved to %s", *outFile)
}
