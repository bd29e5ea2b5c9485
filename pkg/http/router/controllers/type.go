package controllers

import (
	"context"

	"github.com/lintang-b-s/greenroute/pkg/http/usecases"
)

type RoutingService interface {
	DualRoute(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*usecases.DualRouteView, error)
}
