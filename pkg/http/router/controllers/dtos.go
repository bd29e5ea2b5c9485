package controllers

import (
	"github.com/lintang-b-s/greenroute/pkg/engine/routing"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/lintang-b-s/greenroute/pkg/http/usecases"
)

type dualRouteRequest struct {
	StartLat float64 `json:"start_lat" validate:"min=-90,max=90"`
	StartLon float64 `json:"start_lon" validate:"min=-180,max=180"`
	EndLat   float64 `json:"end_lat" validate:"min=-90,max=90"`
	EndLon   float64 `json:"end_lon" validate:"min=-180,max=180"`
}

type routeResponse struct {
	Path          [][2]float64       `json:"path"`
	Polyline      string             `json:"polyline"`
	Stats         routing.RouteStats `json:"stats"`
	Explored      [][2]float64       `json:"explored"`
	ExploredEdges [][2][2]float64    `json:"explored_edges"`
}

type dualRouteResponse struct {
	TimeRoute      routeResponse           `json:"time_route"`
	PollutionRoute routeResponse           `json:"pollution_route"`
	Comparison     routing.RouteComparison `json:"comparison"`
}

func toLatLon(coords []geo.Coordinate) [][2]float64 {
	out := make([][2]float64, len(coords))
	for i, c := range coords {
		out[i] = [2]float64{c.Lat, c.Lon}
	}
	return out
}

func newRouteResponse(rv usecases.RouteView) routeResponse {
	exploredEdges := make([][2][2]float64, len(rv.ExploredEdges))
	for i, e := range rv.ExploredEdges {
		exploredEdges[i] = [2][2]float64{{e[0].Lat, e[0].Lon}, {e[1].Lat, e[1].Lon}}
	}
	return routeResponse{
		Path:          toLatLon(rv.Path),
		Polyline:      rv.Polyline,
		Stats:         rv.Stats,
		Explored:      toLatLon(rv.Explored),
		ExploredEdges: exploredEdges,
	}
}

func NewDualRouteResponse(view *usecases.DualRouteView) dualRouteResponse {
	return dualRouteResponse{
		TimeRoute:      newRouteResponse(view.TimeRoute),
		PollutionRoute: newRouteResponse(view.PollutionRoute),
		Comparison:     view.Comparison,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
