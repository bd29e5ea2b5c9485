package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/greenroute/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/get_route", api.dualRoute)
}

// dualRoute
//
//	@Summary		fastest and greenest route between two coordinates
//	@Tags			routing
//	@Produce		json
//	@Param			start_lat	query		number	true	"start latitude"
//	@Param			start_lon	query		number	true	"start longitude"
//	@Param			end_lat		query		number	true	"end latitude"
//	@Param			end_lon		query		number	true	"end longitude"
//	@Success		200			{object}	dualRouteResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		404			{object}	errorResponse
//	@Failure		500			{object}	errorResponse
//	@Router			/get_route [get]
func (api *routingAPI) dualRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request dualRouteRequest
		err     error
	)

	query := r.URL.Query()

	request.StartLat, err = strconv.ParseFloat(query.Get("start_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lat is required and must be a valid float"))
		return
	}
	request.StartLon, err = strconv.ParseFloat(query.Get("start_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lon is required and must be a valid float"))
		return
	}
	request.EndLat, err = strconv.ParseFloat(query.Get("end_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lat is required and must be a valid float"))
		return
	}
	request.EndLon, err = strconv.ParseFloat(query.Get("end_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lon is required and must be a valid float"))
		return
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	view, err := api.routingService.DualRoute(r.Context(), request.StartLat, request.StartLon,
		request.EndLat, request.EndLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewDualRouteResponse(view)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
