package usecases

import (
	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/lintang-b-s/greenroute/pkg/util"
)

func (rs *RoutingService) snapOrigDestToNearbyVertices(origLat, origLon, dstLat, dstLon float64) (datastructure.Index,
	datastructure.Index, error) {
	if !geo.IsValidCoordinate(origLat, origLon) {
		return 0, 0, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid origin coordinate %f,%f", origLat, origLon)
	}
	if !geo.IsValidCoordinate(dstLat, dstLon) {
		return 0, 0, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid destination coordinate %f,%f", dstLat, dstLon)
	}

	graph := rs.engine.GetGraph()

	s, err := rs.spatialIndex.NearestVertex(graph, origLat, origLon, rs.searchRadius)
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrBadParamInput, "no origin candidates found near %f,%f", origLat, origLon)
	}

	t, err := rs.spatialIndex.NearestVertex(graph, dstLat, dstLon, rs.searchRadius)
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrBadParamInput, "no destination candidates found near %f,%f", dstLat, dstLon)
	}

	return s, t, nil
}
