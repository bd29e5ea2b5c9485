package osmparser

import (
	"context"
	"io"
	"os"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
	nodeIDMap       map[int64]datastructure.Index
	gb              *datastructure.GraphBuilder
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
		nodeIDMap:       make(map[int64]datastructure.Index),
		gb:              datastructure.NewGraphBuilder(),
		logger:          logger,
	}
}

// Parse. road multigraph of an osm pbf file. vertices are way endpoints and junction nodes,
// intermediate way nodes fold into the edge length. edges carry length and road type only.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := p.scanWayNodes(ctx, f); err != nil {
		return nil, err
	}

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}

	if err := p.scanEdges(ctx, f); err != nil {
		return nil, err
	}

	graph := p.gb.Build()
	p.logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return graph, nil
}

// scanWayNodes. first pass, classifies every node of an accepted way.
func (p *OsmParser) scanWayNodes(ctx context.Context, r io.Reader) error {
	scanner := osmpbf.New(ctx, r, 0)
	// must not be parallel
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		p.markWayNodes(way)
	}
	return scanner.Err()
}

// scanEdges. second pass. pbf files store nodes before ways, so coordinates are known when a way is processed.
func (p *OsmParser) scanEdges(ctx context.Context, r io.Reader) error {
	scanner := osmpbf.New(ctx, r, 0)
	defer scanner.Close()
	scanner.SkipRelations = true

	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.addNode(o)
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%100000 == 0 {
				p.logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			if err := p.processWay(o); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// markWayNodes. way endpoints are END_NODE, inner nodes BETWEEN_NODE, nodes shared by ways JUNCTION_NODE.
func (p *OsmParser) markWayNodes(way *osm.Way) {
	for i, node := range way.Nodes {
		if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[int64(node.ID)] = END_NODE
			} else {
				p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
		}
	}
}

func (p *OsmParser) addNode(n *osm.Node) {
	if _, ok := p.wayNodeMap[int64(n.ID)]; ok {
		p.acceptedNodeMap[int64(n.ID)] = NewNodeCoord(n.Lat, n.Lon)
	}
}

// processWay. splits way at junctions, one edge per piece in each permitted direction.
func (p *OsmParser) processWay(way *osm.Way) error {
	roadType := pkg.GetHighwayType(way.Tags.Find("highway"))
	oneWay, forward := getOneWay(way)

	waySegment := make([]node, 0, len(way.Nodes))
	for i, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			// node outside the extract
			continue
		}
		nodeData := node{id: int64(wayNode.ID), coord: coord}
		waySegment = append(waySegment, nodeData)

		if len(waySegment) > 1 && (p.isJunctionNode(nodeData.id) || i == len(way.Nodes)-1) {
			if err := p.processSegment(waySegment, roadType, oneWay, forward); err != nil {
				return err
			}
			waySegment = []node{nodeData}
		}
	}

	// trailing nodes of the way are outside the extract
	if len(waySegment) > 1 {
		return p.processSegment(waySegment, roadType, oneWay, forward)
	}
	return nil
}

func (p *OsmParser) processSegment(segment []node, roadType pkg.OsmHighwayType, oneWay, forward bool) error {
	if len(segment) == 2 && segment[0].id == segment[1].id {
		return nil
	}
	if len(segment) > 2 && segment[0].id == segment[len(segment)-1].id {
		// closed loop, split so that the edge does not become a self loop
		if err := p.addEdge(segment[:len(segment)-1], roadType, oneWay, forward); err != nil {
			return err
		}
		return p.addEdge(segment[len(segment)-2:], roadType, oneWay, forward)
	}
	return p.addEdge(segment, roadType, oneWay, forward)
}

func (p *OsmParser) addEdge(segment []node, roadType pkg.OsmHighwayType, oneWay, forward bool) error {
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id {
		return nil
	}

	fromId, err := p.vertexID(from)
	if err != nil {
		return err
	}
	toId, err := p.vertexID(to)
	if err != nil {
		return err
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.HaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}

	opts := []datastructure.EdgeOption{
		datastructure.WithLength(distance),
		datastructure.WithRoadType(roadType),
	}

	if !oneWay || forward {
		if err := p.gb.AddEdge(fromId, toId, opts...); err != nil {
			return err
		}
	}
	if !oneWay || !forward {
		if err := p.gb.AddEdge(toId, fromId, opts...); err != nil {
			return err
		}
	}
	return nil
}

func (p *OsmParser) vertexID(n node) (datastructure.Index, error) {
	if id, ok := p.nodeIDMap[n.id]; ok {
		return id, nil
	}
	id, err := p.gb.AddVertex(n.coord.lat, n.coord.lon, n.id)
	if err != nil {
		return datastructure.INVALID_VERTEX_ID, err
	}
	p.nodeIDMap[n.id] = id
	return id, nil
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	_, ok := acceptedHighway[highway]
	return ok
}

// getOneWay. (oneWay, forward). forward is false when traffic runs against the way direction.
func getOneWay(way *osm.Way) (bool, bool) {
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	oneWay := false
	if val := way.Tags.Find("oneway"); val == "yes" || val == "-1" || okvf || okmvf || okvb || okmvb {
		oneWay = true
	}
	if way.Tags.Find("junction") == "roundabout" {
		oneWay = true
	}
	forward := !(way.Tags.Find("oneway") == "-1" || okvf || okmvf)
	return oneWay, forward
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}
