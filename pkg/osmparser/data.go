package osmparser

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"unclassified":   {},
		"living_street":  {},
		"busway":         {},
		"service":        {},
		"road":           {},
	}
)

type node struct {
	id    int64
	coord NodeCoord
}

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}
