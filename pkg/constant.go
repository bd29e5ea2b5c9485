package pkg

import "math"

// INF_WEIGHT is the cost of an unreachable target.
var INF_WEIGHT = math.Inf(1)

const (
	DEFAULT_SEGMENT_LENGTH   = 100.0 // meter, used when an edge carries no length
	INTERSECTION_DEGREE      = 2     // vertices with a higher degree are intersections
	INTERSECTION_PENALTY     = 1.1
	NO_INTERSECTION_PENALTY  = 1.0
	EARTH_RADIUS_METER       = 6_371_000.0
	CANCEL_CHECK_INTERVAL    = 1024 // settled vertices between two context checks
	SCENARIO_BATCH_SIZE      = 16
	SAMPLE_ROUTE_MIN_METER   = 2000.0
	SAMPLE_ROUTE_MAX_METER   = 5000.0
	SAMPLE_ROUTE_MAX_ATTEMPT = 50
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	UNCLASSIFIED   OsmHighwayType = 6
	MOTORWAY_LINK  OsmHighwayType = 7
	TRUNK_LINK     OsmHighwayType = 8
	PRIMARY_LINK   OsmHighwayType = 9
	SECONDARY_LINK OsmHighwayType = 10
	TERTIARY_LINK  OsmHighwayType = 11
	LIVING_STREET  OsmHighwayType = 12
	BUSWAY         OsmHighwayType = 13
	UNKNOWN        OsmHighwayType = 14
)

var highwayTypeNames = [...]string{
	MOTORWAY:       "motorway",
	TRUNK:          "trunk",
	PRIMARY:        "primary",
	SECONDARY:      "secondary",
	TERTIARY:       "tertiary",
	RESIDENTIAL:    "residential",
	UNCLASSIFIED:   "unclassified",
	MOTORWAY_LINK:  "motorway_link",
	TRUNK_LINK:     "trunk_link",
	PRIMARY_LINK:   "primary_link",
	SECONDARY_LINK: "secondary_link",
	TERTIARY_LINK:  "tertiary_link",
	LIVING_STREET:  "living_street",
	BUSWAY:         "busway",
	UNKNOWN:        "unknown",
}

func (h OsmHighwayType) String() string {
	if int(h) >= len(highwayTypeNames) {
		return highwayTypeNames[UNKNOWN]
	}
	return highwayTypeNames[h]
}

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "busway":
		return BUSWAY
	default:
		return UNKNOWN
	}
}

// RoadProfile is the speed (km/h) and pollution multiplier assumed for a road type.
type RoadProfile struct {
	SpeedKmh            float64
	PollutionMultiplier float64
}

// roadProfiles. UNKNOWN doubles as the default profile for untagged roads.
var roadProfiles = [...]RoadProfile{
	LIVING_STREET: {SpeedKmh: 10, PollutionMultiplier: 3.0},
	BUSWAY:        {SpeedKmh: 1, PollutionMultiplier: 20.0},

	RESIDENTIAL:  {SpeedKmh: 20, PollutionMultiplier: 2.5},
	UNCLASSIFIED: {SpeedKmh: 20, PollutionMultiplier: 2.2},

	PRIMARY:        {SpeedKmh: 40, PollutionMultiplier: 1.6},
	PRIMARY_LINK:   {SpeedKmh: 20, PollutionMultiplier: 1.7},
	SECONDARY:      {SpeedKmh: 30, PollutionMultiplier: 1.8},
	SECONDARY_LINK: {SpeedKmh: 20, PollutionMultiplier: 1.9},
	TERTIARY:       {SpeedKmh: 25, PollutionMultiplier: 2.0},
	TERTIARY_LINK:  {SpeedKmh: 15, PollutionMultiplier: 2.1},

	MOTORWAY:      {SpeedKmh: 80, PollutionMultiplier: 1.0},
	MOTORWAY_LINK: {SpeedKmh: 40, PollutionMultiplier: 1.5},
	TRUNK:         {SpeedKmh: 60, PollutionMultiplier: 1.2},
	TRUNK_LINK:    {SpeedKmh: 30, PollutionMultiplier: 1.5},

	UNKNOWN: {SpeedKmh: 30, PollutionMultiplier: 1.8},
}

func GetRoadProfile(h OsmHighwayType) RoadProfile {
	if int(h) >= len(roadProfiles) {
		return roadProfiles[UNKNOWN]
	}
	return roadProfiles[h]
}

func DefaultRoadProfile() RoadProfile {
	return roadProfiles[UNKNOWN]
}

// MaxRoadSpeedKmh. fastest speed of any road type, the time heuristic divides by it.
func MaxRoadSpeedKmh() float64 {
	maxSpeed := 0.0
	for _, p := range roadProfiles {
		maxSpeed = math.Max(maxSpeed, p.SpeedKmh)
	}
	return maxSpeed
}

// MinPollutionMultiplier. smallest multiplier of any road type, the pollution heuristic scales by it.
func MinPollutionMultiplier() float64 {
	minMultiplier := math.Inf(1)
	for _, p := range roadProfiles {
		minMultiplier = math.Min(minMultiplier, p.PollutionMultiplier)
	}
	return minMultiplier
}

func KmhToMps(kmh float64) float64 {
	return kmh / 3.6
}
