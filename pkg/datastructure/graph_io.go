package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/util"
)

// WriteGraph. bzip2 compressed text snapshot:
//
//	numVertices numEdges
//	id lat lon osmId                                  (numVertices lines)
//	tail head mask length time pollution roadType     (numEdges lines)
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	if err := g.writeGraph(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func (g *Graph) writeGraph(out io.Writer) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d %s %s %d\n", v.id, latF, lonF, v.osmId)
	}

	for _, e := range g.outEdges {
		lengthF := strconv.FormatFloat(e.length, 'f', -1, 64)
		timeF := strconv.FormatFloat(e.time, 'f', -1, 64)
		pollutionF := strconv.FormatFloat(e.pollution, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %d %s %s %s %d\n",
			e.tail, e.head, e.mask, lengthF, timeF, pollutionF, e.roadType)
	}

	return w.Flush()
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

const (
	maxPreallocated = 1 << 20
)

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return readGraph(bz)
}

func readGraph(in io.Reader) (*Graph, error) {
	br := bufio.NewReader(in)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := util.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: expected 2 header fields, got %d", ErrMalformedGraph, len(tokens))
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}

	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	// header counts are untrusted until the lines are read
	gb := NewGraphBuilderWithSize(min(int(numVertices), maxPreallocated), min(int(numEdges), maxPreallocated))

	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		if err := parseVertex(gb, Index(i), vertexLine); err != nil {
			return nil, err
		}
	}

	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		if err := parseEdge(gb, edgeLine); err != nil {
			return nil, err
		}
	}

	return gb.Build(), nil
}

func parseVertex(gb *GraphBuilder, want Index, line string) error {
	tokens := util.Fields(line)
	if len(tokens) != 4 {
		return fmt.Errorf("%w: expected 4 vertex fields, got %d", ErrMalformedGraph, len(tokens))
	}
	id, err := ParseIndex(tokens[0])
	if err != nil {
		return err
	}
	if id != want {
		return fmt.Errorf("%w: vertex %d out of order, expected %d", ErrMalformedGraph, id, want)
	}
	lat, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return err
	}
	lon, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return err
	}
	osmId, err := strconv.ParseInt(tokens[3], 10, 64)
	if err != nil {
		return err
	}
	_, err = gb.AddVertex(lat, lon, osmId)
	return err
}

func parseEdge(gb *GraphBuilder, line string) error {
	tokens := util.Fields(line)
	if len(tokens) != 7 {
		return fmt.Errorf("%w: expected 7 edge fields, got %d", ErrMalformedGraph, len(tokens))
	}
	tail, err := ParseIndex(tokens[0])
	if err != nil {
		return err
	}
	head, err := ParseIndex(tokens[1])
	if err != nil {
		return err
	}
	mask, err := strconv.ParseUint(tokens[2], 10, 8)
	if err != nil {
		return err
	}
	values := make([]float64, 3)
	for i := range values {
		values[i], err = strconv.ParseFloat(tokens[3+i], 64)
		if err != nil {
			return err
		}
	}
	roadType, err := strconv.ParseUint(tokens[6], 10, 8)
	if err != nil {
		return err
	}

	opts := make([]EdgeOption, 0, 4)
	attrMask := AttributeMask(mask)
	if attrMask&HAS_LENGTH != 0 {
		opts = append(opts, WithLength(values[0]))
	}
	if attrMask&HAS_TIME != 0 {
		opts = append(opts, WithTime(values[1]))
	}
	if attrMask&HAS_POLLUTION != 0 {
		opts = append(opts, WithPollution(values[2]))
	}
	if attrMask&HAS_ROAD_TYPE != 0 {
		opts = append(opts, WithRoadType(pkg.OsmHighwayType(roadType)))
	}
	return gb.AddEdge(tail, head, opts...)
}
