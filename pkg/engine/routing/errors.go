package routing

import "errors"

var (
	ErrNodeNotFound = errors.New("node not found in graph")
	ErrNoRoute      = errors.New("no route found")
	ErrEdgeNotFound = errors.New("no edge between consecutive path nodes")
)
