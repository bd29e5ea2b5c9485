package routing

const (
	FASTEST_ROUTE_NAME  = "Fastest Route"
	GREENEST_ROUTE_NAME = "Greenest Route"
)
