package datastructure

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

func (b *BoundingBox) GetMinLat() float64 {
	return b.minLat
}

func (b *BoundingBox) GetMinLon() float64 {
	return b.minLon
}

func (b *BoundingBox) GetMaxLat() float64 {
	return b.maxLat
}

func (b *BoundingBox) GetMaxLon() float64 {
	return b.maxLon
}

// Contains. (lat, lon) lies inside the box widened by margin degrees on every side.
func (b *BoundingBox) Contains(lat, lon, margin float64) bool {
	return lat >= b.minLat-margin && lat <= b.maxLat+margin &&
		lon >= b.minLon-margin && lon <= b.maxLon+margin
}
