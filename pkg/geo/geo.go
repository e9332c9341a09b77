package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// CoordScale is the fixed-point scale for degree coordinates stored as
// integers (1e-7 degree, the precision OSM uses on the wire).
const CoordScale = 1e7

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Euclidean returns the straight-line distance between two integer points.
// Differences are taken in float64 so large coordinates cannot overflow.
func Euclidean(x1, y1, x2, y2 int64) float64 {
	return math.Hypot(float64(x2)-float64(x1), float64(y2)-float64(y1))
}

// ToFixed converts degrees to CoordScale fixed-point.
func ToFixed(deg float64) int64 {
	return int64(math.Round(deg * CoordScale))
}

// FromFixed converts CoordScale fixed-point back to degrees.
func FromFixed(v int64) float64 {
	return float64(v) / CoordScale
}
