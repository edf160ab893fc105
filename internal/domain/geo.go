package domain

import "math"

const earthRadiusKm = 6371.0

// GeoPoint geographic coordinates in degrees
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint builds a point from optional coordinates, nil if any is missing
func NewGeoPoint(lat, lon *float64) *GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &GeoPoint{Latitude: *lat, Longitude: *lon}
}

// HaversineKm great-circle distance between two points in kilometers
func HaversineKm(a, b GeoPoint) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// HaversineMeters great-circle distance between two points in meters
func HaversineMeters(a, b GeoPoint) float64 {
	return HaversineKm(a, b) * 1000
}

// DistanceMeters distance between optional points, +Inf if any is missing
func DistanceMeters(a, b *GeoPoint) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	return HaversineMeters(*a, *b)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
