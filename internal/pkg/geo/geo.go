package geo

import (
	"context"
	"errors"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000

// ErrUnavailable is returned when the device cannot produce a position.
var ErrUnavailable = errors.New("device position is unavailable")

// Coordinate is a point on the Earth's surface in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within the usual degree ranges.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func toDegrees(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// Distance returns the great-circle distance between a and b in meters (haversine).
func Distance(a, b Coordinate) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1Rad := toRadians(a.Latitude)
	lat2Rad := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Destination returns the point reached by travelling meters from origin along
// the initial bearing (degrees clockwise from north) on a spherical Earth.
func Destination(origin Coordinate, bearingDeg, meters float64) Coordinate {
	delta := meters / EarthRadiusMeters
	theta := toRadians(bearingDeg)
	phi1 := toRadians(origin.Latitude)
	lambda1 := toRadians(origin.Longitude)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	lon := math.Mod(toDegrees(lambda2)+540, 360) - 180
	return Coordinate{Latitude: toDegrees(phi2), Longitude: lon}
}

// PositionSource is the host positioning capability. A single call resolves to
// a coordinate or a failure; there is no continuous tracking.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (Coordinate, error)
}
