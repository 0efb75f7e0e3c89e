package geo

import (
	"context"
	"fmt"
)

// ReportedPosition is the position a client obtained from its device and sent
// along with a request. Missing coordinates or a non-empty Error mean the
// device could not produce a fix.
type ReportedPosition struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// At builds a ReportedPosition for c.
func At(c Coordinate) ReportedPosition {
	lat, lng := c.Latitude, c.Longitude
	return ReportedPosition{Latitude: &lat, Longitude: &lng}
}

// CurrentPosition implements PositionSource.
func (p ReportedPosition) CurrentPosition(context.Context) (Coordinate, error) {
	if p.Error != "" {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrUnavailable, p.Error)
	}
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinate{}, ErrUnavailable
	}
	return Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}, nil
}
