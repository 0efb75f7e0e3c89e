package geofence

import (
	"context"
	"log/slog"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

type GeolocatorImpl struct {
	policy geofence.Policy
}

func NewGeolocator(policy geofence.Policy) geofence.Locator {
	return &GeolocatorImpl{policy: policy}
}

// Policy implements geofence.Locator.
func (g *GeolocatorImpl) Policy() geofence.Policy {
	return g.policy
}

// Locate implements geofence.Locator.
func (g *GeolocatorImpl) Locate(ctx context.Context, source geo.PositionSource) geofence.Reading {
	if source == nil {
		return geofence.UnavailableReading(nil)
	}

	position, err := source.CurrentPosition(ctx)
	if err != nil {
		slog.Debug("position request failed", "error", err)
		return geofence.UnavailableReading(err)
	}
	if !position.Valid() {
		return geofence.UnavailableReading(geo.ErrUnavailable)
	}

	return geofence.NewReading(position, geo.Distance(position, g.policy.Reference))
}
