package geofence

import (
	"context"

	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

// Locator resolves one position request into a Reading against the reference point.
type Locator interface {
	Locate(ctx context.Context, source geo.PositionSource) Reading
	Policy() Policy
}
