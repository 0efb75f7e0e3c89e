package attendance

import (
	"context"
)

// AttendanceRepository keeps at most one record per Key.
type AttendanceRepository interface {
	Get(ctx context.Context, key Key) (Record, error)

	// Upsert calls fn with the stored record for key (nil when absent) while
	// holding the write lock, then stores what fn returns under the same key.
	Upsert(ctx context.Context, key Key, fn func(existing *Record) (Record, error)) (Record, error)

	// List returns matching records, newest date first.
	List(ctx context.Context, filter AttendanceFilter) ([]Record, error)
}
