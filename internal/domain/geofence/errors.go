package geofence

import "errors"

var (
	// ErrLocationUnavailable is returned when a policy fails closed because no position could be obtained.
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrPolicyBlocked is wrapped by every distance-based rejection.
	ErrPolicyBlocked = errors.New("blocked by location policy")
)
