package clients

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned when the routing engine finds no path between the
// requested waypoints.
var ErrNoRoute = errors.New("no route found")

// UpstreamError wraps a non-success response from a third-party API.
type UpstreamError struct {
	Service string
	Status  int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.Status)
}

// UpstreamStatus extracts the upstream HTTP status from err, if any.
func UpstreamStatus(err error) (int, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Status, true
	}
	return 0, false
}
