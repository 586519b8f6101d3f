// Package directions reaches the external transit directions service.
package directions

import (
	"context"
	"errors"

	"github.com/cicd-demo/board-service/internal/domain/route"
)

// ErrNoRoute means the service answered but found no route for the pair.
var ErrNoRoute = errors.New("no transit route found")

// LegResult is the first leg of the best route between two waypoints.
type LegResult struct {
	Duration string
	Distance string
	Steps    []route.Step
	Polyline string
}

// Client computes transit legs between two waypoints.
// Implementations return ErrNoRoute when the service has no route.
type Client interface {
	ComputeTransitLeg(ctx context.Context, origin, destination route.Waypoint) (*LegResult, error)
}
