package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cicd-demo/board-service/internal/directions"
	"github.com/cicd-demo/board-service/internal/domain/route"
)

// PlaceholderMessage is returned instead of a plan when no Maps key is configured.
const PlaceholderMessage = "Google Maps API key is not configured; route planning is unavailable."

// FailurePolicy decides what a directions request failure does to the rest of a plan.
type FailurePolicy string

const (
	// FailureAbort stops at the first failed request and discards gathered segments.
	FailureAbort FailurePolicy = "abort"
	// FailureContinue skips the failed segment and moves on to the next pair.
	FailureContinue FailurePolicy = "continue"
)

// ParseFailurePolicy converts a config value to a FailurePolicy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case FailureAbort, FailureContinue:
		return p, nil
	case "":
		return FailureAbort, nil
	default:
		return "", fmt.Errorf("invalid failure policy %q", s)
	}
}

// RoutePlannerConfig holds tunables for the planner.
type RoutePlannerConfig struct {
	SegmentDelay  time.Duration
	FailurePolicy FailurePolicy
}

// PlanResultDTO is the rendered outcome of one planning session.
type PlanResultDTO struct {
	State           string           `json:"state"`
	Available       bool             `json:"available"`
	Message         string           `json:"message,omitempty"`
	Error           string           `json:"error,omitempty"`
	Waypoints       []route.Waypoint `json:"waypoints"`
	Segments        []route.Segment  `json:"segments"`
	SkippedSegments int              `json:"skipped_segments"`
	FailedSegments  int              `json:"failed_segments"`
	StraightLineKm  float64          `json:"straight_line_km"`
}

// Failed reports whether the plan was abandoned.
func (r *PlanResultDTO) Failed() bool {
	return r.Available && r.State == string(route.StateIdle)
}

// RoutePlanner orders waypoints and fetches transit directions for each leg,
// one request at a time.
type RoutePlanner struct {
	client    directions.Client
	waypoints []route.Waypoint
	cfg       RoutePlannerConfig
	publisher EventPublisher
	logger    *zap.Logger
	pause     func(ctx context.Context, d time.Duration) error
}

// NewRoutePlanner creates a RoutePlanner over a fixed waypoint list. A nil client
// means no Maps credentials are available.
func NewRoutePlanner(
	client directions.Client,
	waypoints []route.Waypoint,
	cfg RoutePlannerConfig,
	publisher EventPublisher,
	logger *zap.Logger,
) *RoutePlanner {
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = FailureAbort
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &RoutePlanner{
		client:    client,
		waypoints: waypoints,
		cfg:       cfg,
		publisher: publisher,
		logger:    logger,
		pause:     sleepContext,
	}
}

// Available reports whether directions can be requested.
func (p *RoutePlanner) Available() bool { return p.client != nil }

// Waypoints returns a copy of the configured stops in their given order.
func (p *RoutePlanner) Waypoints() []route.Waypoint {
	return append([]route.Waypoint(nil), p.waypoints...)
}

// Plan runs a planning session over the configured waypoints.
func (p *RoutePlanner) Plan(ctx context.Context) *PlanResultDTO {
	return p.PlanWaypoints(ctx, p.waypoints)
}

// PlanWaypoints runs a planning session over points. Each call owns its own
// session, so concurrent calls do not interfere.
func (p *RoutePlanner) PlanWaypoints(ctx context.Context, points []route.Waypoint) *PlanResultDTO {
	ordered := route.OrderNearestNeighbor(points)

	if !p.Available() {
		p.logger.Warn("route planning skipped: no maps api key")
		return &PlanResultDTO{
			State:     string(route.StateIdle),
			Available: false,
			Message:   PlaceholderMessage,
			Waypoints: ordered,
			Segments:  []route.Segment{},
		}
	}

	session := route.NewSession()
	if err := session.Start(ordered); err != nil {
		return p.failed(session, fmt.Errorf("failed to start session: %w", err), 0)
	}

	p.logger.Info("route optimized",
		zap.Strings("order", waypointTitles(ordered)),
		zap.Float64("straight_line_km", route.TotalKm(ordered)),
	)

	failed := 0
	for i, pair := range route.Pairs(ordered) {
		origin, destination := pair[0], pair[1]
		log := p.logger.With(
			zap.Int("segment", i+1),
			zap.String("origin", origin.Title),
			zap.String("destination", destination.Title),
		)

		leg, err := p.client.ComputeTransitLeg(ctx, origin, destination)
		switch {
		case errors.Is(err, directions.ErrNoRoute):
			log.Info("no transit route for segment")
			session.Skip()
		case err != nil:
			log.Error("directions request failed", zap.Error(err))
			if p.cfg.FailurePolicy == FailureAbort || ctx.Err() != nil {
				return p.failed(session, fmt.Errorf("segment %d (%s -> %s): %w", i+1, origin.Title, destination.Title, err), failed+1)
			}
			failed++
		default:
			log.Info("segment route computed",
				zap.String("duration", leg.Duration),
				zap.String("distance", leg.Distance),
			)
			seg := route.Segment{
				Origin:      origin,
				Destination: destination,
				Duration:    leg.Duration,
				Distance:    leg.Distance,
				Steps:       leg.Steps,
				Polyline:    leg.Polyline,
			}
			if err := session.Accumulate(seg); err != nil {
				return p.failed(session, err, failed)
			}
		}

		if i < len(points)-2 {
			if err := p.pause(ctx, p.cfg.SegmentDelay); err != nil {
				return p.failed(session, fmt.Errorf("planning interrupted: %w", err), failed)
			}
		}
	}

	if err := session.Finalize(); err != nil {
		return p.failed(session, err, failed)
	}

	segments := session.Segments()
	if segments == nil {
		segments = []route.Segment{}
	}
	result := &PlanResultDTO{
		State:           string(session.State()),
		Available:       true,
		Waypoints:       ordered,
		Segments:        segments,
		SkippedSegments: session.SkippedSegments(),
		FailedSegments:  failed,
		StraightLineKm:  route.TotalKm(ordered),
	}

	p.logger.Info("route plan completed",
		zap.Int("segments", len(segments)),
		zap.Int("skipped", result.SkippedSegments),
		zap.Int("failed", failed),
	)

	evt := route.PlannedEvent{
		Stops:           waypointTitles(ordered),
		StraightLineKm:  result.StraightLineKm,
		Segments:        len(segments),
		SkippedSegments: result.SkippedSegments,
		OccurredAt:      time.Now().UTC(),
	}
	publishEvent(ctx, p.publisher, p.logger, route.TopicRouteEvents, route.EventRoutePlanned, "", evt)

	return result
}

// failed clears the session so no partial plan is rendered.
func (p *RoutePlanner) failed(session *route.Session, err error, failedSegments int) *PlanResultDTO {
	session.Clear()
	p.logger.Error("route planning failed", zap.Error(err))
	return &PlanResultDTO{
		State:          string(session.State()),
		Available:      true,
		Error:          err.Error(),
		Waypoints:      session.Order(),
		Segments:       []route.Segment{},
		FailedSegments: failedSegments,
		StraightLineKm: route.TotalKm(session.Order()),
	}
}

func waypointTitles(points []route.Waypoint) []string {
	titles := make([]string, len(points))
	for i, w := range points {
		titles[i] = w.Title
	}
	return titles
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
