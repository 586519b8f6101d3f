package route

import "time"

const (
	TopicRouteEvents  = "route.events"
	EventRoutePlanned = "route.planned"
)

// PlannedEvent is published when a planning session finishes.
type PlannedEvent struct {
	Stops           []string  `json:"stops"`
	StraightLineKm  float64   `json:"straight_line_km"`
	Segments        int       `json:"segments"`
	SkippedSegments int       `json:"skipped_segments"`
	OccurredAt      time.Time `json:"occurred_at"`
}
