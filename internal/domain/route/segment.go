package route

import (
	"fmt"
	"strings"
)

// Travel modes reported by the directions service.
const (
	TravelModeTransit = "TRANSIT"
	TravelModeWalking = "WALKING"
)

// Step is one instruction inside a segment.
type Step struct {
	TravelMode  string `json:"travel_mode"`
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	TransitLine string `json:"transit_line,omitempty"`
}

// Summary is the one-line display form of the step.
func (s Step) Summary() string {
	switch {
	case s.TravelMode == TravelModeTransit:
		if s.TransitLine != "" {
			return "transit " + s.TransitLine
		}
		return "transit"
	case s.TravelMode == TravelModeWalking:
		return "walk " + s.Distance
	default:
		return s.Instruction
	}
}

// Segment is the travel between two consecutive waypoints of a plan.
type Segment struct {
	Origin      Waypoint `json:"origin"`
	Destination Waypoint `json:"destination"`
	Duration    string   `json:"duration"`
	Distance    string   `json:"distance"`
	Steps       []Step   `json:"steps"`
	Polyline    string   `json:"polyline,omitempty"`
}

// Describe renders the segment as short text, showing at most maxSteps steps.
func (s Segment) Describe(index, maxSteps int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Segment %d: %s -> %s\n", index+1, s.Origin.Title, s.Destination.Title)
	fmt.Fprintf(&b, "  duration: %s\n", s.Duration)
	fmt.Fprintf(&b, "  distance: %s\n", s.Distance)

	shown := s.Steps
	if maxSteps >= 0 && len(shown) > maxSteps {
		shown = shown[:maxSteps]
	}
	for _, step := range shown {
		fmt.Fprintf(&b, "  - %s\n", step.Summary())
	}
	if rest := len(s.Steps) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "  ... and %d more steps\n", rest)
	}
	return b.String()
}
