package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cicd-demo/board-service/internal/application"
	"github.com/cicd-demo/board-service/internal/domain/route"
)

const timeLayout = "2006-01-02 15:04:05"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderMessage(w io.Writer, m application.MessageDTO) {
	fmt.Fprintf(w, "#%d  %s  %s\n", m.ID, m.Timestamp.Local().Format(timeLayout), m.Text)
}

func renderMessages(w io.Writer, msgs []application.MessageDTO) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages yet.")
		return
	}
	for _, m := range msgs {
		renderMessage(w, m)
	}
}

func renderWaypoints(w io.Writer, wps []route.Waypoint) {
	for i, wp := range wps {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, wp.Title, wp.LatLng())
	}
}

func renderPlan(w io.Writer, plan *application.PlanResultDTO, maxSteps int) {
	if !plan.Available {
		fmt.Fprintln(w, plan.Message)
		fmt.Fprintln(w)
		renderWaypoints(w, plan.Waypoints)
		return
	}

	fmt.Fprintln(w, "Visit order:")
	renderWaypoints(w, plan.Waypoints)
	fmt.Fprintf(w, "Straight-line total: %.2f km\n\n", plan.StraightLineKm)

	if plan.Error != "" {
		fmt.Fprintf(w, "Route planning failed: %s\n", plan.Error)
		return
	}

	for i, seg := range plan.Segments {
		fmt.Fprintln(w, seg.Describe(i, maxSteps))
	}
	if plan.SkippedSegments > 0 || plan.FailedSegments > 0 {
		fmt.Fprintf(w, "\n%d segment(s) without a route, %d failed\n", plan.SkippedSegments, plan.FailedSegments)
	}
}
