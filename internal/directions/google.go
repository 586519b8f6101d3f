package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cicd-demo/board-service/internal/domain/route"
)

const (
	directionsPath = "/maps/api/directions/json"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// transitModes and the routing preference are fixed for every request.
var transitModes = []string{"bus", "subway", "train", "rail"}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// GoogleClient calls the Google Maps Directions web service.
type GoogleClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGoogleClient creates a GoogleClient. baseURL is usually https://maps.googleapis.com.
func NewGoogleClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *GoogleClient {
	return &GoogleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// googleDirectionsResponse covers the parts of the Directions response we read.
type googleDirectionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Duration textValue `json:"duration"`
			Distance textValue `json:"distance"`
			Steps    []struct {
				HTMLInstructions string    `json:"html_instructions"`
				TravelMode       string    `json:"travel_mode"`
				Distance         textValue `json:"distance"`
				Duration         textValue `json:"duration"`
				TransitDetails   *struct {
					Line struct {
						Name      string `json:"name"`
						ShortName string `json:"short_name"`
					} `json:"line"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *GoogleClient) requestURL(origin, destination route.Waypoint) string {
	q := url.Values{}
	q.Set("origin", origin.LatLng())
	q.Set("destination", destination.LatLng())
	q.Set("mode", "transit")
	q.Set("transit_mode", strings.Join(transitModes, "|"))
	q.Set("transit_routing_preference", "fewer_transfers")
	q.Set("departure_time", "now")
	q.Set("key", c.apiKey)
	return c.baseURL + directionsPath + "?" + q.Encode()
}

// ComputeTransitLeg requests transit directions departing now.
func (c *GoogleClient) ComputeTransitLeg(ctx context.Context, origin, destination route.Waypoint) (*LegResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(origin, destination), nil)
	if err != nil {
		return nil, fmt.Errorf("directions: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions: call service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("directions: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions: unexpected http status %d", resp.StatusCode)
	}

	var parsed googleDirectionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("directions: unmarshal: %w", err)
	}

	switch parsed.Status {
	case statusOK:
	case statusZeroResults:
		return nil, ErrNoRoute
	default:
		return nil, fmt.Errorf("directions: service status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	if len(parsed.Routes) == 0 || len(parsed.Routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	first := parsed.Routes[0]
	leg := first.Legs[0]
	steps := make([]route.Step, 0, len(leg.Steps))
	for _, s := range leg.Steps {
		step := route.Step{
			TravelMode:  s.TravelMode,
			Instruction: stripTags(s.HTMLInstructions),
			Distance:    s.Distance.Text,
			Duration:    s.Duration.Text,
		}
		if s.TransitDetails != nil {
			step.TransitLine = s.TransitDetails.Line.Name
			if step.TransitLine == "" {
				step.TransitLine = s.TransitDetails.Line.ShortName
			}
		}
		steps = append(steps, step)
	}

	c.logger.Debug("directions leg fetched",
		zap.String("origin", origin.Title),
		zap.String("destination", destination.Title),
		zap.String("duration", leg.Duration.Text),
		zap.Int("steps", len(steps)),
	)

	return &LegResult{
		Duration: leg.Duration.Text,
		Distance: leg.Distance.Text,
		Steps:    steps,
		Polyline: first.OverviewPolyline.Points,
	}, nil
}

func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}
