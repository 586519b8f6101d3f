package application

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cicd-demo/board-service/internal/directions"
	msgDomain "github.com/cicd-demo/board-service/internal/domain/message"
	"github.com/cicd-demo/board-service/internal/domain/route"
	"github.com/cicd-demo/board-service/internal/platform/kafka"
)

type memoryMessageRepo struct {
	mu      sync.Mutex
	nextID  int64
	stored  []*msgDomain.Message
	saveErr error
	listErr error
}

func (r *memoryMessageRepo) FindAll(_ context.Context) ([]*msgDomain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := append([]*msgDomain.Message(nil), r.stored...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp().Equal(out[j].Timestamp()) {
			return out[i].ID() > out[j].ID()
		}
		return out[i].Timestamp().After(out[j].Timestamp())
	})
	return out, nil
}

func (r *memoryMessageRepo) Save(_ context.Context, msg *msgDomain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.nextID++
	msg.AssignID(r.nextID)
	r.stored = append(r.stored, msg)
	return nil
}

type publishedEvent struct {
	Topic string
	Key   string
	Event kafka.CloudEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

// scriptedDirections answers calls in order; a nil leg with nil error means ErrNoRoute.
type scriptedDirections struct {
	responses []scriptedLeg
	calls     [][2]route.Waypoint
}

type scriptedLeg struct {
	leg *directions.LegResult
	err error
}

var errServiceDown = errors.New("directions service unavailable")

func (d *scriptedDirections) ComputeTransitLeg(_ context.Context, origin, destination route.Waypoint) (*directions.LegResult, error) {
	i := len(d.calls)
	d.calls = append(d.calls, [2]route.Waypoint{origin, destination})
	if i >= len(d.responses) {
		return leg("default"), nil
	}
	r := d.responses[i]
	if r.leg == nil && r.err == nil {
		return nil, directions.ErrNoRoute
	}
	return r.leg, r.err
}

func leg(duration string) *directions.LegResult {
	return &directions.LegResult{
		Duration: duration,
		Distance: "1 km",
		Steps:    []route.Step{{TravelMode: route.TravelModeTransit, TransitLine: "Line 1"}},
	}
}
