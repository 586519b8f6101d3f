package route

import (
	"errors"
	"fmt"
)

// State is the lifecycle position of a planning session.
type State string

const (
	StateIdle      State = "idle"
	StateComputing State = "computing"
	StateDone      State = "done"
)

// ErrSessionBusy is returned when Start is called on a session that is
// already computing.
var ErrSessionBusy = errors.New("route session is already computing")

// Session holds the state of one planning computation:
// Start, then Accumulate per segment, then Finalize or Clear.
// A Session is not safe for concurrent use.
type Session struct {
	state    State
	order    []Waypoint
	segments []Segment
	skipped  int
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Start enters the computing state with the optimized visiting order.
func (s *Session) Start(order []Waypoint) error {
	if s.state == StateComputing {
		return ErrSessionBusy
	}
	s.state = StateComputing
	s.order = order
	s.segments = nil
	s.skipped = 0
	return nil
}

// Accumulate appends a fetched segment.
func (s *Session) Accumulate(seg Segment) error {
	if s.state != StateComputing {
		return fmt.Errorf("cannot accumulate segment in state %s", s.state)
	}
	s.segments = append(s.segments, seg)
	return nil
}

// Skip records a segment that produced no route.
func (s *Session) Skip() {
	if s.state == StateComputing {
		s.skipped++
	}
}

// Finalize moves a computing session to done.
func (s *Session) Finalize() error {
	if s.state != StateComputing {
		return fmt.Errorf("cannot finalize session in state %s", s.state)
	}
	s.state = StateDone
	return nil
}

// Clear drops accumulated segments and returns to idle. The visiting order is kept.
func (s *Session) Clear() {
	s.state = StateIdle
	s.segments = nil
	s.skipped = 0
}

func (s *Session) State() State         { return s.state }
func (s *Session) Order() []Waypoint    { return s.order }
func (s *Session) Segments() []Segment  { return s.segments }
func (s *Session) SkippedSegments() int { return s.skipped }
