package domain

import (
	"fmt"
	"math"
	"strings"
)

// Schedule tightness bounds: 0 is a loose timetable, 1 the tightest.
const (
	MinTightness = 0.0
	MaxTightness = 1.0
)

// Represents a single stop on a route.
// DistanceFromPrevious is in km and is always zero for the first stop.
type Stop struct {
	Name                 string
	DistanceFromPrevious float64
}

// Represents a named service over an ordered sequence of stops.
// TotalDistance is derived from the stops and recomputed whenever they change.
// A route with fewer than two stops has zero length and cannot take a bus.
type Route struct {
	Name      string
	Tightness float64

	stops         []Stop
	totalDistance float64
}

// ValidateTightness rejects values outside [MinTightness, MaxTightness].
func ValidateTightness(t float64) error {
	if math.IsNaN(t) || t < MinTightness || t > MaxTightness {
		return fmt.Errorf("tightness %g not in [%g, %g]: %w", t, MinTightness, MaxTightness, ErrInvalidTightness)
	}
	return nil
}

func NewRoute(name string, stops []Stop, tightness float64) (*Route, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("new route: %w", ErrInvalidName)
	}
	if err := ValidateTightness(tightness); err != nil {
		return nil, fmt.Errorf("new route %q: %w", name, err)
	}

	r := &Route{Name: name, Tightness: tightness}
	if err := r.SetStops(stops); err != nil {
		return nil, fmt.Errorf("new route %q: %w", name, err)
	}
	return r, nil
}

// SetStops replaces the stop list and recomputes the total distance.
func (r *Route) SetStops(stops []Stop) error {
	normalized := make([]Stop, len(stops))
	total := 0.0
	for i, s := range stops {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return fmt.Errorf("stop %d: %w: name is empty", i+1, ErrInvalidStop)
		}
		d := s.DistanceFromPrevious
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return fmt.Errorf("stop %d (%q): %w: distance %g must be non-negative", i+1, s.Name, ErrInvalidStop, d)
		}
		if i == 0 {
			s.DistanceFromPrevious = 0
		}
		total += s.DistanceFromPrevious
		normalized[i] = s
	}

	r.stops = normalized
	r.totalDistance = total
	return nil
}

// Stops returns a copy of the stop list.
func (r *Route) Stops() []Stop {
	return append([]Stop(nil), r.stops...)
}

func (r *Route) TotalDistance() float64 { return r.totalDistance }

// Servable reports whether the route is long enough to take a bus.
func (r *Route) Servable() bool { return len(r.stops) >= 2 }
