package domain

import (
	"fmt"
	"strings"
)

// StopPrice is the one-off cost charged per stop when a route is created.
const StopPrice = 500.0

// RouteCost returns the creation price of a route with n stops.
func RouteCost(n int) float64 {
	return StopPrice * float64(n)
}

// Network holds routes in creation order. That order is also the order the
// day simulation visits them in.
type Network struct {
	routes []*Route
}

func NewNetwork() *Network {
	return &Network{}
}

// RestoreNetwork rebuilds a network from persisted routes, rejecting duplicate names.
func RestoreNetwork(routes []*Route) (*Network, error) {
	n := &Network{}
	seen := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		if r == nil {
			return nil, structuralf("restore network", "nil route")
		}
		if _, dup := seen[r.Name]; dup {
			return nil, structuralf("restore network", "duplicate route %q", r.Name)
		}
		seen[r.Name] = struct{}{}
		n.routes = append(n.routes, r)
	}
	return n, nil
}

// Routes returns the routes in creation order.
func (n *Network) Routes() []*Route {
	return append([]*Route(nil), n.routes...)
}

func (n *Network) Len() int { return len(n.routes) }

// Route looks a route up by name.
func (n *Network) Route(name string) (*Route, bool) {
	for _, r := range n.routes {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// AddRoute creates a route and charges RouteCost(len(stops)) up front.
func (n *Network) AddRoute(name string, stops []Stop, tightness float64, ledger *Ledger) (*Route, error) {
	route, err := NewRoute(name, stops, tightness)
	if err != nil {
		return nil, fmt.Errorf("add route: %w", err)
	}

	if _, exists := n.Route(route.Name); exists {
		return nil, fmt.Errorf("add route: %q: %w", route.Name, ErrDuplicateRoute)
	}

	if err := ledger.Debit(RouteCost(len(stops))); err != nil {
		return nil, fmt.Errorf("add route %q: %w", route.Name, err)
	}

	n.routes = append(n.routes, route)
	return route, nil
}

// UpdateSchedule changes a route's schedule tightness.
func (n *Network) UpdateSchedule(name string, tightness float64) error {
	route, ok := n.Route(strings.TrimSpace(name))
	if !ok {
		return fmt.Errorf("update schedule: %q: %w", name, ErrUnknownRoute)
	}
	if err := ValidateTightness(tightness); err != nil {
		return fmt.Errorf("update schedule %q: %w", name, err)
	}

	route.Tightness = tightness
	return nil
}

func (n *Network) remove(name string) bool {
	for i, r := range n.routes {
		if r.Name == name {
			n.routes = append(n.routes[:i], n.routes[i+1:]...)
			return true
		}
	}
	return false
}
