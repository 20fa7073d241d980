package domain

import "sort"

// Assignment pairs a route with the bus serving it.
type Assignment struct {
	Route string
	BusID int
}

// AssignmentTable maps each route to at most one bus. A bus appears under at
// most one route.
type AssignmentTable struct {
	byRoute map[string]int
}

func NewAssignmentTable() *AssignmentTable {
	return &AssignmentTable{byRoute: make(map[string]int)}
}

// BusFor returns the bus assigned to a route.
func (a *AssignmentTable) BusFor(route string) (int, bool) {
	id, ok := a.byRoute[route]
	return id, ok
}

// RouteFor returns the route a bus is assigned to.
func (a *AssignmentTable) RouteFor(busID int) (string, bool) {
	for route, id := range a.byRoute {
		if id == busID {
			return route, true
		}
	}
	return "", false
}

func (a *AssignmentTable) Len() int { return len(a.byRoute) }

// Entries returns all assignments sorted by route name.
func (a *AssignmentTable) Entries() []Assignment {
	out := make([]Assignment, 0, len(a.byRoute))
	for route, id := range a.byRoute {
		out = append(out, Assignment{Route: route, BusID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

func (a *AssignmentTable) set(route string, busID int) {
	a.byRoute[route] = busID
}

func (a *AssignmentTable) clearRoute(route string) {
	delete(a.byRoute, route)
}

func (a *AssignmentTable) clearBus(busID int) bool {
	for route, id := range a.byRoute {
		if id == busID {
			delete(a.byRoute, route)
			return true
		}
	}
	return false
}
