package domain

import (
	"fmt"
	"math"
	"strings"
)

// PassengersPerKm is the rough daily ridership a route generates per km of length.
// It only drives the capacity-mismatch warning; revenue uses the economy settings.
const PassengersPerKm = 3.0

// EstimateDemand returns the expected ridership of a route of the given length.
func EstimateDemand(distanceKm float64) int {
	return int(math.Round(distanceKm * PassengersPerKm))
}

// CapacityWarning is returned alongside a successful assignment when the bus is
// far too small or far too large for the route's expected demand.
type CapacityWarning struct {
	BusID    int
	Route    string
	Capacity int
	Demand   int
}

func (w *CapacityWarning) String() string {
	if w.Capacity < w.Demand {
		return fmt.Sprintf("bus %d seats %d but route %q expects about %d riders", w.BusID, w.Capacity, w.Route, w.Demand)
	}
	return fmt.Sprintf("bus %d seats %d, far more than the %d riders route %q expects", w.BusID, w.Capacity, w.Demand, w.Route)
}

func capacityMismatch(capacity, demand int) bool {
	return capacity*2 < demand || capacity > demand*2
}

// Game is the single owned aggregate of a play session. Every operation reaches
// the registry, network, assignments and ledger through it.
type Game struct {
	CompanyName string
	Catalog     *Catalog
	Fleet       *Fleet
	Network     *Network
	Assignments *AssignmentTable
	Ledger      *Ledger
}

func NewGame(companyName string, catalog *Catalog, ledger *Ledger) *Game {
	return &Game{
		CompanyName: strings.TrimSpace(companyName),
		Catalog:     catalog,
		Fleet:       NewFleet(),
		Network:     NewNetwork(),
		Assignments: NewAssignmentTable(),
		Ledger:      ledger,
	}
}

// BuyBus purchases a catalog model by name.
func (g *Game) BuyBus(modelName, fleetNumber string) (*Bus, error) {
	model, ok := g.Catalog.Lookup(modelName)
	if !ok {
		return nil, fmt.Errorf("buy bus: %q: %w", modelName, ErrUnknownModel)
	}
	return g.Fleet.Purchase(model, fleetNumber, g.Ledger)
}

// AddRoute creates a route, charging the ledger.
func (g *Game) AddRoute(name string, stops []Stop, tightness float64) (*Route, error) {
	return g.Network.AddRoute(name, stops, tightness, g.Ledger)
}

// ResolveModel dereferences a bus's catalog model.
func (g *Game) ResolveModel(b *Bus) (VehicleModel, error) {
	m, ok := g.Catalog.Lookup(b.Model)
	if !ok {
		return VehicleModel{}, structuralf("resolve model", "bus %d references unknown model %q", b.ID, b.Model)
	}
	return m, nil
}

// AssignedRoute returns the route a bus serves, if any.
func (g *Game) AssignedRoute(busID int) (string, bool) {
	return g.Assignments.RouteFor(busID)
}

// Assign puts a bus on a route. A bus already serving a different route is
// rejected; a bus previously serving this route is released. A capacity
// mismatch is reported as a warning and the assignment still applies.
func (g *Game) Assign(busID int, routeName string) (*CapacityWarning, error) {
	bus, ok := g.Fleet.Bus(busID)
	if !ok {
		return nil, fmt.Errorf("assign: bus %d: %w", busID, ErrUnknownBus)
	}

	route, ok := g.Network.Route(strings.TrimSpace(routeName))
	if !ok {
		return nil, fmt.Errorf("assign: route %q: %w", routeName, ErrUnknownRoute)
	}

	if !route.Servable() {
		return nil, fmt.Errorf("assign: route %q has %d stops: %w", route.Name, len(route.stops), ErrRouteTooShort)
	}

	if current, ok := g.Assignments.RouteFor(bus.ID); ok && current != route.Name {
		return nil, fmt.Errorf("assign: bus %d serves %q: %w", bus.ID, current, ErrAlreadyAssigned)
	}

	model, err := g.ResolveModel(bus)
	if err != nil {
		return nil, err
	}

	g.Assignments.set(route.Name, bus.ID)

	demand := EstimateDemand(route.TotalDistance())
	if capacityMismatch(model.Capacity, demand) {
		return &CapacityWarning{BusID: bus.ID, Route: route.Name, Capacity: model.Capacity, Demand: demand}, nil
	}
	return nil, nil
}

// Unassign takes a bus off whatever route it serves.
func (g *Game) Unassign(busID int) error {
	if _, ok := g.Fleet.Bus(busID); !ok {
		return fmt.Errorf("unassign: bus %d: %w", busID, ErrUnknownBus)
	}
	g.Assignments.clearBus(busID)
	return nil
}

// DeleteRoute removes a route and any assignment referencing it.
func (g *Game) DeleteRoute(name string) error {
	name = strings.TrimSpace(name)
	if !g.Network.remove(name) {
		return fmt.Errorf("delete route: %q: %w", name, ErrUnknownRoute)
	}
	g.Assignments.clearRoute(name)
	return nil
}

// RestoreAssignments loads persisted assignments, replacing the current table.
func (g *Game) RestoreAssignments(entries []Assignment) error {
	table := NewAssignmentTable()
	for _, a := range entries {
		if _, dup := table.byRoute[a.Route]; dup {
			return structuralf("restore assignments", "route %q assigned twice", a.Route)
		}
		table.set(a.Route, a.BusID)
	}

	prev := g.Assignments
	g.Assignments = table
	if err := g.CheckIntegrity(); err != nil {
		g.Assignments = prev
		return err
	}
	return nil
}

// CheckIntegrity verifies referential integrity across the aggregate: every
// assignment names an existing route and bus, no bus serves two routes, every
// bus resolves to a catalog model and holds no more fuel than its tank.
func (g *Game) CheckIntegrity() error {
	const op = "check integrity"

	serving := make(map[int]string, g.Assignments.Len())
	for _, a := range g.Assignments.Entries() {
		if _, ok := g.Network.Route(a.Route); !ok {
			return structuralf(op, "assignment references unknown route %q", a.Route)
		}
		if _, ok := g.Fleet.Bus(a.BusID); !ok {
			return structuralf(op, "route %q assigned to unknown bus %d", a.Route, a.BusID)
		}
		if other, dup := serving[a.BusID]; dup {
			return structuralf(op, "bus %d assigned to both %q and %q", a.BusID, other, a.Route)
		}
		serving[a.BusID] = a.Route
	}

	for _, b := range g.Fleet.buses {
		m, err := g.ResolveModel(b)
		if err != nil {
			return err
		}
		if b.CurrentFuel < 0 || b.CurrentFuel > m.FuelCapacity {
			return structuralf(op, "bus %d fuel %g outside [0, %g]", b.ID, b.CurrentFuel, m.FuelCapacity)
		}
	}

	return nil
}
