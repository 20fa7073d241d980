package services

import (
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/ports"
	"errors"
	"fmt"
)

// SimulateDay runs one day of service over the game's routes and applies the
// outcome: bus fuel levels drop, and the ledger takes the net cash, the clamped
// reputation change, the next fuel price and one more day on the counter.
//
// Routes are visited in creation order and draw from rng in that order. Each
// served route takes one delay draw and one incident draw, plus a second
// draw to pick the incident when one happens. The day-level event trials
// follow, then the fuel price step. The same game state and the same rng stream therefore
// always produce the same DayResult.
//
// Running short of fuel, delays and bad events are outcomes, not errors. The
// only failures are structural integrity violations, detected before anything
// is mutated.
func SimulateDay(g *domain.Game, econ Economy, rng ports.RandomSource) (*domain.DayResult, error) {
	if g == nil {
		return nil, errors.New("simulate day: game must be non-nil")
	}
	if rng == nil {
		return nil, errors.New("simulate day: random source must be non-nil")
	}
	if econ.Revenue == nil || econ.DelayProbability == nil {
		return nil, errors.New("simulate day: economy needs a revenue function and a delay curve")
	}

	if err := g.CheckIntegrity(); err != nil {
		return nil, fmt.Errorf("simulate day: %w", err)
	}

	ledger := g.Ledger
	routes := g.Network.Routes()
	result := &domain.DayResult{
		Day:       ledger.DayCount + 1,
		FuelPrice: ledger.FuelPrice,
		Routes:    make([]domain.RouteResult, 0, len(routes)),
	}

	for _, route := range routes {
		rr, err := simulateRoute(g, econ, route, ledger.FuelPrice, rng)
		if err != nil {
			// CheckIntegrity has already vouched for every reference.
			return nil, fmt.Errorf("simulate day: route %q: %w", route.Name, err)
		}

		result.Revenue += rr.Revenue
		result.FuelCost += rr.FuelCost
		result.Refunds += rr.Refund
		result.RepairCosts += rr.RepairCost
		result.ReputationDelta += rr.ReputationDelta
		result.Routes = append(result.Routes, rr)
	}

	result.CashDelta = result.Revenue - result.FuelCost - result.Refunds - result.RepairCosts

	if event := drawDayEvent(econ.Events, rng); event != nil {
		result.Event = event
		result.CashDelta += event.CashDelta
		result.ReputationDelta += event.ReputationDelta
	}

	result.NextFuelPrice = econ.NextFuelPrice(ledger.FuelPrice, rng.Float64())
	result.ReputationApplied = ledger.ApplyDay(result.CashDelta, result.ReputationDelta, result.NextFuelPrice)

	return result, nil
}

// simulateRoute runs the assigned bus (if any) over one route.
func simulateRoute(
	g *domain.Game,
	econ Economy,
	route *domain.Route,
	fuelPrice float64,
	rng ports.RandomSource,
) (domain.RouteResult, error) {
	rr := domain.RouteResult{
		Route:           route.Name,
		PlannedDistance: route.TotalDistance(),
	}

	busID, ok := g.Assignments.BusFor(route.Name)
	if !ok {
		return rr, nil
	}

	bus, ok := g.Fleet.Bus(busID)
	if !ok {
		return rr, fmt.Errorf("bus %d: %w", busID, domain.ErrUnknownBus)
	}
	model, err := g.ResolveModel(bus)
	if err != nil {
		return rr, err
	}

	rr.BusID = bus.ID
	rr.Assigned = true

	planned := route.TotalDistance()
	if !route.Servable() || planned <= 0 {
		return rr, nil
	}

	// Fuel check: a short tank runs the route only as far as the fuel lasts.
	required := planned * model.FuelEfficiency
	fraction := 1.0
	if bus.CurrentFuel < required {
		rr.OutOfFuel = true
		rr.DistanceRun = bus.CurrentFuel / model.FuelEfficiency
		rr.FuelUsed = bus.Burn(bus.CurrentFuel)
		fraction = rr.DistanceRun / planned

		stranded := planned - rr.DistanceRun
		rr.DelayMinutes += stranded / econ.AverageSpeedKmh * 60
		rr.ReputationDelta += econ.OutOfFuelReputation
	} else {
		rr.DistanceRun = planned
		rr.FuelUsed = bus.Burn(required)
	}
	rr.FuelCost = rr.FuelUsed * fuelPrice

	rr.Revenue = econ.fareFor(rr.DistanceRun, model.Capacity, route.Tightness)

	// Delay draw: tighter schedules earn more but slip more often.
	if rng.Float64() < econ.DelayProbability(route.Tightness) {
		rr.Delayed = true
		rr.DelayMinutes += econ.DelayMinutes
		rr.Refund = rr.Revenue * econ.RefundRate
		rr.ReputationDelta += econ.DelayReputation
	} else {
		rr.ReputationDelta += econ.OnTimeReputation * fraction
	}

	if incident := drawIncident(econ, rng); incident != nil {
		rr.Incident = incident.Label
		rr.RepairCost = incident.RepairCost
		rr.DelayMinutes += incident.DelayMinutes
		rr.ReputationDelta += incident.ReputationDelta
	}

	return rr, nil
}

// drawIncident rolls the per-route incident trial and, on a hit, picks one
// outcome uniformly with a second draw. An empty table consumes no draws.
func drawIncident(econ Economy, rng ports.RandomSource) *domain.Incident {
	if len(econ.Incidents) == 0 {
		return nil
	}
	if rng.Float64() >= econ.IncidentProbability {
		return nil
	}
	i := int(rng.Float64() * float64(len(econ.Incidents)))
	if i >= len(econ.Incidents) {
		i = len(econ.Incidents) - 1
	}
	incident := econ.Incidents[i]
	return &incident
}

// drawDayEvent runs sequential Bernoulli trials over the ordered table; the first
// success fires and ends the trials, so at most one event happens per day.
// Trials after the first success consume no draws.
func drawDayEvent(events []domain.DayEvent, rng ports.RandomSource) *domain.DayEvent {
	for i := range events {
		if rng.Float64() < events[i].Probability {
			e := events[i]
			return &e
		}
	}
	return nil
}
