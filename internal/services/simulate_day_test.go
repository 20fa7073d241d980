package services

import (
	"city-bus-manager/internal/domain"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

var decker = domain.VehicleModel{
	Model:          "Test Decker",
	Capacity:       80,
	FuelCapacity:   140,
	FuelEfficiency: 0.45,
	Price:          100000,
}

// scriptedRandom hands out a fixed list of draws and fails the test if the
// engine asks for more.
type scriptedRandom struct {
	t     *testing.T
	draws []float64
}

func (s *scriptedRandom) Float64() float64 {
	if len(s.draws) == 0 {
		s.t.Fatalf("random source exhausted")
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v
}

func script(t *testing.T, draws ...float64) *scriptedRandom {
	return &scriptedRandom{t: t, draws: draws}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// quietEconomy is the default economy without day-level events or route
// incidents, so each test controls exactly which draws happen.
func quietEconomy() Economy {
	econ := DefaultEconomy()
	econ.Events = nil
	econ.Incidents = nil
	return econ
}

func newGame(t *testing.T) *domain.Game {
	t.Helper()
	return domain.NewGame("Island Buses", domain.NewCatalog([]domain.VehicleModel{decker}), domain.NewLedger(1000000, 50, 1.6))
}

func servedRoute(t *testing.T, g *domain.Game, name string, tightness float64, legs ...float64) *domain.Bus {
	t.Helper()

	stops := []domain.Stop{{Name: name + " Depot"}}
	for i, km := range legs {
		stops = append(stops, domain.Stop{Name: name + " stop " + string(rune('A'+i)), DistanceFromPrevious: km})
	}
	if _, err := g.AddRoute(name, stops, tightness); err != nil {
		t.Fatalf("add route %q: %v", name, err)
	}

	bus, err := g.BuyBus(decker.Model, "")
	if err != nil {
		t.Fatalf("buy bus: %v", err)
	}
	if _, err := g.Assign(bus.ID, name); err != nil {
		t.Fatalf("assign: %v", err)
	}
	return bus
}

func TestSimulateDayRunsOutOfFuelPartway(t *testing.T) {
	g := newGame(t)
	bus := servedRoute(t, g, "Coastal", 0, 30)
	bus.CurrentFuel = 10
	cashBefore := g.Ledger.Cash

	// delay draw (no delay), fuel price draw (no change)
	result, err := SimulateDay(g, quietEconomy(), script(t, 0.99, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(result.Routes))
	}
	rr := result.Routes[0]

	wantRun := 10 / 0.45
	if !almostEqual(rr.DistanceRun, wantRun) {
		t.Errorf("distance run = %g, want %g", rr.DistanceRun, wantRun)
	}
	if !rr.OutOfFuel {
		t.Errorf("expected out-of-fuel outcome")
	}
	if bus.CurrentFuel != 0 {
		t.Errorf("fuel after day = %g, want 0", bus.CurrentFuel)
	}
	if !almostEqual(rr.FuelUsed, 10) || !almostEqual(rr.FuelCost, 16) {
		t.Errorf("fuel used/cost = %g/%g, want 10/16", rr.FuelUsed, rr.FuelCost)
	}

	fraction := wantRun / 30
	// 66 riders over 22.2 km, 2.50 ticket, 0.8 multiplier at tightness 0
	wantRevenue := 66 * 2.5 * 0.8
	if !almostEqual(rr.Revenue, wantRevenue) {
		t.Errorf("revenue = %g, want %g", rr.Revenue, wantRevenue)
	}

	wantRep := -5 + fraction
	if !almostEqual(rr.ReputationDelta, wantRep) {
		t.Errorf("reputation delta = %g, want %g", rr.ReputationDelta, wantRep)
	}
	wantDelay := (30 - wantRun) / 30 * 60
	if !almostEqual(rr.DelayMinutes, wantDelay) {
		t.Errorf("delay minutes = %g, want %g", rr.DelayMinutes, wantDelay)
	}

	if !almostEqual(g.Ledger.Cash, cashBefore+wantRevenue-16) {
		t.Errorf("cash = %g, want %g", g.Ledger.Cash, cashBefore+wantRevenue-16)
	}
	if !almostEqual(g.Ledger.Reputation, 50+wantRep) {
		t.Errorf("reputation = %g, want %g", g.Ledger.Reputation, 50+wantRep)
	}
	if g.Ledger.DayCount != 1 || result.Day != 1 {
		t.Errorf("day count = %d (result day %d), want 1", g.Ledger.DayCount, result.Day)
	}
}

func TestSimulateDayDelayedRoute(t *testing.T) {
	g := newGame(t)
	servedRoute(t, g, "Express", 1, 10.5, 8.25, 12, 11.25)

	result, err := SimulateDay(g, quietEconomy(), script(t, 0.1, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rr := result.Routes[0]

	if !rr.Delayed || rr.OutOfFuel {
		t.Fatalf("delayed/out-of-fuel = %v/%v, want true/false", rr.Delayed, rr.OutOfFuel)
	}
	// 80 riders, 2.50 ticket, 1.25 multiplier at tightness 1
	if !almostEqual(rr.Revenue, 250) || !almostEqual(rr.Refund, 62.5) {
		t.Errorf("revenue/refund = %g/%g, want 250/62.5", rr.Revenue, rr.Refund)
	}
	if rr.ReputationDelta != -2 || rr.DelayMinutes != 15 {
		t.Errorf("reputation/delay = %g/%g, want -2/15", rr.ReputationDelta, rr.DelayMinutes)
	}
	if !almostEqual(rr.FuelUsed, 42*0.45) {
		t.Errorf("fuel used = %g, want %g", rr.FuelUsed, 42*0.45)
	}
	if !almostEqual(result.CashDelta, 250-62.5-42*0.45*1.6) {
		t.Errorf("cash delta = %g", result.CashDelta)
	}
}

func TestSimulateDayUnassignedRouteDrawsNothing(t *testing.T) {
	g := newGame(t)
	if _, err := g.AddRoute("Ghost", []domain.Stop{{Name: "A"}, {Name: "B", DistanceFromPrevious: 5}}, 0.5); err != nil {
		t.Fatalf("add route: %v", err)
	}

	rng := script(t, 0.5)
	result, err := SimulateDay(g, quietEconomy(), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := result.Routes[0]
	if rr.Assigned || rr.Revenue != 0 || rr.ReputationDelta != 0 || rr.DistanceRun != 0 {
		t.Fatalf("unassigned route result = %+v, want zero outcome", rr)
	}
	if rr.PlannedDistance != 5 {
		t.Errorf("planned distance = %g, want 5", rr.PlannedDistance)
	}
	if len(rng.draws) != 0 {
		t.Errorf("draws left = %d, want 0", len(rng.draws))
	}
}

func TestSimulateDayFirstEventWins(t *testing.T) {
	g := newGame(t)
	econ := quietEconomy()
	econ.Events = []domain.DayEvent{
		{Label: "Break-in", Probability: 0.5, CashDelta: -100},
		{Label: "Private hire", Probability: 0.5, CashDelta: 200, ReputationDelta: 3},
		{Label: "Always", Probability: 1, CashDelta: -9999},
	}
	cashBefore := g.Ledger.Cash

	// first trial fails, second fires, third never drawn, then fuel price
	rng := script(t, 0.7, 0.2, 0.5)
	result, err := SimulateDay(g, econ, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Event == nil || result.Event.Label != "Private hire" {
		t.Fatalf("event = %+v, want Private hire", result.Event)
	}
	if len(rng.draws) != 0 {
		t.Errorf("draws left = %d, want 0", len(rng.draws))
	}
	if g.Ledger.Cash != cashBefore+200 {
		t.Errorf("cash = %g, want %g", g.Ledger.Cash, cashBefore+200)
	}
	if result.ReputationApplied != 3 {
		t.Errorf("reputation applied = %g, want 3", result.ReputationApplied)
	}
}

func TestSimulateDayEmptyGameStillAdvances(t *testing.T) {
	g := newGame(t)
	rng := rand.New(rand.NewSource(7))

	for day := 1; day <= 5; day++ {
		result, err := SimulateDay(g, DefaultEconomy(), rng)
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", day, err)
		}
		if result.Day != day || len(result.Routes) != 0 {
			t.Fatalf("day %d: result day %d with %d routes", day, result.Day, len(result.Routes))
		}
	}
	if g.Ledger.DayCount != 5 {
		t.Fatalf("day count = %d, want 5", g.Ledger.DayCount)
	}
}

func TestSimulateDayReputationStaysInBounds(t *testing.T) {
	g := newGame(t)
	econ := quietEconomy()
	econ.Events = []domain.DayEvent{{Label: "Scandal", Probability: 1, ReputationDelta: -30}}
	rng := rand.New(rand.NewSource(3))

	var applied []float64
	for day := 0; day < 4; day++ {
		result, err := SimulateDay(g, econ, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Ledger.Reputation < domain.MinReputation || g.Ledger.Reputation > domain.MaxReputation {
			t.Fatalf("reputation %g out of bounds", g.Ledger.Reputation)
		}
		if result.ReputationDelta != -30 {
			t.Fatalf("raw delta = %g, want -30", result.ReputationDelta)
		}
		applied = append(applied, result.ReputationApplied)
	}

	want := []float64{-30, -20, 0, 0}
	if !reflect.DeepEqual(applied, want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
}

func TestSimulateDayFuelPriceStaysInBand(t *testing.T) {
	g := newGame(t)
	econ := DefaultEconomy()
	rng := rand.New(rand.NewSource(11))

	for day := 0; day < 200; day++ {
		result, err := SimulateDay(g, econ, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.NextFuelPrice < econ.FuelPriceMin || result.NextFuelPrice > econ.FuelPriceMax {
			t.Fatalf("day %d: fuel price %g outside [%g, %g]", result.Day, result.NextFuelPrice, econ.FuelPriceMin, econ.FuelPriceMax)
		}
		if math.Abs(result.NextFuelPrice-result.FuelPrice) > econ.FuelPriceStep+1e-12 {
			t.Fatalf("day %d: fuel price moved %g, more than one step", result.Day, result.NextFuelPrice-result.FuelPrice)
		}
	}
}

func TestSimulateDayFuelNeverRisesWithoutRefuel(t *testing.T) {
	g := newGame(t)
	bus := servedRoute(t, g, "Long", 0.5, 10.5, 8.25, 12, 11.25)
	rng := rand.New(rand.NewSource(5))

	// 140 L at 18.9 L per run: seven full runs, a partial one, then nothing.
	var last *domain.DayResult
	prev := bus.CurrentFuel
	for day := 1; day <= 9; day++ {
		result, err := SimulateDay(g, quietEconomy(), rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bus.CurrentFuel > prev || bus.CurrentFuel < 0 {
			t.Fatalf("day %d: fuel went from %g to %g", day, prev, bus.CurrentFuel)
		}
		prev = bus.CurrentFuel

		out := result.Routes[0].OutOfFuel
		if day <= 7 && out {
			t.Fatalf("day %d: out of fuel too early", day)
		}
		if day >= 8 && !out {
			t.Fatalf("day %d: expected out of fuel", day)
		}
		last = result
	}

	if last.Routes[0].DistanceRun != 0 || last.Routes[0].Revenue != 0 {
		t.Fatalf("empty tank still ran %g km for %g", last.Routes[0].DistanceRun, last.Routes[0].Revenue)
	}

	if _, err := g.Fleet.Refuel(bus.ID, g.Catalog); err != nil {
		t.Fatalf("refuel: %v", err)
	}
	result, err := SimulateDay(g, quietEconomy(), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Routes[0].OutOfFuel {
		t.Fatalf("refuelled bus ran out of fuel")
	}
}

func TestSimulateDayIsDeterministic(t *testing.T) {
	build := func() *domain.Game {
		g := newGame(t)
		servedRoute(t, g, "Coastal", 0.2, 12, 18)
		servedRoute(t, g, "Express", 0.9, 10.5, 8.25, 12, 11.25)
		if _, err := g.AddRoute("Idle", []domain.Stop{{Name: "X"}, {Name: "Y", DistanceFromPrevious: 3}}, 0); err != nil {
			t.Fatalf("add route: %v", err)
		}
		return g
	}

	a, b := build(), build()
	for day := 0; day < 6; day++ {
		ra, err := SimulateDay(a, DefaultEconomy(), DayRandom(99, a.Ledger.DayCount))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rb, err := SimulateDay(b, DefaultEconomy(), DayRandom(99, b.Ledger.DayCount))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("day %d diverged:\n%+v\n%+v", day+1, ra, rb)
		}
	}
	if !reflect.DeepEqual(a.Ledger, b.Ledger) {
		t.Fatalf("ledgers diverged: %+v vs %+v", a.Ledger, b.Ledger)
	}
}

func TestSimulateDayStructuralFailureMutatesNothing(t *testing.T) {
	g := newGame(t)
	bus := servedRoute(t, g, "Coastal", 0, 30)
	fuel := bus.CurrentFuel
	ledger := *g.Ledger

	// swap in a catalog that no longer knows the bus's model
	g.Catalog = domain.NewCatalog([]domain.VehicleModel{{Model: "Other", Capacity: 10, FuelCapacity: 50, FuelEfficiency: 0.2, Price: 1}})

	_, err := SimulateDay(g, quietEconomy(), script(t))
	if err == nil {
		t.Fatalf("expected structural error")
	}
	if !domain.IsStructural(err) {
		t.Fatalf("error %v is not structural", err)
	}
	var se *domain.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("error %v does not unwrap to *StructuralError", err)
	}

	if bus.CurrentFuel != fuel {
		t.Errorf("fuel changed to %g", bus.CurrentFuel)
	}
	if *g.Ledger != ledger {
		t.Errorf("ledger changed to %+v", *g.Ledger)
	}
}

func TestTightnessTradeOff(t *testing.T) {
	econ := DefaultEconomy()
	prevDelay, prevRevenue := -1.0, -1.0
	for _, tight := range []float64{0, 0.25, 0.5, 0.75, 1} {
		d := econ.DelayProbability(tight)
		r := econ.fareFor(42, 80, tight)
		if d < 0 || d > 1 {
			t.Fatalf("delay probability %g out of [0, 1]", d)
		}
		if d < prevDelay || r < prevRevenue {
			t.Fatalf("tightness %g: delay %g / revenue %g not increasing", tight, d, r)
		}
		prevDelay, prevRevenue = d, r
	}
	if got := econ.DelayProbability(7); got != econ.DelayProbability(1) {
		t.Errorf("out-of-range tightness not clamped: %g", got)
	}
}

func TestSimulateDayUsesEconomyRevenueAndMultiplier(t *testing.T) {
	g := newGame(t)
	bus := servedRoute(t, g, "Coastal", 0.5, 30)
	bus.CurrentFuel = 10

	var gotDistance, gotTightness float64
	econ := quietEconomy()
	econ.Revenue = func(distanceKm float64, capacity int, tightness float64) float64 {
		gotDistance, gotTightness = distanceKm, tightness
		return distanceKm * 10
	}
	econ.RevenueMultiplier = func(float64) float64 { return 3 }

	result, err := SimulateDay(g, econ, script(t, 0.99, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rr := result.Routes[0]

	wantRun := 10 / 0.45
	if !almostEqual(gotDistance, wantRun) {
		t.Errorf("revenue function got distance %g, want distance run %g", gotDistance, wantRun)
	}
	if gotTightness != 0.5 {
		t.Errorf("revenue function got tightness %g, want 0.5", gotTightness)
	}
	if !almostEqual(rr.Revenue, wantRun*10*3) {
		t.Errorf("revenue = %g, want %g", rr.Revenue, wantRun*10*3)
	}

	// without a multiplier the fare is taken as is
	g = newGame(t)
	servedRoute(t, g, "Coastal", 0.5, 30)
	econ.RevenueMultiplier = nil
	result, err = SimulateDay(g, econ, script(t, 0.99, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Routes[0].Revenue; got != 300 {
		t.Errorf("unscaled revenue = %g, want 300", got)
	}
}

func TestSimulateDayRouteIncidents(t *testing.T) {
	g := newGame(t)
	servedRoute(t, g, "Coastal", 0, 30)
	servedRoute(t, g, "Express", 1, 10.5, 8.25, 12, 11.25)

	econ := quietEconomy()
	econ.IncidentProbability = 0.2
	econ.Incidents = []domain.Incident{
		{Label: "Flat tyre", RepairCost: 200, ReputationDelta: -3, DelayMinutes: 30},
		{Label: "Engine trouble", RepairCost: 350, ReputationDelta: -3, DelayMinutes: 45},
		{Label: "Heavy traffic", RepairCost: 0, ReputationDelta: -1, DelayMinutes: 20},
	}
	cashBefore := g.Ledger.Cash

	// Coastal: on time, incident hit, second outcome picked.
	// Express: on time, no incident. Then the fuel price.
	rng := script(t, 0.99, 0.1, 0.5, 0.99, 0.5, 0.5)
	result, err := SimulateDay(g, econ, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rng.draws) != 0 {
		t.Errorf("draws left = %d, want 0", len(rng.draws))
	}

	coastal, express := result.Routes[0], result.Routes[1]
	if coastal.Incident != "Engine trouble" || coastal.RepairCost != 350 || coastal.DelayMinutes != 45 {
		t.Errorf("coastal = %+v, want engine trouble costing 350 and 45 minutes", coastal)
	}
	if coastal.ReputationDelta != 1-3 {
		t.Errorf("coastal reputation = %g, want -2", coastal.ReputationDelta)
	}
	if express.Incident != "" || express.RepairCost != 0 || express.ReputationDelta != 1 {
		t.Errorf("express = %+v, want a clean run", express)
	}

	if result.RepairCosts != 350 {
		t.Errorf("repair costs = %g, want 350", result.RepairCosts)
	}
	// 160 + 250 fares, 30 km and 42 km of fuel at 0.45 L/km and 1.6
	wantCash := 160 + 250 - (30+42)*0.45*1.6 - 350
	if !almostEqual(result.CashDelta, wantCash) {
		t.Errorf("cash delta = %g, want %g", result.CashDelta, wantCash)
	}
	if !almostEqual(g.Ledger.Cash, cashBefore+wantCash) {
		t.Errorf("cash = %g, want %g", g.Ledger.Cash, cashBefore+wantCash)
	}
}
