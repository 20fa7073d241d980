package savegame

import (
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// Encode captures the full game state plus the seed its day stream derives from.
func Encode(g *domain.Game, seed int64) Record {
	rec := Record{
		Version:        Version,
		CatalogVersion: domain.CatalogVersion,
		Packs:          g.Catalog.Packs(),
		CompanyName:    g.CompanyName,
		Seed:           seed,
		NextBusID:      g.Fleet.NextID(),
		Buses:          make([]BusRecord, 0, g.Fleet.Len()),
		Routes:         make([]RouteRecord, 0, g.Network.Len()),
		Assignments:    make([]AssignmentRecord, 0, g.Assignments.Len()),
		Ledger: LedgerRecord{
			Cash:       g.Ledger.Cash,
			Reputation: g.Ledger.Reputation,
			DayCount:   g.Ledger.DayCount,
			FuelPrice:  g.Ledger.FuelPrice,
		},
	}

	for _, b := range g.Fleet.Buses() {
		rec.Buses = append(rec.Buses, BusRecord{
			ID:            b.ID,
			FleetNumber:   b.FleetNumber,
			Model:         b.Model,
			CurrentFuel:   b.CurrentFuel,
			Livery:        b.Livery,
			PurchasePrice: b.PurchasePrice,
		})
	}

	for _, r := range g.Network.Routes() {
		stops := make([]StopRecord, 0, len(r.Stops()))
		for _, s := range r.Stops() {
			stops = append(stops, StopRecord{Name: s.Name, DistanceFromPrevious: s.DistanceFromPrevious})
		}
		rec.Routes = append(rec.Routes, RouteRecord{Name: r.Name, Tightness: r.Tightness, Stops: stops})
	}

	for _, a := range g.Assignments.Entries() {
		rec.Assignments = append(rec.Assignments, AssignmentRecord{Route: a.Route, BusID: a.BusID})
	}

	return rec
}

// Decode rebuilds a game against the given catalog and returns it with its seed.
// The result has passed the structural integrity check.
func Decode(rec Record, catalog *domain.Catalog) (*domain.Game, int64, error) {
	if rec.Version != Version {
		return nil, 0, fmt.Errorf("decode save: unsupported version %d (want %d)", rec.Version, Version)
	}
	if catalog == nil {
		return nil, 0, errors.New("decode save: catalog must be non-nil")
	}

	warnMissingPacks(rec.Packs, catalog.Packs())

	ledger, err := domain.RestoreLedger(rec.Ledger.Cash, rec.Ledger.Reputation, rec.Ledger.DayCount, rec.Ledger.FuelPrice)
	if err != nil {
		return nil, 0, fmt.Errorf("decode save: %w", err)
	}

	buses := make([]*domain.Bus, 0, len(rec.Buses))
	for _, b := range rec.Buses {
		livery := b.Livery
		if livery == "" {
			livery = domain.DefaultLivery
		}
		buses = append(buses, &domain.Bus{
			ID:            b.ID,
			FleetNumber:   b.FleetNumber,
			Model:         b.Model,
			CurrentFuel:   b.CurrentFuel,
			Livery:        livery,
			PurchasePrice: b.PurchasePrice,
		})
	}
	fleet, err := domain.RestoreFleet(buses, rec.NextBusID)
	if err != nil {
		return nil, 0, fmt.Errorf("decode save: %w", err)
	}

	routes := make([]*domain.Route, 0, len(rec.Routes))
	for i, r := range rec.Routes {
		stops := make([]domain.Stop, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, domain.Stop{Name: s.Name, DistanceFromPrevious: s.DistanceFromPrevious})
		}
		route, err := domain.NewRoute(r.Name, stops, r.Tightness)
		if err != nil {
			return nil, 0, fmt.Errorf("decode save: route #%d: %w", i+1, err)
		}
		routes = append(routes, route)
	}
	network, err := domain.RestoreNetwork(routes)
	if err != nil {
		return nil, 0, fmt.Errorf("decode save: %w", err)
	}

	g := domain.NewGame(rec.CompanyName, catalog, ledger)
	g.Fleet = fleet
	g.Network = network

	entries := make([]domain.Assignment, 0, len(rec.Assignments))
	for _, a := range rec.Assignments {
		entries = append(entries, domain.Assignment{Route: a.Route, BusID: a.BusID})
	}
	if err := g.RestoreAssignments(entries); err != nil {
		return nil, 0, fmt.Errorf("decode save: %w", err)
	}

	return g, rec.Seed, nil
}

func warnMissingPacks(saved, loaded []string) {
	have := make(map[string]struct{}, len(loaded))
	for _, p := range loaded {
		have[p] = struct{}{}
	}
	for _, p := range saved {
		if _, ok := have[p]; !ok {
			log.Printf("WARNING: save was made with pack %q, which is not loaded", p)
		}
	}
}

// Marshal encodes a game as an indented JSON document.
func Marshal(g *domain.Game, seed int64) ([]byte, error) {
	data, err := json.MarshalIndent(Encode(g, seed), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal save: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON document produced by Marshal.
func Unmarshal(data []byte, catalog *domain.Catalog) (*domain.Game, int64, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, 0, fmt.Errorf("unmarshal save: parse json: %w", err)
	}
	return Decode(rec, catalog)
}

// Summarize describes a game for the save listing.
func Summarize(name string, g *domain.Game, savedAt time.Time) ports.SaveSummary {
	return ports.SaveSummary{
		Name:        name,
		CompanyName: g.CompanyName,
		Day:         g.Ledger.DayCount,
		Cash:        g.Ledger.Cash,
		SavedAt:     savedAt.UTC(),
	}
}
