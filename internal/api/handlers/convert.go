package handlers

import (
	"city-bus-manager/internal/api/dto"
	"city-bus-manager/internal/domain"
)

func toLedgerResponse(l *domain.Ledger) dto.LedgerResponse {
	return dto.LedgerResponse{
		Cash:       l.Cash,
		Reputation: l.Reputation,
		DayCount:   l.DayCount,
		FuelPrice:  l.FuelPrice,
	}
}

func toBusResponse(g *domain.Game, b *domain.Bus) dto.BusResponse {
	res := dto.BusResponse{
		ID:            b.ID,
		FleetNumber:   b.FleetNumber,
		Model:         b.Model,
		CurrentFuel:   b.CurrentFuel,
		Livery:        b.Livery,
		PurchasePrice: b.PurchasePrice,
	}
	if m, ok := g.Catalog.Lookup(b.Model); ok {
		res.FuelCapacity = m.FuelCapacity
	}
	if route, ok := g.AssignedRoute(b.ID); ok {
		res.Route = route
	}
	return res
}

func toRouteResponse(g *domain.Game, r *domain.Route) dto.RouteResponse {
	stops := make([]dto.StopDTO, 0, len(r.Stops()))
	for _, s := range r.Stops() {
		stops = append(stops, dto.StopDTO{Name: s.Name, DistanceFromPrevious: s.DistanceFromPrevious})
	}

	res := dto.RouteResponse{
		Name:          r.Name,
		Tightness:     r.Tightness,
		TotalDistance: r.TotalDistance(),
		Stops:         stops,
	}
	if id, ok := g.Assignments.BusFor(r.Name); ok {
		res.BusID = &id
	}
	return res
}

func toStateResponse(g *domain.Game) dto.StateResponse {
	res := dto.StateResponse{
		CompanyName: g.CompanyName,
		Ledger:      toLedgerResponse(g.Ledger),
		Fleet:       make([]dto.BusResponse, 0, g.Fleet.Len()),
		Routes:      make([]dto.RouteResponse, 0, g.Network.Len()),
		Assignments: make([]dto.AssignResponse, 0, g.Assignments.Len()),
	}
	for _, b := range g.Fleet.Buses() {
		res.Fleet = append(res.Fleet, toBusResponse(g, b))
	}
	for _, r := range g.Network.Routes() {
		res.Routes = append(res.Routes, toRouteResponse(g, r))
	}
	for _, a := range g.Assignments.Entries() {
		res.Assignments = append(res.Assignments, dto.AssignResponse{BusID: a.BusID, Route: a.Route})
	}
	return res
}

func toDayResultResponse(d *domain.DayResult) dto.DayResultResponse {
	res := dto.DayResultResponse{
		Day:               d.Day,
		FuelPrice:         d.FuelPrice,
		NextFuelPrice:     d.NextFuelPrice,
		Routes:            make([]dto.RouteResultResponse, 0, len(d.Routes)),
		Revenue:           d.Revenue,
		FuelCost:          d.FuelCost,
		Refunds:           d.Refunds,
		RepairCosts:       d.RepairCosts,
		CashDelta:         d.CashDelta,
		ReputationDelta:   d.ReputationDelta,
		ReputationApplied: d.ReputationApplied,
	}
	for _, rr := range d.Routes {
		res.Routes = append(res.Routes, dto.RouteResultResponse{
			Route:           rr.Route,
			BusID:           rr.BusID,
			Assigned:        rr.Assigned,
			PlannedDistance: rr.PlannedDistance,
			DistanceRun:     rr.DistanceRun,
			FuelUsed:        rr.FuelUsed,
			FuelCost:        rr.FuelCost,
			Revenue:         rr.Revenue,
			Refund:          rr.Refund,
			Incident:        rr.Incident,
			RepairCost:      rr.RepairCost,
			DelayMinutes:    rr.DelayMinutes,
			ReputationDelta: rr.ReputationDelta,
			OutOfFuel:       rr.OutOfFuel,
			Delayed:         rr.Delayed,
		})
	}
	if d.Event != nil {
		res.Event = &dto.DayEventResponse{
			Label:           d.Event.Label,
			CashDelta:       d.Event.CashDelta,
			ReputationDelta: d.Event.ReputationDelta,
		}
	}
	return res
}
