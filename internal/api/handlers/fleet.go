package handlers

import (
	"city-bus-manager/internal/api/dto"
	"city-bus-manager/internal/domain"
	"net/http"
)

func (h *GameHandler) BuyBus(w http.ResponseWriter, r *http.Request) {
	var req dto.BuyBusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var res dto.BusResponse
	err := h.Session.Do(func(g *domain.Game) error {
		bus, err := g.BuyBus(req.Model, req.FleetNumber)
		if err != nil {
			return err
		}
		res = toBusResponse(g, bus)
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, res)
}

func (h *GameHandler) RenameFleetNumber(w http.ResponseWriter, r *http.Request) {
	id, ok := busIDParam(w, r)
	if !ok {
		return
	}
	var req dto.FleetNumberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.updateBus(w, r, id, func(g *domain.Game) error {
		return g.Fleet.RenameFleetNumber(id, req.FleetNumber)
	})
}

func (h *GameHandler) ChangeLivery(w http.ResponseWriter, r *http.Request) {
	id, ok := busIDParam(w, r)
	if !ok {
		return
	}
	var req dto.LiveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.updateBus(w, r, id, func(g *domain.Game) error {
		return g.Fleet.ChangeLivery(id, req.Livery, g.Ledger)
	})
}

// Refuel fills the tank. Fuel is billed as it burns, so this is free.
func (h *GameHandler) Refuel(w http.ResponseWriter, r *http.Request) {
	id, ok := busIDParam(w, r)
	if !ok {
		return
	}

	var res dto.RefuelResponse
	err := h.Session.Do(func(g *domain.Game) error {
		added, err := g.Fleet.Refuel(id, g.Catalog)
		if err != nil {
			return err
		}
		bus, _ := g.Fleet.Bus(id)
		res = dto.RefuelResponse{Bus: toBusResponse(g, bus), LitresAdded: added}
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *GameHandler) updateBus(w http.ResponseWriter, r *http.Request, id int, fn func(g *domain.Game) error) {
	var res dto.BusResponse
	err := h.Session.Do(func(g *domain.Game) error {
		if err := fn(g); err != nil {
			return err
		}
		bus, _ := g.Fleet.Bus(id)
		res = toBusResponse(g, bus)
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}
