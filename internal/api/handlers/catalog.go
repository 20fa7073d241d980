package handlers

import (
	"city-bus-manager/internal/api/dto"
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/services"
	"net/http"
)

type GameHandler struct {
	Session   *services.Session
	Publisher Publisher
}

// Catalog lists the purchasable models, base and pack entries alike.
func (h *GameHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	var res dto.CatalogResponse
	_ = h.Session.Do(func(g *domain.Game) error {
		res = dto.CatalogResponse{
			Version: domain.CatalogVersion,
			Packs:   g.Catalog.Packs(),
			Models:  make([]dto.VehicleModelResponse, 0, g.Catalog.Len()),
		}
		for _, m := range g.Catalog.Models() {
			res.Models = append(res.Models, dto.VehicleModelResponse{
				Model:          m.Model,
				Capacity:       m.Capacity,
				FuelCapacity:   m.FuelCapacity,
				FuelEfficiency: m.FuelEfficiency,
				Price:          m.Price,
				Source:         m.Source,
			})
		}
		return nil
	})
	if res.Packs == nil {
		res.Packs = []string{}
	}
	writeJSON(w, r, http.StatusOK, res)
}

// State returns the whole company: ledger, fleet, network and assignments.
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	var res dto.StateResponse
	_ = h.Session.Do(func(g *domain.Game) error {
		res = toStateResponse(g)
		return nil
	})
	writeJSON(w, r, http.StatusOK, res)
}
