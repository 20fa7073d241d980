package handlers

import (
	"city-bus-manager/internal/api/dto"
	"city-bus-manager/internal/domain"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

func routeNameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// CreateRoute adds a route, charging the per-stop price up front.
func (h *GameHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, domain.Stop{Name: s.Name, DistanceFromPrevious: s.DistanceFromPrevious})
	}

	var res dto.RouteResponse
	err := h.Session.Do(func(g *domain.Game) error {
		route, err := g.AddRoute(req.Name, stops, req.Tightness)
		if err != nil {
			return err
		}
		res = toRouteResponse(g, route)
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, res)
}

func (h *GameHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	name := routeNameParam(r)
	err := h.Session.Do(func(g *domain.Game) error {
		return g.DeleteRoute(name)
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Tightness == nil {
		writeError(w, r, http.StatusBadRequest, "tightness is required")
		return
	}

	name := routeNameParam(r)
	var res dto.RouteResponse
	err := h.Session.Do(func(g *domain.Game) error {
		if err := g.Network.UpdateSchedule(name, *req.Tightness); err != nil {
			return err
		}
		route, _ := g.Network.Route(name)
		res = toRouteResponse(g, route)
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Assign puts a bus on a route. A capacity mismatch still succeeds and is
// reported in the warning field.
func (h *GameHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var res dto.AssignResponse
	err := h.Session.Do(func(g *domain.Game) error {
		warning, err := g.Assign(req.BusID, req.Route)
		if err != nil {
			return err
		}
		route, _ := g.AssignedRoute(req.BusID)
		res = dto.AssignResponse{BusID: req.BusID, Route: route}
		if warning != nil {
			res.Warning = warning.String()
		}
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *GameHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := busIDParam(w, r)
	if !ok {
		return
	}

	err := h.Session.Do(func(g *domain.Game) error {
		return g.Unassign(id)
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
