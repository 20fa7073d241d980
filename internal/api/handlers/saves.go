package handlers

import (
	"city-bus-manager/internal/adapters/savegame"
	"city-bus-manager/internal/api/dto"
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/ports"
	"city-bus-manager/internal/services"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type SaveHandler struct {
	Store     *savegame.Store
	Session   *services.Session
	Publisher Publisher
}

func toSaveResponse(s ports.SaveSummary) dto.SaveResponse {
	return dto.SaveResponse{
		Name:        s.Name,
		CompanyName: s.CompanyName,
		Day:         s.Day,
		Cash:        s.Cash,
		SavedAt:     s.SavedAt,
	}
}

func (h *SaveHandler) List(w http.ResponseWriter, r *http.Request) {
	saves, err := h.Store.List(r.Context())
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	res := dto.ListSavesResponse{Saves: make([]dto.SaveResponse, 0, len(saves))}
	for _, s := range saves {
		res.Saves = append(res.Saves, toSaveResponse(s))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Save writes the current game to the named slot, replacing what was there.
func (h *SaveHandler) Save(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "save name is required")
		return
	}

	summary, err := h.Store.Save(r.Context(), name, h.Session)
	if err != nil {
		writeGameError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toSaveResponse(summary))
}

// Load replaces the running game with the named slot.
func (h *SaveHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Load(r.Context(), chi.URLParam(r, "name"), h.Session); err != nil {
		writeGameError(w, r, err)
		return
	}

	var res dto.StateResponse
	_ = h.Session.Do(func(g *domain.Game) error {
		res = toStateResponse(g)
		return nil
	})
	publisherOrNoop(h.Publisher).Publish("game_loaded", res)
	writeJSON(w, r, http.StatusOK, res)
}
