package handlers

import (
	"city-bus-manager/internal/api/dto"
	"city-bus-manager/internal/domain"
	"fmt"
	"io"
	"log"
	"net/http"
)

// MaxDaysPerRequest caps how far one POST /days can fast-forward.
const MaxDaysPerRequest = 365

// RunDays advances the simulation. The body is optional; an empty body runs one day.
func (h *GameHandler) RunDays(w http.ResponseWriter, r *http.Request) {
	req := dto.RunDaysRequest{Days: 1}
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	} else {
		_, _ = io.Copy(io.Discard, r.Body)
	}
	if req.Days < 1 || req.Days > MaxDaysPerRequest {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", MaxDaysPerRequest))
		return
	}

	pub := publisherOrNoop(h.Publisher)
	res := dto.RunDaysResponse{Days: make([]dto.DayResultResponse, 0, req.Days)}
	status := http.StatusOK
	for i := 0; i < req.Days; i++ {
		result, err := h.Session.RunDay(r.Context())
		if err != nil {
			if len(res.Days) == 0 {
				writeGameError(w, r, err)
				return
			}
			// Earlier days are already on the ledger; report them with the failure.
			log.Printf("run days stopped early: completed=%d requested=%d err=%v", len(res.Days), req.Days, err)
			status, res.Error = gameErrorMessage(r, err)
			break
		}
		day := toDayResultResponse(result)
		pub.Publish("day_result", day)
		res.Days = append(res.Days, day)
	}

	_ = h.Session.Do(func(g *domain.Game) error {
		res.Ledger = toLedgerResponse(g.Ledger)
		return nil
	})
	writeJSON(w, r, status, res)
}
