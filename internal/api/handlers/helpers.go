package handlers

import (
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/ports"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Publisher pushes a message to live clients.
type Publisher interface {
	Publish(kind string, payload any)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, any) {}

func publisherOrNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func busIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "busID"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "bus id must be a positive integer")
		return 0, false
	}
	return id, true
}

// statusFor maps a game error to an HTTP status. Rejections are the player's
// to fix; structural errors mean corrupt state and are the server's problem.
func statusFor(err error) int {
	switch {
	case domain.IsStructural(err):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrUnknownBus),
		errors.Is(err, domain.ErrUnknownRoute),
		errors.Is(err, domain.ErrUnknownModel),
		errors.Is(err, ports.ErrSaveNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrDuplicateFleetNumber),
		errors.Is(err, domain.ErrDuplicateRoute),
		errors.Is(err, domain.ErrAlreadyAssigned),
		errors.Is(err, domain.ErrSameLivery):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTightness),
		errors.Is(err, domain.ErrInvalidStop),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrRouteTooShort),
		errors.Is(err, domain.ErrInvalidModel),
		errors.Is(err, domain.ErrUnknownLivery):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeGameError reports a rejected operation. Server-side failures are logged
// and hidden behind a generic message.
func writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := gameErrorMessage(r, err)
	writeError(w, r, status, msg)
}

func gameErrorMessage(r *http.Request, err error) (int, string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		return status, "internal server error"
	}
	return status, err.Error()
}
