package api

import (
	"city-bus-manager/internal/adapters/savegame"
	"city-bus-manager/internal/api/handlers"
	"city-bus-manager/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(session *services.Session, store *savegame.Store, hub *Hub, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	var pub handlers.Publisher
	if hub != nil {
		pub = hub
	}
	game := &handlers.GameHandler{Session: session, Publisher: pub}
	saves := &handlers.SaveHandler{Store: store, Session: session, Publisher: pub}

	r.Get("/health", handlers.Health)
	r.Get("/catalog", game.Catalog)
	r.Get("/state", game.State)

	r.Route("/fleet", func(r chi.Router) {
		r.Post("/", game.BuyBus)
		r.Put("/{busID}/fleet-number", game.RenameFleetNumber)
		r.Put("/{busID}/livery", game.ChangeLivery)
		r.Post("/{busID}/refuel", game.Refuel)
	})

	r.Route("/routes", func(r chi.Router) {
		r.Post("/", game.CreateRoute)
		r.Delete("/{name}", game.DeleteRoute)
		r.Put("/{name}/schedule", game.UpdateSchedule)
	})

	r.Post("/assignments", game.Assign)
	r.Delete("/assignments/{busID}", game.Unassign)

	r.Post("/days", game.RunDays)

	if store != nil {
		r.Get("/saves", saves.List)
		r.Put("/saves/{name}", saves.Save)
		r.Post("/saves/{name}/load", saves.Load)
	}

	if hub != nil {
		r.Get("/ws", hub.ServeWs)
	}

	return r
}
