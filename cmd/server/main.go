package main

import (
	"city-bus-manager/internal/adapters/packs"
	"city-bus-manager/internal/adapters/repositories"
	"city-bus-manager/internal/adapters/savegame"
	"city-bus-manager/internal/api"
	"city-bus-manager/internal/config"
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/services"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It builds the catalog and economy, wires the save backend behind its port
// and starts the HTTP server.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	balance, err := config.LoadBalance(cfg.BalancePath)
	if err != nil {
		log.Fatal(err)
	}

	policy, err := domain.ParseMergePolicy(cfg.MergePolicy)
	if err != nil {
		log.Fatal(err)
	}

	catalog := domain.BaseCatalog()
	if _, err := packs.LoadDir(cfg.PacksDir, catalog, policy); err != nil {
		log.Fatal(err)
	}
	log.Printf("catalog version=%s models=%d packs=%d policy=%s", domain.CatalogVersion, catalog.Len(), len(catalog.Packs()), policy)

	repo, conn, err := repositories.OpenSaveRepository(ctx, cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ledger := domain.NewLedger(balance.StartingCash, balance.StartingReputation, balance.FuelPrice.Start)
	game := domain.NewGame(cfg.CompanyName, catalog, ledger)
	session := services.NewSession(game, services.NewEconomy(balance), cfg.Seed)
	store := savegame.NewStore(repo, catalog)

	if cfg.AutoLoad != "" {
		if err := store.Load(ctx, cfg.AutoLoad, session); err != nil {
			log.Fatalf("load save %q: %v", cfg.AutoLoad, err)
		}
		log.Printf("resumed save=%q", cfg.AutoLoad)
	}

	hub := api.NewHub()
	go hub.Run(ctx)

	router := api.NewRouter(session, store, hub, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s company=%q seed=%d", cfg.Port, cfg.CompanyName, cfg.Seed)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
