package main

import (
	"city-bus-manager/internal/adapters/packs"
	"city-bus-manager/internal/adapters/repositories"
	"city-bus-manager/internal/adapters/savegame"
	"city-bus-manager/internal/config"
	"city-bus-manager/internal/domain"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const usage = `usage:
  dbtool init
  dbtool import -name <slot> -file <save.json>
  dbtool list`

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	log.Println("Initializing database schema...")
	repo, conn, err := repositories.OpenSaveRepository(ctx, cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	defer conn.Close()
	log.Println("Schema ready.")

	switch os.Args[1] {
	case "init":
		return

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		name := fs.String("name", "", "save slot name")
		file := fs.String("file", "", "path to a JSON save")
		_ = fs.Parse(os.Args[2:])
		if *name == "" || *file == "" {
			log.Fatal(usage)
		}

		policy, err := domain.ParseMergePolicy(cfg.MergePolicy)
		if err != nil {
			log.Fatal(err)
		}
		catalog := domain.BaseCatalog()
		if _, err := packs.LoadDir(cfg.PacksDir, catalog, policy); err != nil {
			log.Fatal(err)
		}

		log.Printf("Importing %s as %q...", *file, *name)
		summary, err := savegame.NewStore(repo, catalog).Import(ctx, *name, *file)
		if err != nil {
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("Import complete. company=%q day=%d cash=%.2f", summary.CompanyName, summary.Day, summary.Cash)

	case "list":
		saves, err := repo.ListSaves(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range saves {
			fmt.Printf("%-20s %-24s day=%-5d cash=%12.2f saved=%s\n", s.Name, s.CompanyName, s.Day, s.Cash, s.SavedAt.Format("2006-01-02 15:04"))
		}

	default:
		log.Fatal(usage)
	}
}
