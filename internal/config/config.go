package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process configuration read from the environment.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	BalancePath string
	PacksDir    string
	MergePolicy string
	CompanyName string
	Seed        int64
	AutoLoad    string
	CORSOrigins []string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return &Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/saves.db"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		BalancePath: Get("BALANCE_PATH", "data/balance.yaml"),
		PacksDir:    Get("PACKS_DIR", "dlcs_and_mods"),
		MergePolicy: Get("MERGE_POLICY", "override"),
		CompanyName: Get("COMPANY_NAME", "My Bus Company"),
		Seed:        GetInt64("SEED", 1),
		AutoLoad:    strings.TrimSpace(os.Getenv("LOAD_SAVE")),
		CORSOrigins: GetList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt64 is Get for integers; unparsable values fall back with a warning.
func GetInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetList splits a comma-separated value, dropping blank items.
func GetList(key string, fallback []string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
