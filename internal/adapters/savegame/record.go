package savegame

// Version is the save format written by this build. Loading any other version fails.
const Version = 1

// Record is the persisted form of a game. Buses reference catalog models by
// name; the catalog itself is rebuilt from the base models and packs at load.
type Record struct {
	Version        int      `json:"version"`
	CatalogVersion string   `json:"catalog_version"`
	Packs          []string `json:"packs"`

	CompanyName string `json:"company_name"`
	Seed        int64  `json:"seed"`
	NextBusID   int    `json:"next_bus_id"`

	Buses       []BusRecord        `json:"buses"`
	Routes      []RouteRecord      `json:"routes"`
	Assignments []AssignmentRecord `json:"assignments"`
	Ledger      LedgerRecord       `json:"ledger"`
}

type BusRecord struct {
	ID            int     `json:"id"`
	FleetNumber   string  `json:"fleet_number"`
	Model         string  `json:"model"`
	CurrentFuel   float64 `json:"current_fuel"`
	Livery        string  `json:"livery"`
	PurchasePrice int64   `json:"purchase_price"`
}

type StopRecord struct {
	Name                 string  `json:"name"`
	DistanceFromPrevious float64 `json:"distance_from_previous"`
}

// RouteRecord keeps routes in creation order; the slice order is the order the
// day simulation visits them in.
type RouteRecord struct {
	Name      string       `json:"name"`
	Tightness float64      `json:"tightness"`
	Stops     []StopRecord `json:"stops"`
}

type AssignmentRecord struct {
	Route string `json:"route"`
	BusID int    `json:"bus_id"`
}

type LedgerRecord struct {
	Cash       float64 `json:"cash"`
	Reputation float64 `json:"reputation"`
	DayCount   int     `json:"day_count"`
	FuelPrice  float64 `json:"fuel_price"`
}
