package dto

type VehicleModelResponse struct {
	Model          string  `json:"model"`
	Capacity       int     `json:"capacity"`
	FuelCapacity   float64 `json:"fuel_capacity"`
	FuelEfficiency float64 `json:"fuel_efficiency"`
	Price          int64   `json:"price"`
	Source         string  `json:"source,omitempty"`
}

type CatalogResponse struct {
	Version string                 `json:"version"`
	Packs   []string               `json:"packs"`
	Models  []VehicleModelResponse `json:"models"`
}

type BuyBusRequest struct {
	Model       string `json:"model"`
	FleetNumber string `json:"fleet_number"`
}

type FleetNumberRequest struct {
	FleetNumber string `json:"fleet_number"`
}

type LiveryRequest struct {
	Livery string `json:"livery"`
}

type BusResponse struct {
	ID            int     `json:"id"`
	FleetNumber   string  `json:"fleet_number"`
	Model         string  `json:"model"`
	CurrentFuel   float64 `json:"current_fuel"`
	FuelCapacity  float64 `json:"fuel_capacity"`
	Livery        string  `json:"livery"`
	PurchasePrice int64   `json:"purchase_price"`
	Route         string  `json:"route,omitempty"`
}

type RefuelResponse struct {
	Bus         BusResponse `json:"bus"`
	LitresAdded float64     `json:"litres_added"`
}

type StopDTO struct {
	Name                 string  `json:"name"`
	DistanceFromPrevious float64 `json:"distance_from_previous"`
}

type CreateRouteRequest struct {
	Name      string    `json:"name"`
	Stops     []StopDTO `json:"stops"`
	Tightness float64   `json:"tightness"`
}

type ScheduleRequest struct {
	Tightness *float64 `json:"tightness"`
}

type RouteResponse struct {
	Name          string    `json:"name"`
	Tightness     float64   `json:"tightness"`
	TotalDistance float64   `json:"total_distance"`
	Stops         []StopDTO `json:"stops"`
	BusID         *int      `json:"bus_id,omitempty"`
}

type AssignRequest struct {
	BusID int    `json:"bus_id"`
	Route string `json:"route"`
}

type AssignResponse struct {
	BusID   int    `json:"bus_id"`
	Route   string `json:"route"`
	Warning string `json:"warning,omitempty"`
}

type LedgerResponse struct {
	Cash       float64 `json:"cash"`
	Reputation float64 `json:"reputation"`
	DayCount   int     `json:"day_count"`
	FuelPrice  float64 `json:"fuel_price"`
}

type StateResponse struct {
	CompanyName string           `json:"company_name"`
	Ledger      LedgerResponse   `json:"ledger"`
	Fleet       []BusResponse    `json:"fleet"`
	Routes      []RouteResponse  `json:"routes"`
	Assignments []AssignResponse `json:"assignments"`
}
