package dto

type RunDaysRequest struct {
	Days int `json:"days"`
}

type DayEventResponse struct {
	Label           string  `json:"label"`
	CashDelta       float64 `json:"cash_delta"`
	ReputationDelta float64 `json:"reputation_delta"`
}

type RouteResultResponse struct {
	Route           string  `json:"route"`
	BusID           int     `json:"bus_id,omitempty"`
	Assigned        bool    `json:"assigned"`
	PlannedDistance float64 `json:"planned_distance"`
	DistanceRun     float64 `json:"distance_run"`
	FuelUsed        float64 `json:"fuel_used"`
	FuelCost        float64 `json:"fuel_cost"`
	Revenue         float64 `json:"revenue"`
	Refund          float64 `json:"refund"`
	Incident        string  `json:"incident,omitempty"`
	RepairCost      float64 `json:"repair_cost"`
	DelayMinutes    float64 `json:"delay_minutes"`
	ReputationDelta float64 `json:"reputation_delta"`
	OutOfFuel       bool    `json:"out_of_fuel"`
	Delayed         bool    `json:"delayed"`
}

type DayResultResponse struct {
	Day               int                   `json:"day"`
	FuelPrice         float64               `json:"fuel_price"`
	NextFuelPrice     float64               `json:"next_fuel_price"`
	Routes            []RouteResultResponse `json:"routes"`
	Event             *DayEventResponse     `json:"event,omitempty"`
	Revenue           float64               `json:"revenue"`
	FuelCost          float64               `json:"fuel_cost"`
	Refunds           float64               `json:"refunds"`
	RepairCosts       float64               `json:"repair_costs"`
	CashDelta         float64               `json:"cash_delta"`
	ReputationDelta   float64               `json:"reputation_delta"`
	ReputationApplied float64               `json:"reputation_applied"`
}

// RunDaysResponse lists the days that ran. When a run stops early, Error says
// why and Days still holds every day that was applied before it.
type RunDaysResponse struct {
	Days   []DayResultResponse `json:"days"`
	Ledger LedgerResponse      `json:"ledger"`
	Error  string              `json:"error,omitempty"`
}
