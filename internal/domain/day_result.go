package domain

// DayEvent is one row of the day-level event table. Probability is the chance of
// the event firing when its turn comes up in the ordered trials.
type DayEvent struct {
	Label           string
	Probability     float64
	CashDelta       float64
	ReputationDelta float64
}

// Incident is one row of the per-route incident table: a breakdown or hold-up
// that costs a repair bill and some standing.
type Incident struct {
	Label           string
	RepairCost      float64
	ReputationDelta float64
	DelayMinutes    float64
}

// RouteResult is the per-route breakdown of one simulated day.
// Unassigned routes appear with Assigned false and zero outcome figures.
type RouteResult struct {
	Route           string
	BusID           int
	Assigned        bool
	PlannedDistance float64
	DistanceRun     float64
	FuelUsed        float64
	FuelCost        float64
	Revenue         float64
	Refund          float64
	RepairCost      float64
	Incident        string
	DelayMinutes    float64
	ReputationDelta float64
	OutOfFuel       bool
	Delayed         bool
}

// DayResult reports one simulated day. Its net effects have already been applied
// to the ledger and fleet by the time it is returned; it is not persisted.
type DayResult struct {
	Day           int
	FuelPrice     float64
	NextFuelPrice float64
	Routes        []RouteResult
	Event         *DayEvent

	Revenue     float64
	FuelCost    float64
	Refunds     float64
	RepairCosts float64
	// CashDelta is Revenue - FuelCost - Refunds - RepairCosts + the event's
	// cash delta.
	CashDelta float64
	// ReputationDelta is the unclamped sum; ReputationApplied is what the
	// ledger actually moved by after clamping.
	ReputationDelta   float64
	ReputationApplied float64
}
