package services

import (
	"city-bus-manager/internal/config"
	"city-bus-manager/internal/domain"
	"math"
)

// RevenueFunc prices one route-day: distance in km, bus capacity in seats and
// schedule tightness in [0, 1] in, fare income out.
type RevenueFunc func(distanceKm float64, capacity int, tightness float64) float64

// TightnessCurve maps schedule tightness to a bounded quantity.
type TightnessCurve func(tightness float64) float64

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LinearCurve returns a curve rising from lo at tightness 0 to hi at tightness 1.
// Input outside [0, 1] is clamped, so the output is always within [lo, hi].
func LinearCurve(lo, hi float64) TightnessCurve {
	return func(t float64) float64 {
		if math.IsNaN(t) {
			t = 0
		}
		t = clamp(t, domain.MinTightness, domain.MaxTightness)
		return lo + (hi-lo)*t
	}
}

// FareRevenue charges a flat ticket to every rider. Ridership grows with the
// distance run and is capped by the bus's seats. Tightness is left to the
// economy's RevenueMultiplier.
func FareRevenue(ticketPrice, passengersPerKm float64) RevenueFunc {
	return func(distanceKm float64, capacity int, _ float64) float64 {
		if distanceKm <= 0 || capacity <= 0 {
			return 0
		}
		riders := math.Min(float64(capacity), math.Floor(distanceKm*passengersPerKm))
		return riders * ticketPrice
	}
}

// Economy is the tunable rule set the day simulation runs under. Swapping the
// revenue function or the event table changes the economics without touching
// the state-transition logic.
//
// A route's fare income is Revenue(distance run, seats, tightness) scaled by
// RevenueMultiplier(tightness); a nil multiplier leaves it unscaled.
type Economy struct {
	Revenue           RevenueFunc
	RevenueMultiplier TightnessCurve
	DelayProbability  TightnessCurve
	Events            []domain.DayEvent

	// IncidentProbability is the per-route chance of a breakdown-style
	// incident; which one is picked uniformly from Incidents.
	IncidentProbability float64
	Incidents           []domain.Incident

	OnTimeReputation    float64
	DelayReputation     float64
	OutOfFuelReputation float64
	DelayMinutes        float64
	RefundRate          float64
	AverageSpeedKmh     float64

	FuelPriceMin  float64
	FuelPriceMax  float64
	FuelPriceStep float64
}

// NewEconomy builds the rule set described by a balance file.
func NewEconomy(b config.Balance) Economy {
	events := make([]domain.DayEvent, 0, len(b.Events))
	for _, e := range b.Events {
		events = append(events, domain.DayEvent{
			Label:           e.Label,
			Probability:     e.Probability,
			CashDelta:       e.CashDelta,
			ReputationDelta: e.ReputationDelta,
		})
	}

	incidents := make([]domain.Incident, 0, len(b.Incidents.Outcomes))
	for _, o := range b.Incidents.Outcomes {
		incidents = append(incidents, domain.Incident{
			Label:           o.Label,
			RepairCost:      o.RepairCost,
			ReputationDelta: o.ReputationDelta,
			DelayMinutes:    o.DelayMinutes,
		})
	}

	return Economy{
		Revenue:           FareRevenue(b.TicketPrice, b.PassengersPerKm),
		RevenueMultiplier: LinearCurve(b.RevenueCurve.Min, b.RevenueCurve.Max),
		DelayProbability:  LinearCurve(b.DelayCurve.Min, b.DelayCurve.Max),
		Events:            events,

		IncidentProbability: b.Incidents.Probability,
		Incidents:           incidents,

		OnTimeReputation:    b.OnTimeReputation,
		DelayReputation:     b.DelayReputation,
		OutOfFuelReputation: b.OutOfFuelReputation,
		DelayMinutes:        b.DelayMinutes,
		RefundRate:          b.RefundRate,
		AverageSpeedKmh:     b.AverageSpeedKmh,

		FuelPriceMin:  b.FuelPrice.Min,
		FuelPriceMax:  b.FuelPrice.Max,
		FuelPriceStep: b.FuelPrice.Step,
	}
}

// DefaultEconomy is NewEconomy over the built-in balance.
func DefaultEconomy() Economy {
	return NewEconomy(config.DefaultBalance())
}

// NextFuelPrice moves the price by a uniform step in [-FuelPriceStep, +FuelPriceStep]
// and clamps it to the configured band.
func (e Economy) NextFuelPrice(current float64, draw float64) float64 {
	delta := (draw*2 - 1) * e.FuelPriceStep
	return clamp(current+delta, e.FuelPriceMin, e.FuelPriceMax)
}

// fareFor prices one route-day over the distance actually run.
func (e Economy) fareFor(distanceKm float64, capacity int, tightness float64) float64 {
	fare := e.Revenue(distanceKm, capacity, tightness)
	if e.RevenueMultiplier != nil {
		fare *= e.RevenueMultiplier(tightness)
	}
	return fare
}
