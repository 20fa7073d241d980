package domain

import (
	"fmt"
	"math"
)

// Reputation bounds.
const (
	MinReputation = 0.0
	MaxReputation = 100.0
)

// Company-wide financial and standing state.
// Cash may go negative to signal insolvency; the simulation never refuses to run
// because of it. DayCount counts simulated days and only ever grows.
type Ledger struct {
	Cash       float64
	Reputation float64
	DayCount   int
	FuelPrice  float64
}

func NewLedger(cash, reputation, fuelPrice float64) *Ledger {
	return &Ledger{
		Cash:       cash,
		Reputation: ClampReputation(reputation),
		FuelPrice:  fuelPrice,
	}
}

// ClampReputation bounds v to [MinReputation, MaxReputation].
func ClampReputation(v float64) float64 {
	if v < MinReputation {
		return MinReputation
	}
	if v > MaxReputation {
		return MaxReputation
	}
	return v
}

func (l *Ledger) CanAfford(amount float64) bool {
	return l.Cash >= amount
}

// Debit charges an up-front purchase. It refuses rather than going negative.
func (l *Ledger) Debit(amount float64) error {
	if !l.CanAfford(amount) {
		return fmt.Errorf("debit %.2f with balance %.2f: %w", amount, l.Cash, ErrInsufficientFunds)
	}
	l.Cash -= amount
	return nil
}

// ApplyDay books one simulated day: the net cash delta (which may push cash
// below zero), the reputation delta with clamping, the next day's fuel price,
// and the day counter. It returns the reputation change actually applied.
func (l *Ledger) ApplyDay(cashDelta, reputationDelta, nextFuelPrice float64) float64 {
	before := l.Reputation
	l.Cash += cashDelta
	l.Reputation = ClampReputation(l.Reputation + reputationDelta)
	l.FuelPrice = nextFuelPrice
	l.DayCount++
	return l.Reputation - before
}

// RestoreLedger rebuilds a persisted ledger. Values the engine could never have
// produced are reported as structural errors.
func RestoreLedger(cash, reputation float64, dayCount int, fuelPrice float64) (*Ledger, error) {
	const op = "restore ledger"
	switch {
	case math.IsNaN(cash) || math.IsInf(cash, 0):
		return nil, structuralf(op, "cash %g is not a finite number", cash)
	case math.IsNaN(reputation) || reputation < MinReputation || reputation > MaxReputation:
		return nil, structuralf(op, "reputation %g outside [%g, %g]", reputation, MinReputation, MaxReputation)
	case dayCount < 0:
		return nil, structuralf(op, "negative day count %d", dayCount)
	case math.IsNaN(fuelPrice) || fuelPrice < 0:
		return nil, structuralf(op, "fuel price %g is negative", fuelPrice)
	}
	return &Ledger{Cash: cash, Reputation: reputation, DayCount: dayCount, FuelPrice: fuelPrice}, nil
}
