package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Curve is a linear, clamped function of schedule tightness: Min at 0, Max at 1.
type Curve struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// EventConfig is one row of the day-level event table.
type EventConfig struct {
	Label           string  `yaml:"label" json:"label"`
	Probability     float64 `yaml:"probability" json:"probability"`
	CashDelta       float64 `yaml:"cash_delta" json:"cash_delta"`
	ReputationDelta float64 `yaml:"reputation_delta" json:"reputation_delta"`
}

// IncidentOutcome is one possible per-route incident.
type IncidentOutcome struct {
	Label           string  `yaml:"label" json:"label"`
	RepairCost      float64 `yaml:"repair_cost" json:"repair_cost"`
	ReputationDelta float64 `yaml:"reputation_delta" json:"reputation_delta"`
	DelayMinutes    float64 `yaml:"delay_minutes" json:"delay_minutes"`
}

// IncidentConfig is the per-route incident table. Each served route rolls
// once against Probability; on a hit one outcome is picked uniformly.
type IncidentConfig struct {
	Probability float64           `yaml:"probability" json:"probability"`
	Outcomes    []IncidentOutcome `yaml:"outcomes" json:"outcomes"`
}

// FuelPriceConfig bounds the daily fuel price random walk.
type FuelPriceConfig struct {
	Start float64 `yaml:"start" json:"start"`
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	Step  float64 `yaml:"step" json:"step"`
}

// Balance stores the game's tuning variables, loaded from a YAML file.
type Balance struct {
	StartingCash       float64 `yaml:"starting_cash" json:"starting_cash"`
	StartingReputation float64 `yaml:"starting_reputation" json:"starting_reputation"`

	// Revenue model.
	TicketPrice     float64 `yaml:"ticket_price" json:"ticket_price"`
	PassengersPerKm float64 `yaml:"passengers_per_km" json:"passengers_per_km"`
	RevenueCurve    Curve   `yaml:"revenue_multiplier" json:"revenue_multiplier"`

	// Delay / reputation trade-off.
	DelayCurve          Curve   `yaml:"delay_probability" json:"delay_probability"`
	OnTimeReputation    float64 `yaml:"on_time_reputation" json:"on_time_reputation"`
	DelayReputation     float64 `yaml:"delay_reputation" json:"delay_reputation"`
	DelayMinutes        float64 `yaml:"delay_minutes" json:"delay_minutes"`
	RefundRate          float64 `yaml:"refund_rate" json:"refund_rate"`
	OutOfFuelReputation float64 `yaml:"out_of_fuel_reputation" json:"out_of_fuel_reputation"`
	AverageSpeedKmh     float64 `yaml:"average_speed_kmh" json:"average_speed_kmh"`

	FuelPrice FuelPriceConfig `yaml:"fuel_price" json:"fuel_price"`
	Events    []EventConfig   `yaml:"events" json:"events"`
	Incidents IncidentConfig  `yaml:"incidents" json:"incidents"`
}

// DefaultBalance returns the built-in tuning used when no balance file exists.
func DefaultBalance() Balance {
	return Balance{
		StartingCash:       2500000,
		StartingReputation: 50,

		TicketPrice:     2.50,
		PassengersPerKm: 3,
		RevenueCurve:    Curve{Min: 0.8, Max: 1.25},

		DelayCurve:          Curve{Min: 0.05, Max: 0.45},
		OnTimeReputation:    1,
		DelayReputation:     -2,
		DelayMinutes:        15,
		RefundRate:          0.25,
		OutOfFuelReputation: -5,
		AverageSpeedKmh:     30,

		FuelPrice: FuelPriceConfig{Start: 1.60, Min: 1.25, Max: 2.00, Step: 0.05},
		Events: []EventConfig{
			{Label: "Depot break-in", Probability: 0.03, CashDelta: -2000, ReputationDelta: -1},
			{Label: "Council fine for missed timetable returns", Probability: 0.02, CashDelta: -5000, ReputationDelta: -2},
			{Label: "Local paper praises the service", Probability: 0.04, CashDelta: 0, ReputationDelta: 3},
			{Label: "Private hire booking", Probability: 0.05, CashDelta: 1500, ReputationDelta: 1},
		},
		Incidents: IncidentConfig{
			Probability: 0.2,
			Outcomes: []IncidentOutcome{
				{Label: "Flat tyre", RepairCost: 200, ReputationDelta: -3, DelayMinutes: 30},
				{Label: "Engine trouble", RepairCost: 200, ReputationDelta: -3, DelayMinutes: 45},
				{Label: "Heavy traffic", RepairCost: 200, ReputationDelta: -3, DelayMinutes: 20},
			},
		},
	}
}

// Validate rejects tuning that would break the engine's bounds.
func (b Balance) Validate() error {
	if b.DelayCurve.Min < 0 || b.DelayCurve.Max > 1 || b.DelayCurve.Min > b.DelayCurve.Max {
		return fmt.Errorf("balance: delay_probability must satisfy 0 <= min <= max <= 1 (got %+v)", b.DelayCurve)
	}
	if b.RevenueCurve.Min < 0 || b.RevenueCurve.Min > b.RevenueCurve.Max {
		return fmt.Errorf("balance: revenue_multiplier must satisfy 0 <= min <= max (got %+v)", b.RevenueCurve)
	}
	if b.TicketPrice < 0 || b.PassengersPerKm < 0 {
		return errors.New("balance: ticket_price and passengers_per_km must be non-negative")
	}
	if b.RefundRate < 0 || b.RefundRate > 1 {
		return fmt.Errorf("balance: refund_rate %g not in [0, 1]", b.RefundRate)
	}
	if b.AverageSpeedKmh <= 0 {
		return fmt.Errorf("balance: average_speed_kmh must be positive (got %g)", b.AverageSpeedKmh)
	}
	fp := b.FuelPrice
	if fp.Min <= 0 || fp.Min > fp.Max || fp.Start < fp.Min || fp.Start > fp.Max || fp.Step < 0 {
		return fmt.Errorf("balance: fuel_price must satisfy 0 < min <= start <= max and step >= 0 (got %+v)", fp)
	}
	for i, e := range b.Events {
		if e.Probability < 0 || e.Probability > 1 {
			return fmt.Errorf("balance: event #%d (%q) probability %g not in [0, 1]", i+1, e.Label, e.Probability)
		}
	}
	inc := b.Incidents
	if inc.Probability < 0 || inc.Probability > 1 {
		return fmt.Errorf("balance: incidents probability %g not in [0, 1]", inc.Probability)
	}
	if inc.Probability > 0 && len(inc.Outcomes) == 0 {
		return errors.New("balance: incidents probability is set but there are no outcomes")
	}
	for i, o := range inc.Outcomes {
		if o.RepairCost < 0 || o.DelayMinutes < 0 {
			return fmt.Errorf("balance: incident #%d (%q) repair_cost and delay_minutes must be non-negative", i+1, o.Label)
		}
	}
	return nil
}

// LoadBalance reads a YAML balance file. Keys absent from the file keep their
// DefaultBalance values; a missing file yields the defaults.
func LoadBalance(path string) (Balance, error) {
	b := DefaultBalance()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return Balance{}, fmt.Errorf("load balance: read %q: %w", path, err)
	}

	return ParseBalance(data)
}

// ParseBalance decodes YAML on top of DefaultBalance and validates the result.
func ParseBalance(data []byte) (Balance, error) {
	b := DefaultBalance()
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Balance{}, fmt.Errorf("load balance: parse yaml: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Balance{}, fmt.Errorf("load balance: %w", err)
	}
	return b, nil
}
