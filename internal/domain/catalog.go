package domain

import (
	"fmt"
	"strings"
)

// CatalogVersion identifies the built-in model list. Saves record it together with
// the names of the packs merged on top.
const CatalogVersion = "base-1"

// Immutable purchasable bus model.
// FuelEfficiency is litres per km at the 50 km/h reference speed; lower is better.
type VehicleModel struct {
	Model          string
	Capacity       int
	FuelCapacity   float64
	FuelEfficiency float64
	Price          int64
	Source         string
}

// Validate checks that every field is present and positive.
func (m VehicleModel) Validate() error {
	switch {
	case strings.TrimSpace(m.Model) == "":
		return fmt.Errorf("%w: model name is empty", ErrInvalidModel)
	case m.Capacity <= 0:
		return fmt.Errorf("%w: %q capacity must be positive (got %d)", ErrInvalidModel, m.Model, m.Capacity)
	case m.FuelCapacity <= 0:
		return fmt.Errorf("%w: %q fuel capacity must be positive (got %g)", ErrInvalidModel, m.Model, m.FuelCapacity)
	case m.FuelEfficiency <= 0:
		return fmt.Errorf("%w: %q fuel efficiency must be positive (got %g)", ErrInvalidModel, m.Model, m.FuelEfficiency)
	case m.Price <= 0:
		return fmt.Errorf("%w: %q price must be positive (got %d)", ErrInvalidModel, m.Model, m.Price)
	}
	return nil
}

// MergePolicy decides what happens when a pack supplies a model name that the
// catalog already holds.
type MergePolicy int

const (
	// MergeOverride replaces the existing entry; the last loaded pack wins.
	MergeOverride MergePolicy = iota
	// MergeReject keeps the existing entry and reports the newcomer as rejected.
	MergeReject
)

func (p MergePolicy) String() string {
	switch p {
	case MergeOverride:
		return "override"
	case MergeReject:
		return "reject"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(p))
	}
}

// ParseMergePolicy maps "override" / "reject" (case-insensitive) to a policy.
// An empty string selects MergeOverride.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "override":
		return MergeOverride, nil
	case "reject":
		return MergeReject, nil
	}
	return MergeOverride, fmt.Errorf("parse merge policy: unknown policy %q", s)
}

// Pack is a named, ordered list of vehicle entries supplied by a DLC or mod file.
type Pack struct {
	Name     string
	Vehicles []VehicleModel
}

// Rejection describes one pack entry that was not merged.
type Rejection struct {
	Index  int
	Model  string
	Reason string
}

// MergeReport summarises the outcome of merging one pack.
type MergeReport struct {
	Pack       string
	Added      []string
	Overridden []string
	Rejected   []Rejection
}

// Catalog is the set of purchasable models. It is never mutated by the
// simulation; only Merge changes it.
type Catalog struct {
	models map[string]VehicleModel
	order  []string
	packs  []string
}

// NewCatalog builds a catalog from a fixed list. Invalid or duplicate entries panic:
// the built-in list is program data, not input.
func NewCatalog(models []VehicleModel) *Catalog {
	c := &Catalog{models: make(map[string]VehicleModel, len(models))}
	for _, m := range models {
		if err := m.Validate(); err != nil {
			panic(fmt.Sprintf("new catalog: %v", err))
		}
		if _, dup := c.models[m.Model]; dup {
			panic(fmt.Sprintf("new catalog: duplicate model %q", m.Model))
		}
		c.models[m.Model] = m
		c.order = append(c.order, m.Model)
	}
	return c
}

// Lookup returns the model with the given name.
func (c *Catalog) Lookup(name string) (VehicleModel, bool) {
	m, ok := c.models[name]
	return m, ok
}

// Models returns all entries in load order.
func (c *Catalog) Models() []VehicleModel {
	out := make([]VehicleModel, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.models[name])
	}
	return out
}

// Packs returns the names of merged packs in load order.
func (c *Catalog) Packs() []string {
	return append([]string(nil), c.packs...)
}

func (c *Catalog) Len() int { return len(c.order) }

// Merge adds the pack's entries under the given collision policy. Entries that
// fail validation are rejected one by one; the rest of the pack still loads.
func (c *Catalog) Merge(p Pack, policy MergePolicy) MergeReport {
	report := MergeReport{Pack: p.Name}

	for i, v := range p.Vehicles {
		v.Source = p.Name
		if err := v.Validate(); err != nil {
			report.Rejected = append(report.Rejected, Rejection{Index: i, Model: v.Model, Reason: err.Error()})
			continue
		}

		if _, exists := c.models[v.Model]; exists {
			if policy == MergeReject {
				report.Rejected = append(report.Rejected, Rejection{
					Index:  i,
					Model:  v.Model,
					Reason: fmt.Sprintf("model %q already in catalog", v.Model),
				})
				continue
			}
			// Override keeps the original listing position.
			c.models[v.Model] = v
			report.Overridden = append(report.Overridden, v.Model)
			continue
		}

		c.models[v.Model] = v
		c.order = append(c.order, v.Model)
		report.Added = append(report.Added, v.Model)
	}

	c.packs = append(c.packs, p.Name)
	return report
}

// BaseModels is the built-in shop list.
func BaseModels() []VehicleModel {
	return []VehicleModel{
		{Model: "ADL Enviro200", Capacity: 40, FuelCapacity: 160, FuelEfficiency: 0.26, Price: 90000},
		{Model: "ADL Enviro200 MMC", Capacity: 40, FuelCapacity: 160, FuelEfficiency: 0.25, Price: 95000},
		{Model: "ADL Enviro400", Capacity: 80, FuelCapacity: 240, FuelEfficiency: 0.38, Price: 135000},
		{Model: "ADL Enviro400 MMC", Capacity: 80, FuelCapacity: 240, FuelEfficiency: 0.38, Price: 140000},
		{Model: "ADL Enviro400 City", Capacity: 80, FuelCapacity: 240, FuelEfficiency: 0.37, Price: 145000},
		{Model: "Wright Streetlite DF", Capacity: 40, FuelCapacity: 150, FuelEfficiency: 0.25, Price: 72000},
		{Model: "Wright Streetlite WF", Capacity: 40, FuelCapacity: 150, FuelEfficiency: 0.24, Price: 73000},
		{Model: "Wright Streetdeck Ultroliner", Capacity: 75, FuelCapacity: 220, FuelEfficiency: 0.35, Price: 130000},
		{Model: "Wright Eclipse Urban", Capacity: 40, FuelCapacity: 150, FuelEfficiency: 0.26, Price: 70000},
		{Model: "Wright Eclipse Urban 2", Capacity: 40, FuelCapacity: 150, FuelEfficiency: 0.25, Price: 72000},
		{Model: "Wright Eclipse Gemini", Capacity: 80, FuelCapacity: 230, FuelEfficiency: 0.37, Price: 130000},
		{Model: "Wright Eclipse Gemini 2", Capacity: 80, FuelCapacity: 230, FuelEfficiency: 0.36, Price: 132000},
		{Model: "Wright Eclipse Gemini 3", Capacity: 80, FuelCapacity: 230, FuelEfficiency: 0.35, Price: 135000},
		{Model: "Scania N94UD Omnidekka", Capacity: 80, FuelCapacity: 240, FuelEfficiency: 0.40, Price: 138000},
		{Model: "Scania N270UD Omnicity", Capacity: 80, FuelCapacity: 230, FuelEfficiency: 0.38, Price: 140000},
		{Model: "Scania N230UD Enviro400", Capacity: 80, FuelCapacity: 240, FuelEfficiency: 0.37, Price: 137000},
		{Model: "Scania N250UD Enviro400 MMC", Capacity: 80, FuelCapacity: 240, FuelEfficiency: 0.36, Price: 142000},
		{Model: "Scania L94UB Wright Solar", Capacity: 40, FuelCapacity: 150, FuelEfficiency: 0.26, Price: 72000},
		{Model: "Optare Solo", Capacity: 30, FuelCapacity: 120, FuelEfficiency: 0.22, Price: 60000},
		{Model: "Optare Solo SR", Capacity: 30, FuelCapacity: 120, FuelEfficiency: 0.22, Price: 62000},
		{Model: "Dennis Trident Optare Olympus", Capacity: 75, FuelCapacity: 230, FuelEfficiency: 0.38, Price: 125000},
		{Model: "Volvo B7TL Plaxton President", Capacity: 80, FuelCapacity: 230, FuelEfficiency: 0.39, Price: 130000},
		{Model: "Dennis Dart MPD", Capacity: 35, FuelCapacity: 140, FuelEfficiency: 0.24, Price: 65000},
	}
}

// BaseCatalog returns a fresh catalog holding only the built-in models.
func BaseCatalog() *Catalog {
	return NewCatalog(BaseModels())
}
