package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Fleet registry of owned buses, in purchase order.
type Fleet struct {
	buses  []*Bus
	nextID int
}

func NewFleet() *Fleet {
	return &Fleet{nextID: 1}
}

// RestoreFleet rebuilds a fleet from persisted buses. IDs and fleet numbers must
// be unique; nextID is raised past the highest ID if needed.
func RestoreFleet(buses []*Bus, nextID int) (*Fleet, error) {
	f := &Fleet{nextID: nextID}
	if f.nextID < 1 {
		f.nextID = 1
	}

	ids := make(map[int]struct{}, len(buses))
	numbers := make(map[string]struct{}, len(buses))
	for _, b := range buses {
		if b == nil {
			return nil, structuralf("restore fleet", "nil bus")
		}
		if _, dup := ids[b.ID]; dup {
			return nil, structuralf("restore fleet", "duplicate bus id %d", b.ID)
		}
		ids[b.ID] = struct{}{}

		if b.FleetNumber != "" {
			if _, dup := numbers[b.FleetNumber]; dup {
				return nil, structuralf("restore fleet", "duplicate fleet number %q", b.FleetNumber)
			}
			numbers[b.FleetNumber] = struct{}{}
		}

		if b.CurrentFuel < 0 {
			return nil, structuralf("restore fleet", "bus %d has negative fuel %g", b.ID, b.CurrentFuel)
		}
		if b.ID >= f.nextID {
			f.nextID = b.ID + 1
		}
		f.buses = append(f.buses, b)
	}

	return f, nil
}

// Buses returns the buses in purchase order. The slice is a copy; the buses are not.
func (f *Fleet) Buses() []*Bus {
	return append([]*Bus(nil), f.buses...)
}

func (f *Fleet) Len() int { return len(f.buses) }

// NextID is the ID the next purchased bus will receive.
func (f *Fleet) NextID() int { return f.nextID }

// Bus returns the bus with the given ID.
func (f *Fleet) Bus(id int) (*Bus, bool) {
	for _, b := range f.buses {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (f *Fleet) numberInUse(number string, exceptID int) bool {
	for _, b := range f.buses {
		if b.ID != exceptID && b.FleetNumber == number {
			return true
		}
	}
	return false
}

// Lowest positive integer not already used as a fleet number.
func (f *Fleet) nextFleetNumber() string {
	for n := 1; ; n++ {
		s := strconv.Itoa(n)
		if !f.numberInUse(s, 0) {
			return s
		}
	}
}

// Purchase buys a new bus of the given model, deducting its price from the
// ledger. A blank fleet number is auto-assigned. The bus starts with a full
// tank. On any rejection neither the ledger nor the fleet changes.
func (f *Fleet) Purchase(model VehicleModel, fleetNumber string, ledger *Ledger) (*Bus, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("purchase bus: %w", err)
	}

	price := float64(model.Price)
	if !ledger.CanAfford(price) {
		return nil, fmt.Errorf("purchase bus: %q costs %d, balance %.2f: %w", model.Model, model.Price, ledger.Cash, ErrInsufficientFunds)
	}

	number := strings.TrimSpace(fleetNumber)
	if number == "" {
		number = f.nextFleetNumber()
	} else if f.numberInUse(number, 0) {
		return nil, fmt.Errorf("purchase bus: fleet number %q: %w", number, ErrDuplicateFleetNumber)
	}

	if err := ledger.Debit(price); err != nil {
		return nil, fmt.Errorf("purchase bus: %w", err)
	}

	bus := &Bus{
		ID:            f.nextID,
		FleetNumber:   number,
		Model:         model.Model,
		CurrentFuel:   model.FuelCapacity,
		Livery:        DefaultLivery,
		PurchasePrice: model.Price,
	}
	f.nextID++
	f.buses = append(f.buses, bus)
	return bus, nil
}

// RenameFleetNumber changes a bus's player-facing number.
func (f *Fleet) RenameFleetNumber(id int, number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return fmt.Errorf("rename fleet number: %w", ErrInvalidName)
	}

	bus, ok := f.Bus(id)
	if !ok {
		return fmt.Errorf("rename fleet number: bus %d: %w", id, ErrUnknownBus)
	}

	if f.numberInUse(number, id) {
		return fmt.Errorf("rename fleet number: %q: %w", number, ErrDuplicateFleetNumber)
	}

	bus.FleetNumber = number
	return nil
}

// Refuel tops the tank up to the model's capacity and returns the litres added.
// Fuel is billed when burned, so refuelling itself is free.
func (f *Fleet) Refuel(id int, catalog *Catalog) (float64, error) {
	bus, ok := f.Bus(id)
	if !ok {
		return 0, fmt.Errorf("refuel: bus %d: %w", id, ErrUnknownBus)
	}

	model, ok := catalog.Lookup(bus.Model)
	if !ok {
		return 0, structuralf("refuel", "bus %d references unknown model %q", bus.ID, bus.Model)
	}

	added := model.FuelCapacity - bus.CurrentFuel
	if added < 0 {
		added = 0
	}
	bus.CurrentFuel = model.FuelCapacity
	return added, nil
}

// ChangeLivery repaints a bus for LiveryPrice.
func (f *Fleet) ChangeLivery(id int, livery string, ledger *Ledger) error {
	bus, ok := f.Bus(id)
	if !ok {
		return fmt.Errorf("change livery: bus %d: %w", id, ErrUnknownBus)
	}
	if !isLivery(livery) {
		return fmt.Errorf("change livery: %q: %w", livery, ErrUnknownLivery)
	}
	if bus.Livery == livery {
		return fmt.Errorf("change livery: %q: %w", livery, ErrSameLivery)
	}
	if err := ledger.Debit(LiveryPrice); err != nil {
		return fmt.Errorf("change livery: %w", err)
	}

	bus.Livery = livery
	return nil
}
