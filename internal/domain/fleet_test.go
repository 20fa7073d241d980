package domain

import (
	"errors"
	"testing"
)

var testModel = VehicleModel{
	Model:          "Test Decker",
	Capacity:       80,
	FuelCapacity:   140,
	FuelEfficiency: 0.45,
	Price:          100000,
}

func TestFleetPurchase(t *testing.T) {
	fleet := NewFleet()
	ledger := NewLedger(250000, 50, 1.6)

	bus, err := fleet.Purchase(testModel, "", ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bus.ID != 1 {
		t.Errorf("bus ID = %d, want 1", bus.ID)
	}
	if bus.FleetNumber != "1" {
		t.Errorf("fleet number = %q, want %q", bus.FleetNumber, "1")
	}
	if bus.CurrentFuel != testModel.FuelCapacity {
		t.Errorf("fuel = %g, want full tank %g", bus.CurrentFuel, testModel.FuelCapacity)
	}
	if bus.Livery != DefaultLivery {
		t.Errorf("livery = %q, want %q", bus.Livery, DefaultLivery)
	}
	if ledger.Cash != 150000 {
		t.Errorf("cash = %.2f, want 150000", ledger.Cash)
	}

	second, err := fleet.Purchase(testModel, "", ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != 2 || second.FleetNumber != "2" {
		t.Errorf("second bus = id %d number %q, want id 2 number %q", second.ID, second.FleetNumber, "2")
	}
}

func TestFleetPurchaseInsufficientFundsIsAtomic(t *testing.T) {
	fleet := NewFleet()
	ledger := NewLedger(99999, 50, 1.6)

	_, err := fleet.Purchase(testModel, "", ledger)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	if ledger.Cash != 99999 {
		t.Errorf("cash = %.2f, want unchanged 99999", ledger.Cash)
	}
	if fleet.Len() != 0 {
		t.Errorf("fleet size = %d, want 0", fleet.Len())
	}
	if fleet.NextID() != 1 {
		t.Errorf("next id = %d, want 1", fleet.NextID())
	}
}

func TestFleetPurchaseDuplicateFleetNumber(t *testing.T) {
	fleet := NewFleet()
	ledger := NewLedger(1000000, 50, 1.6)

	if _, err := fleet.Purchase(testModel, "101", ledger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cash := ledger.Cash

	_, err := fleet.Purchase(testModel, "101", ledger)
	if !errors.Is(err, ErrDuplicateFleetNumber) {
		t.Fatalf("err = %v, want ErrDuplicateFleetNumber", err)
	}
	if ledger.Cash != cash {
		t.Errorf("cash = %.2f, want unchanged %.2f", ledger.Cash, cash)
	}
	if fleet.Len() != 1 {
		t.Errorf("fleet size = %d, want 1", fleet.Len())
	}
}

func TestFleetAutoNumberSkipsTaken(t *testing.T) {
	fleet := NewFleet()
	ledger := NewLedger(1000000, 50, 1.6)

	if _, err := fleet.Purchase(testModel, "1", ledger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := fleet.Purchase(testModel, "3", ledger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bus, err := fleet.Purchase(testModel, "  ", ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bus.FleetNumber != "2" {
		t.Errorf("fleet number = %q, want %q", bus.FleetNumber, "2")
	}
}

func TestFleetRenameFleetNumber(t *testing.T) {
	fleet := NewFleet()
	ledger := NewLedger(1000000, 50, 1.6)
	a, _ := fleet.Purchase(testModel, "A1", ledger)
	b, _ := fleet.Purchase(testModel, "B1", ledger)

	if err := fleet.RenameFleetNumber(a.ID, "B1"); !errors.Is(err, ErrDuplicateFleetNumber) {
		t.Fatalf("err = %v, want ErrDuplicateFleetNumber", err)
	}
	if a.FleetNumber != "A1" {
		t.Errorf("fleet number = %q, want unchanged %q", a.FleetNumber, "A1")
	}

	if err := fleet.RenameFleetNumber(b.ID, "B1"); err != nil {
		t.Fatalf("renaming to own number: unexpected error: %v", err)
	}
	if err := fleet.RenameFleetNumber(a.ID, "X9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.FleetNumber != "X9" {
		t.Errorf("fleet number = %q, want %q", a.FleetNumber, "X9")
	}
	if err := fleet.RenameFleetNumber(99, "Z"); !errors.Is(err, ErrUnknownBus) {
		t.Errorf("err = %v, want ErrUnknownBus", err)
	}
}

func TestFleetRefuelAndLivery(t *testing.T) {
	catalog := NewCatalog([]VehicleModel{testModel})
	fleet := NewFleet()
	ledger := NewLedger(100600, 50, 1.6)
	bus, _ := fleet.Purchase(testModel, "", ledger)

	bus.Burn(40)
	added, err := fleet.Refuel(bus.ID, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 40 || bus.CurrentFuel != 140 {
		t.Errorf("refuel added %g, fuel %g; want 40 and 140", added, bus.CurrentFuel)
	}

	if err := fleet.ChangeLivery(bus.ID, "Purple & Gold", ledger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.Cash != 100 {
		t.Errorf("cash = %.2f, want 100", ledger.Cash)
	}
	if err := fleet.ChangeLivery(bus.ID, "Purple & Gold", ledger); !errors.Is(err, ErrSameLivery) {
		t.Errorf("err = %v, want ErrSameLivery", err)
	}
	if err := fleet.ChangeLivery(bus.ID, "Tartan", ledger); !errors.Is(err, ErrUnknownLivery) {
		t.Errorf("err = %v, want ErrUnknownLivery", err)
	}
	if err := fleet.ChangeLivery(bus.ID, "Night Service", ledger); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	if bus.Livery != "Purple & Gold" {
		t.Errorf("livery = %q, want unchanged", bus.Livery)
	}
}

func TestBusBurnNeverGoesNegative(t *testing.T) {
	bus := &Bus{CurrentFuel: 10}
	used := bus.Burn(13.5)
	if used != 10 {
		t.Errorf("used = %g, want 10", used)
	}
	if bus.CurrentFuel != 0 {
		t.Errorf("fuel = %g, want 0", bus.CurrentFuel)
	}
}

func TestRestoreFleetRejectsDuplicates(t *testing.T) {
	_, err := RestoreFleet([]*Bus{
		{ID: 1, FleetNumber: "1", Model: "x"},
		{ID: 1, FleetNumber: "2", Model: "x"},
	}, 3)
	if !IsStructural(err) {
		t.Fatalf("err = %v, want structural error", err)
	}

	f, err := RestoreFleet([]*Bus{{ID: 7, FleetNumber: "7", Model: "x"}}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.NextID() != 8 {
		t.Errorf("next id = %d, want 8", f.NextID())
	}
}
