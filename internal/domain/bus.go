package domain

// DefaultLivery is painted on every newly purchased bus.
const DefaultLivery = "Standard"

// LiveryPrice is charged for each repaint.
const LiveryPrice = 500.0

// Liveries lists the paint schemes a bus can be repainted into.
var Liveries = []string{
	"Red & White",
	"Blue & Yellow",
	"Green & Cream",
	"Silver & Black",
	"Orange & White",
	"Purple & Gold",
	"All-over White",
	"All-over Red",
	"All-over Blue",
	"All-over Green",
	"Corporate Fleet",
	"Heritage Classic",
	"Modern Metro",
	"Express Service",
	"Night Service",
	"Airport Special",
	"City Centre",
	"Suburban Route",
	"Premium Service",
	"Eco-Friendly Green",
}

func isLivery(name string) bool {
	if name == DefaultLivery {
		return true
	}
	for _, l := range Liveries {
		if l == name {
			return true
		}
	}
	return false
}

// An owned bus.
// ID is internal and stable for the lifetime of the bus; FleetNumber is the
// player-facing identifier and may be edited. Model references a catalog entry
// by name and never changes after purchase. CurrentFuel stays within
// [0, model fuel capacity].
type Bus struct {
	ID            int
	FleetNumber   string
	Model         string
	CurrentFuel   float64
	Livery        string
	PurchasePrice int64
}

// Burn removes up to litres from the tank and returns the amount actually used.
func (b *Bus) Burn(litres float64) float64 {
	if litres <= 0 {
		return 0
	}
	if litres > b.CurrentFuel {
		litres = b.CurrentFuel
	}
	b.CurrentFuel -= litres
	if b.CurrentFuel < 0 {
		b.CurrentFuel = 0
	}
	return litres
}
