package packs

import (
	"city-bus-manager/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pointer fields tell a missing key apart from a zero value.
type vehicleEntry struct {
	Model          *string  `json:"model" yaml:"model"`
	Capacity       *float64 `json:"capacity" yaml:"capacity"`
	FuelCapacity   *float64 `json:"fuel_capacity" yaml:"fuel_capacity"`
	FuelEfficiency *float64 `json:"fuel_efficiency" yaml:"fuel_efficiency"`
	Price          *float64 `json:"price" yaml:"price"`
}

type packFile struct {
	Name     string         `json:"dlc_name" yaml:"dlc_name"`
	Vehicles []vehicleEntry `json:"vehicles" yaml:"vehicles"`
}

// Parsed is a decoded pack file. Entries that could not even be read as a
// vehicle are listed in Rejected and left out of Pack. Origin maps each index
// in Pack.Vehicles back to its position in the file.
type Parsed struct {
	Pack     domain.Pack
	Origin   []int
	Rejected []domain.Rejection
}

// Parse decodes a pack document. format is "json" or "yaml".
func Parse(data []byte, format string) (Parsed, error) {
	var pf packFile
	switch format {
	case "json":
		if err := json.Unmarshal(data, &pf); err != nil {
			return Parsed{}, fmt.Errorf("parse pack: invalid json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return Parsed{}, fmt.Errorf("parse pack: invalid yaml: %w", err)
		}
	default:
		return Parsed{}, fmt.Errorf("parse pack: unsupported format %q", format)
	}

	pf.Name = strings.TrimSpace(pf.Name)
	if pf.Name == "" || pf.Vehicles == nil {
		return Parsed{}, errors.New("parse pack: missing required fields (dlc_name, vehicles)")
	}

	out := Parsed{Pack: domain.Pack{Name: pf.Name}}
	for i, e := range pf.Vehicles {
		v, err := e.toModel()
		if err != nil {
			name := ""
			if e.Model != nil {
				name = *e.Model
			}
			out.Rejected = append(out.Rejected, domain.Rejection{Index: i, Model: name, Reason: err.Error()})
			continue
		}
		out.Pack.Vehicles = append(out.Pack.Vehicles, v)
		out.Origin = append(out.Origin, i)
	}

	return out, nil
}

func (e vehicleEntry) toModel() (domain.VehicleModel, error) {
	var missing []string
	if e.Model == nil {
		missing = append(missing, "model")
	}
	if e.Capacity == nil {
		missing = append(missing, "capacity")
	}
	if e.FuelCapacity == nil {
		missing = append(missing, "fuel_capacity")
	}
	if e.FuelEfficiency == nil {
		missing = append(missing, "fuel_efficiency")
	}
	if e.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return domain.VehicleModel{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if *e.Capacity != math.Trunc(*e.Capacity) {
		return domain.VehicleModel{}, fmt.Errorf("capacity %g is not a whole number", *e.Capacity)
	}
	if *e.Price != math.Trunc(*e.Price) {
		return domain.VehicleModel{}, fmt.Errorf("price %g is not a whole number", *e.Price)
	}

	return domain.VehicleModel{
		Model:          strings.TrimSpace(*e.Model),
		Capacity:       int(*e.Capacity),
		FuelCapacity:   *e.FuelCapacity,
		FuelEfficiency: *e.FuelEfficiency,
		Price:          int64(*e.Price),
	}, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// ParseFile reads and decodes one pack file, choosing the format by extension.
func ParseFile(path string) (Parsed, error) {
	format := formatOf(path)
	if format == "" {
		return Parsed{}, fmt.Errorf("parse pack %q: unsupported extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Parsed{}, fmt.Errorf("parse pack: read %q: %w", path, err)
	}

	parsed, err := Parse(data, format)
	if err != nil {
		return Parsed{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return parsed, nil
}

// Merge adds a parsed pack to the catalog and reports every rejection, both
// unreadable entries and those the catalog refused, by file position.
func Merge(catalog *domain.Catalog, parsed Parsed, policy domain.MergePolicy) domain.MergeReport {
	report := catalog.Merge(parsed.Pack, policy)

	rejected := append([]domain.Rejection(nil), parsed.Rejected...)
	for _, r := range report.Rejected {
		r.Index = parsed.Origin[r.Index]
		rejected = append(rejected, r)
	}
	sort.SliceStable(rejected, func(i, j int) bool { return rejected[i].Index < rejected[j].Index })
	report.Rejected = rejected

	return report
}

// LoadDir merges every .json, .yaml and .yml pack in dir into the catalog, in
// file name order. A missing directory is not an error. A file that cannot be
// parsed is skipped with a warning; the remaining packs still load.
func LoadDir(dir string, catalog *domain.Catalog, policy domain.MergePolicy) ([]domain.MergeReport, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Note: packs folder not found at %s", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load packs: read dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || formatOf(e.Name()) == "" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	reports := make([]domain.MergeReport, 0, len(names))
	for _, name := range names {
		parsed, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("WARNING: skipping pack file: %v", err)
			continue
		}

		report := Merge(catalog, parsed, policy)
		log.Printf("pack=%q file=%s added=%d overridden=%d rejected=%d",
			report.Pack, name, len(report.Added), len(report.Overridden), len(report.Rejected))
		for _, r := range report.Rejected {
			log.Printf("pack=%q entry=%d model=%q rejected: %s", report.Pack, r.Index, r.Model, r.Reason)
		}
		reports = append(reports, report)
	}

	return reports, nil
}
