package units

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Category groups unit symbols by the physical dimension they measure.
type Category string

const (
	CategoryWeight Category = "weight"
	CategoryVolume Category = "volume"
	CategoryCount  Category = "count"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeight, CategoryVolume, CategoryCount:
		return true
	}
	return false
}

// UnitDefinition describes one unit symbol. CanonicalFactor is the number of
// canonical base units one unit represents: grams for weight, milliliters for
// volume (treated as gram-equivalent at water density), pieces for count.
type UnitDefinition struct {
	Symbol          string   `yaml:"symbol"`
	CanonicalFactor float64  `yaml:"factor"`
	Category        Category `yaml:"category"`
}

// Table is the closed, immutable registry of supported units. Build it once
// at process start and share it; it is never mutated afterwards.
type Table struct {
	defs map[string]UnitDefinition
}

// NewTable builds a Table from definitions, rejecting duplicates and
// malformed entries.
func NewTable(defs []UnitDefinition) (*Table, error) {
	m := make(map[string]UnitDefinition, len(defs))
	for _, def := range defs {
		if def.Symbol == "" {
			return nil, fmt.Errorf("unit definition with empty symbol")
		}
		if def.CanonicalFactor <= 0 {
			return nil, fmt.Errorf("unit %q must have a positive factor", def.Symbol)
		}
		if !def.Category.Valid() {
			return nil, fmt.Errorf("unit %q has unknown category %q", def.Symbol, def.Category)
		}
		if _, exists := m[def.Symbol]; exists {
			return nil, fmt.Errorf("duplicate unit symbol %q", def.Symbol)
		}
		m[def.Symbol] = def
	}
	return &Table{defs: m}, nil
}

// MustNewTable is NewTable for compiled-in definitions.
func MustNewTable(defs []UnitDefinition) *Table {
	t, err := NewTable(defs)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the definition for symbol. Lookup is case-sensitive: "Kg"
// and "kg" are distinct symbols.
func (t *Table) Lookup(symbol string) (UnitDefinition, bool) {
	def, ok := t.defs[symbol]
	return def, ok
}

// Symbols returns all registered symbols in sorted order.
func (t *Table) Symbols() []string {
	out := make([]string, 0, len(t.defs))
	for s := range t.defs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered units.
func (t *Table) Len() int {
	return len(t.defs)
}

// defaultDefinitions is the compiled-in unit set. Extending it is a data
// change here, not a runtime mutation.
var defaultDefinitions = []UnitDefinition{
	// weight (base = g)
	{Symbol: "mg", CanonicalFactor: 0.001, Category: CategoryWeight},
	{Symbol: "g", CanonicalFactor: 1, Category: CategoryWeight},
	{Symbol: "kg", CanonicalFactor: 1000, Category: CategoryWeight},
	{Symbol: "oz", CanonicalFactor: 28.349523125, Category: CategoryWeight},
	{Symbol: "lb", CanonicalFactor: 453.59237, Category: CategoryWeight},

	// volume (base = ml, gram-equivalent at water density)
	{Symbol: "ml", CanonicalFactor: 1, Category: CategoryVolume},
	{Symbol: "l", CanonicalFactor: 1000, Category: CategoryVolume},
	{Symbol: "tsp", CanonicalFactor: 5, Category: CategoryVolume},
	{Symbol: "tbsp", CanonicalFactor: 15, Category: CategoryVolume},
	{Symbol: "cup", CanonicalFactor: 240, Category: CategoryVolume},

	// count (base = pcs)
	{Symbol: "pcs", CanonicalFactor: 1, Category: CategoryCount},
	{Symbol: "nos", CanonicalFactor: 1, Category: CategoryCount},
	{Symbol: "dozen", CanonicalFactor: 12, Category: CategoryCount},
}

var defaultTable = MustNewTable(defaultDefinitions)

// DefaultTable returns the compiled-in unit table.
func DefaultTable() *Table {
	return defaultTable
}

// tableDocument is the YAML shape for a unit-table file.
type tableDocument struct {
	Units []UnitDefinition `yaml:"units"`
}

// LoadTable reads a unit-table YAML document from path. A missing or invalid
// table file is a fatal configuration error for the caller; there is no
// partial fallback.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit table: %w", err)
	}
	var doc tableDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse unit table: %w", err)
	}
	if len(doc.Units) == 0 {
		return nil, fmt.Errorf("unit table %s defines no units", path)
	}
	return NewTable(doc.Units)
}
