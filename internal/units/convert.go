package units

import (
	"rasoi/internal/diagnostics"
)

// Converter normalizes (amount, unit) pairs against a Table. Unknown units
// fall back to identity conversion so that a bad unit string degrades a
// report instead of failing it; every fallback is reported to the Recorder.
type Converter struct {
	table *Table
	rec   diagnostics.Recorder
}

// NewConverter creates a Converter over table. A nil recorder discards
// diagnostics.
func NewConverter(table *Table, rec diagnostics.Recorder) *Converter {
	if table == nil {
		table = DefaultTable()
	}
	if rec == nil {
		rec = diagnostics.Nop()
	}
	return &Converter{table: table, rec: rec}
}

// Table returns the converter's unit table.
func (c *Converter) Table() *Table {
	return c.table
}

// ToGrams converts quantity expressed in unit to canonical base units
// (grams for weight, milliliters for volume, pieces for count). Unknown
// units convert 1:1.
func (c *Converter) ToGrams(quantity float64, unit string) float64 {
	def, ok := c.table.Lookup(unit)
	if !ok {
		c.rec.Record(diagnostics.Event{
			Kind:   diagnostics.KindUnknownUnit,
			Unit:   unit,
			Detail: "identity conversion used",
		})
		return quantity
	}
	return quantity * def.CanonicalFactor
}

// FromGrams converts grams back into the target unit. Unknown units convert
// 1:1.
func (c *Converter) FromGrams(grams float64, targetUnit string) float64 {
	def, ok := c.table.Lookup(targetUnit)
	if !ok {
		c.rec.Record(diagnostics.Event{
			Kind:   diagnostics.KindUnknownUnit,
			Unit:   targetUnit,
			Detail: "identity conversion used",
		})
		return grams
	}
	return grams / def.CanonicalFactor
}

// Convert converts quantity from one unit to another. Identical unit strings
// short-circuit without a table lookup; the comparison is case-sensitive, so
// "Kg" and "kg" are converted through the table rather than short-circuited.
func (c *Converter) Convert(quantity float64, fromUnit, toUnit string) float64 {
	if fromUnit == toUnit {
		return quantity
	}
	if !c.CategoriesCompatible(fromUnit, toUnit) {
		c.rec.Record(diagnostics.Event{
			Kind:      diagnostics.KindCrossCategory,
			Unit:      fromUnit,
			OtherUnit: toUnit,
			Detail:    "conversion crosses unit categories",
		})
	}
	return c.FromGrams(c.ToGrams(quantity, fromUnit), toUnit)
}

// CategoriesCompatible reports whether two units measure the same dimension.
// Unknown units are treated as compatible with anything; the conversion
// proceeds but is flagged for audit.
func (c *Converter) CategoriesCompatible(unit1, unit2 string) bool {
	def1, ok1 := c.table.Lookup(unit1)
	def2, ok2 := c.table.Lookup(unit2)
	if !ok1 || !ok2 {
		return true
	}
	return def1.Category == def2.Category
}

// Combination-unit symbols used by the aggregator's merge keys.
const (
	CombinedWeightUnit = "g"
	CombinedVolumeUnit = "ml"
	CombinedCountUnit  = "pcs"
)

// CombinationUnit maps a raw unit onto the coarse bucket used for
// aggregation: any weight unit lands in grams, any volume unit in
// milliliters, any count unit in pieces. The returned factor converts a
// quantity in the raw unit into bucket units. Unknown units keep their own
// symbol as the bucket with a 1:1 factor, so they can never silently merge
// with a known unit.
func (c *Converter) CombinationUnit(unit string) (string, float64) {
	def, ok := c.table.Lookup(unit)
	if !ok {
		c.rec.Record(diagnostics.Event{
			Kind:   diagnostics.KindUnknownUnit,
			Unit:   unit,
			Detail: "kept as its own combination bucket",
		})
		return unit, 1
	}
	switch def.Category {
	case CategoryVolume:
		return CombinedVolumeUnit, def.CanonicalFactor
	case CategoryCount:
		return CombinedCountUnit, def.CanonicalFactor
	default:
		return CombinedWeightUnit, def.CanonicalFactor
	}
}
