// Package aggregation merges ingredient quantities and costs across menu
// items from many kitchens and meal slots into one consolidated report.
package aggregation

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rasoi/internal/diagnostics"
	"rasoi/internal/models"
	"rasoi/internal/units"
)

// Options controls combination granularity. Selected* are inclusive
// allow-lists; nil or empty means no filtering.
type Options struct {
	CombineMealTypes  bool
	CombineKitchens   bool
	SelectedMealTypes []models.MealType
	SelectedKitchens  []string
}

// Source records where part of a combined row came from. Quantity is in the
// row's combination unit and already scaled by servings and ghan factor.
type Source struct {
	Kitchen  models.KitchenRef
	MealType models.MealType
	Recipe   string
	Quantity float64
	Servings float64
}

// CombinedIngredient is one output row of a combination run. Unit is the
// coarse combination unit chosen for the row, not any source's raw unit.
type CombinedIngredient struct {
	Name          string
	Unit          string
	TotalQuantity float64
	TotalCost     float64
	Sources       []Source
}

// Combiner folds menu items into combined ingredient rows.
type Combiner struct {
	conv   *units.Converter
	rec    diagnostics.Recorder
	logger *zap.Logger
}

// NewCombiner creates a Combiner. Nil arguments fall back to the default
// table, a discarding recorder, and a no-op logger.
func NewCombiner(conv *units.Converter, rec diagnostics.Recorder, logger *zap.Logger) *Combiner {
	if rec == nil {
		rec = diagnostics.Nop()
	}
	if conv == nil {
		conv = units.NewConverter(nil, rec)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Combiner{conv: conv, rec: rec, logger: logger}
}

// Combine folds the menu items into one row per aggregation key. Each run
// produces a fresh snapshot; nothing is retained between runs, so the same
// input always yields rows with identical totals.
func (c *Combiner) Combine(items []models.MenuItem, opts Options) []CombinedIngredient {
	runID := uuid.New()

	mealFilter := toSet(opts.SelectedMealTypes, func(mt models.MealType) string { return string(mt) })
	kitchenFilter := toSet(opts.SelectedKitchens, func(id string) string { return id })

	rows := make(map[string]*CombinedIngredient)
	for _, item := range items {
		if len(mealFilter) > 0 && !mealFilter[string(item.MealType)] {
			continue
		}
		if len(kitchenFilter) > 0 && !kitchenFilter[item.Kitchen.ID] {
			continue
		}

		// servings is how many recipe batches were planned on this row and
		// ghan factor is the per-batch multiplier; both apply.
		multiplier := item.Servings * item.GhanFactor
		for _, ing := range item.EffectiveIngredients() {
			bucketUnit, factor := c.conv.CombinationUnit(ing.Unit)
			quantity := ing.Quantity * factor * multiplier
			cost := ing.Quantity * ing.CostPerUnit * multiplier

			key := ing.KeyName()
			if !opts.CombineMealTypes {
				key += "_" + string(item.MealType)
			}
			if !opts.CombineKitchens {
				key += "_" + item.Kitchen.ID
			}

			row, ok := rows[key]
			if ok && row.Unit != bucketUnit {
				// Same ingredient recorded in incompatible units upstream.
				// Summing those would be numerically wrong, so the second
				// unit gets its own row.
				c.rec.Record(diagnostics.Event{
					Kind:       diagnostics.KindUnitMismatchSplit,
					Unit:       row.Unit,
					OtherUnit:  bucketUnit,
					Ingredient: ing.Name,
					Detail:     "kept as separate rows",
				})
				key += "_" + bucketUnit
				row, ok = rows[key]
			}
			if !ok {
				row = &CombinedIngredient{Name: ing.Name, Unit: bucketUnit}
				rows[key] = row
			}

			row.TotalQuantity += quantity
			row.TotalCost += cost
			row.Sources = append(row.Sources, Source{
				Kitchen:  item.Kitchen,
				MealType: item.MealType,
				Recipe:   item.Recipe.Name,
				Quantity: quantity,
				Servings: item.Servings,
			})
		}
	}

	out := make([]CombinedIngredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Unit < out[j].Unit
	})

	diagnostics.CountAggregationRun()
	c.logger.Info("combined ingredient report built",
		zap.String("run_id", runID.String()),
		zap.Int("menu_items", len(items)),
		zap.Int("rows", len(out)),
		zap.Bool("combine_meal_types", opts.CombineMealTypes),
		zap.Bool("combine_kitchens", opts.CombineKitchens),
	)
	return out
}

func toSet[T any](values []T, key func(T) string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[key(v)] = true
	}
	return set
}
