package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasoi/internal/diagnostics"
	"rasoi/internal/models"
	"rasoi/internal/units"
)

func dalRiceItem(kitchenID, kitchenName string, meal models.MealType, servings, ghan float64) models.MenuItem {
	return models.MenuItem{
		Kitchen:    models.KitchenRef{ID: kitchenID, Name: kitchenName},
		MealType:   meal,
		Recipe:     models.RecipeRef{ID: "r-dal-rice", Name: "Dal Rice"},
		Servings:   servings,
		GhanFactor: ghan,
		Ingredients: []models.Ingredient{
			{Name: "Rice", Quantity: 2, Unit: "kg", CostPerUnit: 30},
			{Name: "Dal", Quantity: 0.5, Unit: "kg", CostPerUnit: 100},
		},
	}
}

func TestCombineAcrossKitchens(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 1, 1),
		dalRiceItem("k2", "North", models.MealLunch, 1, 1),
	}

	rows := combiner.Combine(items, Options{CombineMealTypes: true, CombineKitchens: true})
	require.Len(t, rows, 2)

	// Sorted by display name: Dal before Rice.
	assert.Equal(t, "Dal", rows[0].Name)
	assert.Equal(t, "Rice", rows[1].Name)
	for _, row := range rows {
		assert.Equal(t, units.CombinedWeightUnit, row.Unit)
		assert.Len(t, row.Sources, 2)
	}
	assert.InDelta(t, 1000, rows[0].TotalQuantity, 1e-9)
	assert.InDelta(t, 4000, rows[1].TotalQuantity, 1e-9)
}

func TestCombineKitchensDisabledKeepsRowsApart(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 1, 1),
		dalRiceItem("k2", "North", models.MealLunch, 1, 1),
	}

	rows := combiner.Combine(items, Options{CombineMealTypes: true, CombineKitchens: false})
	assert.Len(t, rows, 4)
	for _, row := range rows {
		assert.Len(t, row.Sources, 1)
	}
}

func TestCombineFullySplitNeverMergesAcrossSlots(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 1, 1),
		dalRiceItem("k1", "Central", models.MealDinner, 1, 1),
		dalRiceItem("k2", "North", models.MealLunch, 1, 1),
	}

	rows := combiner.Combine(items, Options{})
	// Two ingredients times three distinct (kitchen, meal slot) pairs.
	assert.Len(t, rows, 6)
}

func TestCombineScalesByServingsAndGhanFactor(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 3, 2),
	}

	rows := combiner.Combine(items, Options{CombineMealTypes: true, CombineKitchens: true})
	require.Len(t, rows, 2)

	// Rice: 2 kg -> 2000 g, times servings 3 and ghan 2.
	assert.InDelta(t, 12000, rows[1].TotalQuantity, 1e-9)
	// Cost stays in the ingredient's own unit: 2 * 30 * 6.
	assert.InDelta(t, 360, rows[1].TotalCost, 1e-9)
	assert.InDelta(t, 3, rows[1].Sources[0].Servings, 1e-9)
}

func TestCombineMergesNamesCaseInsensitively(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		{
			Kitchen: models.KitchenRef{ID: "k1", Name: "Central"}, MealType: models.MealLunch,
			Recipe: models.RecipeRef{Name: "A"}, Servings: 1, GhanFactor: 1,
			Ingredients: []models.Ingredient{{Name: "Rice", Quantity: 1, Unit: "kg", CostPerUnit: 30}},
		},
		{
			Kitchen: models.KitchenRef{ID: "k1", Name: "Central"}, MealType: models.MealLunch,
			Recipe: models.RecipeRef{Name: "B"}, Servings: 1, GhanFactor: 1,
			Ingredients: []models.Ingredient{{Name: "  rice ", Quantity: 1, Unit: "kg", CostPerUnit: 30}},
		},
	}

	rows := combiner.Combine(items, Options{CombineMealTypes: true, CombineKitchens: true})
	require.Len(t, rows, 1)
	assert.InDelta(t, 2000, rows[0].TotalQuantity, 1e-9)
	// The first seen casing is kept for display.
	assert.Equal(t, "Rice", rows[0].Name)
}

func TestCombineSplitsIncompatibleUnits(t *testing.T) {
	collector := diagnostics.NewCollector(nil)
	combiner := NewCombiner(units.NewConverter(nil, collector), collector, nil)
	items := []models.MenuItem{
		{
			Kitchen: models.KitchenRef{ID: "k1", Name: "Central"}, MealType: models.MealLunch,
			Recipe: models.RecipeRef{Name: "A"}, Servings: 1, GhanFactor: 1,
			Ingredients: []models.Ingredient{{Name: "Milk", Quantity: 1, Unit: "kg", CostPerUnit: 50}},
		},
		{
			Kitchen: models.KitchenRef{ID: "k1", Name: "Central"}, MealType: models.MealLunch,
			Recipe: models.RecipeRef{Name: "B"}, Servings: 1, GhanFactor: 1,
			Ingredients: []models.Ingredient{{Name: "Milk", Quantity: 2, Unit: "l", CostPerUnit: 45}},
		},
	}

	rows := combiner.Combine(items, Options{CombineMealTypes: true, CombineKitchens: true})
	require.Len(t, rows, 2, "weight and volume rows must not merge")

	byUnit := map[string]CombinedIngredient{}
	for _, row := range rows {
		byUnit[row.Unit] = row
	}
	assert.InDelta(t, 1000, byUnit[units.CombinedWeightUnit].TotalQuantity, 1e-9)
	assert.InDelta(t, 2000, byUnit[units.CombinedVolumeUnit].TotalQuantity, 1e-9)

	var split bool
	for _, ev := range collector.Events() {
		if ev.Kind == diagnostics.KindUnitMismatchSplit {
			split = true
		}
	}
	assert.True(t, split, "split must be observable")
}

func TestCombineIsIdempotent(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 2, 1.5),
		dalRiceItem("k2", "North", models.MealDinner, 1, 1),
	}
	opts := Options{CombineMealTypes: true, CombineKitchens: true}

	first := combiner.Combine(items, opts)
	second := combiner.Combine(items, opts)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Unit, second[i].Unit)
		assert.InDelta(t, first[i].TotalQuantity, second[i].TotalQuantity, 1e-9)
		assert.InDelta(t, first[i].TotalCost, second[i].TotalCost, 1e-9)
	}
}

func TestCombineFilters(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 1, 1),
		dalRiceItem("k2", "North", models.MealDinner, 1, 1),
	}

	rows := combiner.Combine(items, Options{
		CombineMealTypes:  true,
		CombineKitchens:   true,
		SelectedMealTypes: []models.MealType{models.MealLunch},
	})
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Len(t, row.Sources, 1)
		assert.Equal(t, models.MealLunch, row.Sources[0].MealType)
	}

	rows = combiner.Combine(items, Options{
		CombineMealTypes: true,
		CombineKitchens:  true,
		SelectedKitchens: []string{"k2"},
	})
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "k2", row.Sources[0].Kitchen.ID)
	}
}

func TestCombineUsesSnapshotOverTemplate(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	item := models.MenuItem{
		Kitchen: models.KitchenRef{ID: "k1", Name: "Central"}, MealType: models.MealLunch,
		Recipe: models.RecipeRef{
			Name: "Dal Rice",
			Ingredients: []models.Ingredient{
				{Name: "Rice", Quantity: 99, Unit: "kg", CostPerUnit: 30},
			},
		},
		Servings: 1, GhanFactor: 1,
		Ingredients: []models.Ingredient{
			{Name: "Rice", Quantity: 1, Unit: "kg", CostPerUnit: 30},
		},
	}

	rows := combiner.Combine([]models.MenuItem{item}, Options{CombineMealTypes: true, CombineKitchens: true})
	require.Len(t, rows, 1)
	assert.InDelta(t, 1000, rows[0].TotalQuantity, 1e-9)
}

func TestSummarize(t *testing.T) {
	combiner := NewCombiner(nil, nil, nil)
	items := []models.MenuItem{
		dalRiceItem("k1", "Central", models.MealLunch, 1, 1),
		dalRiceItem("k2", "North", models.MealDinner, 1, 1),
	}
	opts := Options{CombineMealTypes: false, CombineKitchens: false}

	rows := combiner.Combine(items, opts)
	summary := Summarize(rows, opts)

	assert.Equal(t, 4, summary.TotalRows)
	assert.Equal(t, 2, summary.UniqueIngredientNames)
	assert.InDelta(t, 2*(2*30+0.5*100), summary.TotalCost, 1e-9)
	assert.False(t, summary.MealTypesCombined)
	assert.False(t, summary.KitchensCombined)
}
