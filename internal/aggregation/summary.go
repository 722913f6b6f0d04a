package aggregation

import "strings"

// Summary is the display header for a combination run.
type Summary struct {
	TotalRows             int
	TotalCost             float64
	UniqueIngredientNames int
	MealTypesCombined     bool
	KitchensCombined      bool
}

// Summarize computes the header figures for a set of combined rows. Unique
// names are counted case-insensitively, matching the aggregation key.
func Summarize(rows []CombinedIngredient, opts Options) Summary {
	names := make(map[string]bool, len(rows))
	summary := Summary{
		TotalRows:         len(rows),
		MealTypesCombined: opts.CombineMealTypes,
		KitchensCombined:  opts.CombineKitchens,
	}
	for _, row := range rows {
		summary.TotalCost += row.TotalCost
		names[strings.ToLower(strings.TrimSpace(row.Name))] = true
	}
	summary.UniqueIngredientNames = len(names)
	return summary
}
