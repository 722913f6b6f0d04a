// Package grouping partitions ingredient lists into their display groups.
// Recipes and menu items both own groups; the same logic serves both.
package grouping

import (
	"sort"

	"rasoi/internal/models"
)

// UngroupedName is the synthetic bucket for ingredients without a
// resolvable group assignment.
const UngroupedName = "Ungrouped"

// ungroupedSortOrder places the synthetic bucket after real groups unless a
// real group also claims 999.
const ungroupedSortOrder = 999

// Bucket is one named group of ingredients in display order. GroupID is
// empty for the synthetic ungrouped bucket.
type Bucket struct {
	GroupID     models.GroupID
	Name        string
	SortOrder   int
	Ingredients []models.Ingredient
}

// Group partitions ingredients into buckets keyed by group name. An
// ingredient whose group id is absent or does not resolve against groups
// lands in the "Ungrouped" bucket; dangling references never fail the run.
// Within each bucket, ingredients are ordered by name (case-sensitive).
func Group(ingredients []models.Ingredient, groups []models.IngredientGroup) map[string]Bucket {
	byID := make(map[models.GroupID]models.IngredientGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	buckets := make(map[string]Bucket)
	for _, ing := range ingredients {
		name := UngroupedName
		groupID := models.GroupID("")
		order := ungroupedSortOrder
		if g, ok := byID[ing.GroupID]; ok && ing.GroupID != "" {
			name = g.Name
			groupID = g.ID
			order = g.SortOrder
		}
		b, ok := buckets[name]
		if !ok {
			b = Bucket{GroupID: groupID, Name: name, SortOrder: order}
		}
		b.Ingredients = append(b.Ingredients, ing)
		buckets[name] = b
	}

	for name, b := range buckets {
		sort.Slice(b.Ingredients, func(i, j int) bool {
			return b.Ingredients[i].Name < b.Ingredients[j].Name
		})
		buckets[name] = b
	}
	return buckets
}

// SortedGroupNames returns the bucket names ordered by (sort order, name)
// ascending, which puts "Ungrouped" last in the usual case.
func SortedGroupNames(grouped map[string]Bucket) []string {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := grouped[names[i]], grouped[names[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})
	return names
}

// HasCustomGroups reports whether a group list carries real user-defined
// groups. Report views render a flat list when it is false.
func HasCustomGroups(groups []models.IngredientGroup) bool {
	if len(groups) == 0 {
		return false
	}
	if len(groups) == 1 && groups[0].Name == UngroupedName {
		return false
	}
	return true
}
