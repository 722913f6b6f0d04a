package models

import (
	"fmt"
	"time"
)

// MealType represents the meal slot a menu item is planned for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes lists the meal slots in day order.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether mt is one of the known meal slots.
func (mt MealType) Valid() bool {
	switch mt {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// KitchenRef identifies the kitchen a menu item was planned in.
type KitchenRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// RecipeRef identifies the recipe behind a menu item together with the
// recipe's template ingredient list. The template is what the recipe editor
// saved; a menu item may carry its own edited snapshot on top of it.
type RecipeRef struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Ingredients []Ingredient `yaml:"ingredients,omitempty"`
}

// MenuItem is one planned (kitchen, date, meal slot, recipe) row. It is
// constructed by the persistence layer per report request and is read-only
// to the engine.
type MenuItem struct {
	Kitchen          KitchenRef        `yaml:"kitchen"`
	Date             time.Time         `yaml:"date"`
	MealType         MealType          `yaml:"meal_type"`
	Recipe           RecipeRef         `yaml:"recipe"`
	Servings         float64           `yaml:"servings"`
	GhanFactor       float64           `yaml:"ghan_factor"`
	Ingredients      []Ingredient      `yaml:"ingredients,omitempty"`
	IngredientGroups []IngredientGroup `yaml:"ingredient_groups,omitempty"`
}

// EffectiveIngredients returns the menu item's ingredient snapshot when one
// exists, falling back to the recipe template. The snapshot wins because it
// may have been edited independently of the recipe.
func (mi MenuItem) EffectiveIngredients() []Ingredient {
	if len(mi.Ingredients) > 0 {
		return mi.Ingredients
	}
	return mi.Recipe.Ingredients
}

// ValidateMenuItem checks the fields the engine relies on.
func ValidateMenuItem(mi MenuItem) error {
	if mi.Kitchen.ID == "" {
		return fmt.Errorf("menu item kitchen id is required")
	}
	if !mi.MealType.Valid() {
		return fmt.Errorf("menu item meal type %q is not valid", mi.MealType)
	}
	if mi.Recipe.Name == "" {
		return fmt.Errorf("menu item recipe name is required")
	}
	if mi.GhanFactor <= 0 {
		return fmt.Errorf("menu item ghan factor must be greater than 0")
	}
	if mi.Servings < 0 {
		return fmt.Errorf("menu item servings must not be negative")
	}
	return nil
}
