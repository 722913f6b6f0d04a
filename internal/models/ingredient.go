package models

import (
	"fmt"
	"strings"
)

// GroupID identifies an ingredient group within its owning recipe or menu item.
type GroupID string

// Ingredient represents one ingredient line of a recipe or of a menu item's
// ingredient snapshot. Quantity is expressed in the ingredient's own unit and
// CostPerUnit is the cost of one such unit.
type Ingredient struct {
	Name        string  `yaml:"name"`
	Quantity    float64 `yaml:"quantity"`
	Unit        string  `yaml:"unit"`
	CostPerUnit float64 `yaml:"cost_per_unit"`
	GroupID     GroupID `yaml:"group_id,omitempty"`
}

// IngredientGroup is a named bucket that a recipe or menu item uses to
// organize its ingredients for display.
type IngredientGroup struct {
	ID        GroupID `yaml:"id"`
	Name      string  `yaml:"name"`
	SortOrder int     `yaml:"sort_order"`
}

// KeyName returns the ingredient name normalized for aggregation-key
// purposes. Display code keeps the original casing.
func (i Ingredient) KeyName() string {
	return strings.ToLower(strings.TrimSpace(i.Name))
}

// Cost returns the unscaled cost of this ingredient line.
func (i Ingredient) Cost() float64 {
	return i.Quantity * i.CostPerUnit
}

// ValidateIngredient checks a single ingredient line.
func ValidateIngredient(ing Ingredient) error {
	if strings.TrimSpace(ing.Name) == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if ing.Quantity < 0 {
		return fmt.Errorf("ingredient %q quantity must not be negative", ing.Name)
	}
	if ing.CostPerUnit < 0 {
		return fmt.Errorf("ingredient %q cost per unit must not be negative", ing.Name)
	}
	return nil
}
