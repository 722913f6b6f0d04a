package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MenuPlan is the document shape produced by the persistence layer (or a
// fixture file) for one report request.
type MenuPlan struct {
	Title     string     `yaml:"title,omitempty"`
	MenuItems []MenuItem `yaml:"menu_items"`
}

// LoadMenuPlan reads a menu-plan YAML document from path.
func LoadMenuPlan(path string) (*MenuPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu plan: %w", err)
	}
	return ParseMenuPlan(data)
}

// ParseMenuPlan decodes a menu-plan YAML document and validates every menu
// item in it.
func ParseMenuPlan(data []byte) (*MenuPlan, error) {
	var plan MenuPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse menu plan: %w", err)
	}
	for i, mi := range plan.MenuItems {
		if err := ValidateMenuItem(mi); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", i, err)
		}
	}
	return &plan, nil
}
