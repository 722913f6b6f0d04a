package scaling

import (
	"fmt"
	"strings"

	"rasoi/internal/models"
	"rasoi/internal/units"
)

// ScaledIngredient is the per-ingredient breakdown behind a ScalingResult.
type ScaledIngredient struct {
	Name     string
	Quantity float64
	Unit     string
	Grams    float64
	Cost     float64
}

// ScalingResult holds the financial and serving metrics for one recipe
// cooked at a given ghan factor. It is derived data; nothing here is ever
// persisted by the engine.
type ScalingResult struct {
	TotalWeightGrams     float64
	TotalCost            float64
	GhanWeightGrams      float64
	TotalGhanWeightGrams float64
	PersonsPerGhan       float64
	TotalPersons         float64
	CostPerPerson        float64
	Ingredients          []ScaledIngredient
}

// ServingSize is a per-person serving expressed in some unit.
type ServingSize struct {
	Amount float64
	Unit   string
}

// Recommended per-person serving defaults by meal slot, used only when the
// caller supplies no serving size of its own.
var defaultServingGrams = map[models.MealType]float64{
	models.MealBreakfast: 150,
	models.MealLunch:     250,
	models.MealDinner:    300,
	models.MealSnack:     75,
}

// DefaultServing returns the fallback serving size for a meal slot.
func DefaultServing(mt models.MealType) ServingSize {
	grams, ok := defaultServingGrams[mt]
	if !ok {
		grams = defaultServingGrams[models.MealLunch]
	}
	return ServingSize{Amount: grams, Unit: "g"}
}

// Scaler computes scaling results using a unit converter.
type Scaler struct {
	conv *units.Converter
}

// NewScaler creates a Scaler. A nil converter uses the default unit table
// with diagnostics discarded.
func NewScaler(conv *units.Converter) *Scaler {
	if conv == nil {
		conv = units.NewConverter(nil, nil)
	}
	return &Scaler{conv: conv}
}

// ValidateInputs collects every violation in the scaling inputs. It never
// stops at the first problem; the complete list is returned so the caller
// can surface all of them at once.
func ValidateInputs(ingredients []models.Ingredient, ghanFactor float64, serving ServingSize) ValidationErrors {
	var errs ValidationErrors
	if ghanFactor <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ghan_factor",
			Message: "must be greater than 0",
		})
	}
	if serving.Amount <= 0 {
		errs = append(errs, ValidationError{
			Field:   "serving_amount",
			Message: "must be greater than 0",
		})
	}
	for i, ing := range ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if strings.TrimSpace(ing.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "must not be empty",
			})
		}
		if ing.Quantity < 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".quantity",
				Message: "must not be negative",
			})
		}
		if ing.CostPerUnit < 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".cost_per_unit",
				Message: "must not be negative",
			})
		}
	}
	return errs
}

// Scale computes the metrics for one recipe at a ghan factor and target
// serving size. An empty ingredient list is not an error; it yields an
// all-zero result.
//
// One ghan is defined as the recipe as written, so the ghan weight is the
// plain sum of ingredient weights. Cost is computed in each ingredient's own
// unit because cost-per-unit is defined against that unit; converting cost
// through grams would double-apply the factor.
func (s *Scaler) Scale(ingredients []models.Ingredient, ghanFactor float64, serving ServingSize) (ScalingResult, error) {
	if errs := ValidateInputs(ingredients, ghanFactor, serving); errs.Any() {
		return ScalingResult{}, errs
	}

	result := ScalingResult{
		Ingredients: make([]ScaledIngredient, 0, len(ingredients)),
	}
	for _, ing := range ingredients {
		grams := s.conv.ToGrams(ing.Quantity, ing.Unit)
		cost := ing.Quantity * ing.CostPerUnit * ghanFactor
		result.TotalWeightGrams += grams
		result.TotalCost += cost
		result.Ingredients = append(result.Ingredients, ScaledIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Grams:    grams,
			Cost:     cost,
		})
	}

	result.GhanWeightGrams = result.TotalWeightGrams
	result.TotalGhanWeightGrams = result.GhanWeightGrams * ghanFactor

	servingGrams := s.conv.ToGrams(serving.Amount, serving.Unit)
	if servingGrams > 0 {
		result.PersonsPerGhan = result.GhanWeightGrams / servingGrams
	}
	result.TotalPersons = result.PersonsPerGhan * ghanFactor
	if result.TotalPersons > 0 {
		result.CostPerPerson = result.TotalCost / result.TotalPersons
	}
	return result, nil
}

// ScaleMenuItem scales a menu item using its effective ingredient list and
// ghan factor. When the caller supplies no serving size, the meal slot's
// recommended default applies.
func (s *Scaler) ScaleMenuItem(mi models.MenuItem, serving ServingSize) (ScalingResult, error) {
	if serving.Amount <= 0 {
		serving = DefaultServing(mi.MealType)
	}
	return s.Scale(mi.EffectiveIngredients(), mi.GhanFactor, serving)
}
