package recipe

import (
	"fmt"
	domainRecipe "recipe-manager/internal/domain/recipe"
	"recipe-manager/pkg/utils"
)

const (
	ingredientNameField = "ingredient_name_%d"
	ingredientQtyField  = "ingredient_qty_%d"
)

// ParseIngredientFields reads ingredient_name_{i} / ingredient_qty_{i} pairs
// from i = 0 until the name key is missing. Rows with a blank name are
// dropped; order is preserved.
func ParseIngredientFields(form map[string][]string) []IngredientInput {
	var out []IngredientInput
	for i := 0; ; i++ {
		names, ok := form[fmt.Sprintf(ingredientNameField, i)]
		if !ok {
			break
		}
		name := utils.SanitizeString(first(names))
		if name == "" {
			continue
		}
		out = append(out, IngredientInput{
			Name:     name,
			Quantity: utils.SanitizeString(first(form[fmt.Sprintf(ingredientQtyField, i)])),
		})
	}
	return out
}

// IngredientInputs converts stored ingredients back to form rows.
func IngredientInputs(ingredients []domainRecipe.Ingredient) []IngredientInput {
	out := make([]IngredientInput, len(ingredients))
	for i, ing := range ingredients {
		out[i] = IngredientInput{Name: ing.Name, Quantity: ing.QuantityUnit}
	}
	return out
}

func toIngredients(in []IngredientInput) []domainRecipe.Ingredient {
	out := make([]domainRecipe.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, domainRecipe.Ingredient{Name: ing.Name, QuantityUnit: ing.Quantity})
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
