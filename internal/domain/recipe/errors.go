package recipe

import "errors"

var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrCategoryNotFound = errors.New("category not found")
)
