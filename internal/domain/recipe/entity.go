package recipe

import "time"

type Recipe struct {
	ID            int64
	UserID        int64
	Title         string
	Description   string
	Instructions  string
	PrepTime      string
	CookTime      string
	ImageFilename string
	OwnerUsername string
	Ingredients   []Ingredient
	Categories    []Category
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Recipe) HasImage() bool {
	return r.ImageFilename != ""
}

func (r *Recipe) IsOwnedBy(userID int64) bool {
	return r.UserID == userID
}

// CategoryIDs returns the ids of the linked categories in display order.
func (r *Recipe) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

type Ingredient struct {
	ID           int64
	RecipeID     int64
	Name         string
	QuantityUnit string
}

type Category struct {
	ID   int64
	Name string
}
