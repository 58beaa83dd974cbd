package recipe

import "context"

// Repository persists a recipe together with its ingredients and category
// links. Create, Update and Delete each run in a single transaction.
type Repository interface {
	// Create inserts the recipe, its ingredients and the links for every
	// category id that exists. Ids with no category row are returned as skipped.
	Create(ctx context.Context, r *Recipe, categoryIDs []int64) (skipped []int64, err error)
	// Update rewrites the recipe row owned by r.UserID and replaces its
	// ingredients and category links wholesale.
	Update(ctx context.Context, r *Recipe, categoryIDs []int64) (skipped []int64, err error)
	// Delete removes the recipe owned by ownerID with its ingredients,
	// category links and favorites. The deleted row is returned so the
	// caller can release its image.
	Delete(ctx context.Context, id, ownerID int64) (*Recipe, error)
	GetByID(ctx context.Context, id int64) (*Recipe, error)
	List(ctx context.Context, q ListingQuery) ([]*Recipe, error)
	ListFavorites(ctx context.Context, userID int64) ([]*Recipe, error)
	IsFavorite(ctx context.Context, userID, recipeID int64) (bool, error)
	// ToggleFavorite flips the favorite pair and reports whether it is now set.
	ToggleFavorite(ctx context.Context, userID, recipeID int64) (bool, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
