package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	domainRecipe "recipe-manager/internal/domain/recipe"
	"recipe-manager/internal/logger"
	"recipe-manager/internal/media"
	"recipe-manager/internal/metrics"
	appErrors "recipe-manager/pkg/errors"
	"recipe-manager/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgTitleInstructionsRequired = "Recipe title and instructions are required."
	msgImageNotProcessed         = "Error processing image. Please try another file."
	msgImageNotRemoved           = "The recipe was saved, but its previous image could not be removed."
	msgInvalidOwnerFilter        = "Invalid owner filter selected. Displaying 'My & Default Recipes'."
	msgInvalidCategory           = "Invalid category selected."

	LevelWarning = "warning"
	LevelDanger  = "danger"
)

type ImageStore interface {
	Save(ext string, r io.Reader) (string, error)
	Delete(name string) error
	Path(name string) string
}

type ImageNormalizer interface {
	Normalize(path string) error
}

// Service implements recipe use cases
type Service struct {
	recipeRepo   domainRecipe.Repository
	categoryRepo domainRecipe.CategoryRepository
	images       ImageStore
	normalizer   ImageNormalizer
	systemUserID int64
}

// NewService creates a new recipe service. systemUserID owns the default
// recipes shown in the system-owned listing scope.
func NewService(
	recipeRepo domainRecipe.Repository,
	categoryRepo domainRecipe.CategoryRepository,
	images ImageStore,
	normalizer ImageNormalizer,
	systemUserID int64,
) *Service {
	return &Service{
		recipeRepo:   recipeRepo,
		categoryRepo: categoryRepo,
		images:       images,
		normalizer:   normalizer,
		systemUserID: systemUserID,
	}
}

func (s *Service) SystemUserID() int64 {
	return s.systemUserID
}

func (s *Service) Categories(ctx context.Context) ([]domainRecipe.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, appErrors.Storage(err)
	}
	return categories, nil
}

// List runs the filtered listing. Bad filter values never fail the call:
// they are dropped and reported in the result warnings.
func (s *Service) List(ctx context.Context, actor Actor, filter ListFilter) (*ListResult, error) {
	result := &ListResult{Search: strings.TrimSpace(filter.Search)}

	scope, ok := domainRecipe.ParseOwnerScope(filter.Owner)
	if !ok {
		result.Warnings = append(result.Warnings, Warning{Level: LevelWarning, Message: msgInvalidOwnerFilter})
	}
	result.Owner = scope

	if raw := strings.TrimSpace(filter.CategoryID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		valid := err == nil
		if valid {
			valid, err = s.categoryRepo.Exists(ctx, id)
			if err != nil {
				return nil, appErrors.Storage(err)
			}
		}
		if valid {
			result.CategoryID = &id
		} else {
			result.Warnings = append(result.Warnings, Warning{Level: LevelDanger, Message: msgInvalidCategory})
		}
	}

	recipes, err := s.recipeRepo.List(ctx, domainRecipe.ListingQuery{
		SearchText:    result.Search,
		CategoryID:    result.CategoryID,
		Scope:         scope,
		CurrentUserID: actor.UserID,
		SystemUserID:  s.systemUserID,
	})
	if err != nil {
		logger.Error("Failed to list recipes", zap.Int64("user_id", actor.UserID), zap.Error(err))
		return nil, appErrors.Storage(err)
	}
	result.Recipes = recipes

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	result.Categories = categories

	return result, nil
}

// ListMine lists only the caller's own recipes.
func (s *Service) ListMine(ctx context.Context, actor Actor) ([]*domainRecipe.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx, domainRecipe.ListingQuery{
		Scope:         domainRecipe.ScopeMine,
		CurrentUserID: actor.UserID,
		SystemUserID:  s.systemUserID,
	})
	if err != nil {
		return nil, appErrors.Storage(err)
	}
	return recipes, nil
}

func (s *Service) ListFavorites(ctx context.Context, actor Actor) ([]*domainRecipe.Recipe, error) {
	recipes, err := s.recipeRepo.ListFavorites(ctx, actor.UserID)
	if err != nil {
		return nil, appErrors.Storage(err)
	}
	return recipes, nil
}

// Get returns any recipe for viewing, with the caller's favorite flag.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*RecipeDetail, error) {
	rec, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainRecipe.ErrRecipeNotFound) {
			return nil, appErrors.NotFoundOrForbidden()
		}
		return nil, appErrors.Storage(err)
	}

	fav, err := s.recipeRepo.IsFavorite(ctx, actor.UserID, id)
	if err != nil {
		return nil, appErrors.Storage(err)
	}

	return &RecipeDetail{Recipe: rec, IsFavorite: fav, IsOwnedByMe: rec.IsOwnedBy(actor.UserID)}, nil
}

// GetForEdit returns the recipe only when the caller owns it.
func (s *Service) GetForEdit(ctx context.Context, actor Actor, id int64) (*domainRecipe.Recipe, error) {
	rec, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainRecipe.ErrRecipeNotFound) {
			return nil, appErrors.NotFoundOrForbidden()
		}
		return nil, appErrors.Storage(err)
	}
	if !rec.IsOwnedBy(actor.UserID) {
		return nil, appErrors.NotFoundOrForbidden()
	}
	return rec, nil
}

func (s *Service) Create(ctx context.Context, actor Actor, in *RecipeInput) (*WriteResult, error) {
	clean, err := s.prepare(in, true)
	if err != nil {
		metrics.RecipeWrites.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}

	categoryIDs, warnings := parseCategoryIDs(clean.CategoryIDs)

	var imageName string
	if clean.hasImage() {
		name, warn := s.storeImage(clean.Image)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		imageName = name
	}

	rec := &domainRecipe.Recipe{
		UserID:        actor.UserID,
		Title:         clean.Title,
		Description:   clean.Description,
		Instructions:  clean.Instructions,
		PrepTime:      clean.PrepTime,
		CookTime:      clean.CookTime,
		ImageFilename: imageName,
		Ingredients:   toIngredients(clean.Ingredients),
	}

	skipped, err := s.recipeRepo.Create(ctx, rec, categoryIDs)
	if err != nil {
		s.discardImage(imageName)
		metrics.RecipeWrites.WithLabelValues("create", "error").Inc()
		logger.Error("Failed to create recipe",
			zap.Int64("user_id", actor.UserID),
			zap.String("event", "recipe_create_failed"),
			zap.Error(err),
		)
		return nil, appErrors.Storage(err)
	}
	warnings = append(warnings, skippedCategoryWarnings(skipped)...)

	metrics.RecipeWrites.WithLabelValues("create", "ok").Inc()
	logger.Info("Recipe created",
		zap.Int64("recipe_id", rec.ID),
		zap.Int64("user_id", actor.UserID),
		zap.Int("ingredients", len(rec.Ingredients)),
		zap.Bool("has_image", rec.HasImage()),
		zap.String("event", "recipe_created"),
	)

	return &WriteResult{RecipeID: rec.ID, Warnings: warnings}, nil
}

func (s *Service) Update(ctx context.Context, actor Actor, id int64, in *RecipeInput) (*WriteResult, error) {
	existing, err := s.GetForEdit(ctx, actor, id)
	if err != nil {
		metrics.RecipeWrites.WithLabelValues("update", "denied").Inc()
		return nil, err
	}

	// a remove request wins over a new upload, so the upload is not looked at
	clean, err := s.prepare(in, !in.RemoveImage)
	if err != nil {
		metrics.RecipeWrites.WithLabelValues("update", "rejected").Inc()
		return nil, err
	}

	categoryIDs, warnings := parseCategoryIDs(clean.CategoryIDs)

	imageName := existing.ImageFilename
	var newImage string
	releaseOld := false

	switch {
	case clean.RemoveImage:
		imageName = ""
		releaseOld = existing.HasImage()
	case clean.hasImage():
		name, warn := s.storeImage(clean.Image)
		if warn != "" {
			// the previous image stays attached when the replacement is unusable
			warnings = append(warnings, warn)
			break
		}
		newImage = name
		imageName = name
		releaseOld = existing.HasImage()
	}

	rec := &domainRecipe.Recipe{
		ID:            id,
		UserID:        actor.UserID,
		Title:         clean.Title,
		Description:   clean.Description,
		Instructions:  clean.Instructions,
		PrepTime:      clean.PrepTime,
		CookTime:      clean.CookTime,
		ImageFilename: imageName,
		Ingredients:   toIngredients(clean.Ingredients),
	}

	skipped, err := s.recipeRepo.Update(ctx, rec, categoryIDs)
	if err != nil {
		s.discardImage(newImage)
		if errors.Is(err, domainRecipe.ErrRecipeNotFound) {
			metrics.RecipeWrites.WithLabelValues("update", "denied").Inc()
			return nil, appErrors.NotFoundOrForbidden()
		}
		metrics.RecipeWrites.WithLabelValues("update", "error").Inc()
		logger.Error("Failed to update recipe",
			zap.Int64("recipe_id", id),
			zap.Int64("user_id", actor.UserID),
			zap.String("event", "recipe_update_failed"),
			zap.Error(err),
		)
		return nil, appErrors.Storage(err)
	}
	warnings = append(warnings, skippedCategoryWarnings(skipped)...)

	// the old file goes only once the new state is committed
	if releaseOld {
		if err := s.images.Delete(existing.ImageFilename); err != nil {
			logger.Warn("Failed to delete previous recipe image",
				zap.Int64("recipe_id", id),
				zap.String("image", existing.ImageFilename),
				zap.Error(err),
			)
			warnings = append(warnings, msgImageNotRemoved)
		}
	}

	metrics.RecipeWrites.WithLabelValues("update", "ok").Inc()
	logger.Info("Recipe updated",
		zap.Int64("recipe_id", id),
		zap.Int64("user_id", actor.UserID),
		zap.Int("ingredients", len(rec.Ingredients)),
		zap.Bool("image_removed", clean.RemoveImage),
		zap.Bool("image_replaced", newImage != ""),
		zap.String("event", "recipe_updated"),
	)

	return &WriteResult{RecipeID: id, Warnings: warnings}, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id int64) (*DeleteResult, error) {
	deleted, err := s.recipeRepo.Delete(ctx, id, actor.UserID)
	if err != nil {
		if errors.Is(err, domainRecipe.ErrRecipeNotFound) {
			metrics.RecipeWrites.WithLabelValues("delete", "denied").Inc()
			return nil, appErrors.NotFoundOrForbidden()
		}
		metrics.RecipeWrites.WithLabelValues("delete", "error").Inc()
		logger.Error("Failed to delete recipe",
			zap.Int64("recipe_id", id),
			zap.Int64("user_id", actor.UserID),
			zap.Error(err),
		)
		return nil, appErrors.Storage(err)
	}

	result := &DeleteResult{Title: deleted.Title}
	if deleted.HasImage() {
		if err := s.images.Delete(deleted.ImageFilename); err != nil {
			logger.Warn("Failed to delete recipe image",
				zap.Int64("recipe_id", id),
				zap.String("image", deleted.ImageFilename),
				zap.Error(err),
			)
			result.Warnings = append(result.Warnings, "Recipe deleted, but its image file could not be removed.")
		}
	}

	metrics.RecipeWrites.WithLabelValues("delete", "ok").Inc()
	logger.Info("Recipe deleted",
		zap.Int64("recipe_id", id),
		zap.Int64("user_id", actor.UserID),
		zap.String("event", "recipe_deleted"),
	)
	return result, nil
}

// ToggleFavorite flips the caller's favorite on the recipe and reports the
// new state.
func (s *Service) ToggleFavorite(ctx context.Context, actor Actor, recipeID int64) (bool, error) {
	favorited, err := s.recipeRepo.ToggleFavorite(ctx, actor.UserID, recipeID)
	if err != nil {
		if errors.Is(err, domainRecipe.ErrRecipeNotFound) {
			return false, appErrors.NotFoundOrForbidden()
		}
		return false, appErrors.Storage(err)
	}

	state := "removed"
	if favorited {
		state = "added"
	}
	metrics.FavoriteToggles.WithLabelValues(state).Inc()
	logger.Info("Favorite toggled",
		zap.Int64("recipe_id", recipeID),
		zap.Int64("user_id", actor.UserID),
		zap.Bool("favorited", favorited),
		zap.String("event", "favorite_toggled"),
	)
	return favorited, nil
}

// prepare validates the submission without touching storage. checkImage
// controls whether an attached file must pass the extension allow-list.
func (s *Service) prepare(in *RecipeInput, checkImage bool) (*RecipeInput, error) {
	clean := in.normalized()

	if err := utils.ValidateStruct(clean); err != nil {
		msg := utils.ValidationMessage(err, inputMessages, msgTitleInstructionsRequired)
		return nil, &Rejection{Input: in, Err: appErrors.Validation(msg)}
	}

	if !checkImage {
		clean.Image = nil
		return clean, nil
	}

	if clean.hasImage() {
		if _, ok := media.IsAllowed(clean.Image.Filename); !ok {
			return nil, &Rejection{
				Input: in,
				Err:   appErrors.Asset(appErrors.MsgInvalidFileType, appErrors.ErrInvalidFileType),
			}
		}
	}
	return clean, nil
}

// storeImage writes and normalizes an upload. On failure nothing is kept
// and a warning is returned instead of an error.
func (s *Service) storeImage(upload *ImageUpload) (string, string) {
	name, err := s.images.Save(media.Extension(upload.Filename), upload.Content)
	if err != nil {
		metrics.ImageNormalizations.WithLabelValues("write_failed").Inc()
		logger.Warn("Failed to store uploaded image",
			zap.String("filename", upload.Filename),
			zap.Error(err),
		)
		return "", msgImageNotProcessed
	}

	if err := s.normalizer.Normalize(s.images.Path(name)); err != nil {
		s.discardImage(name)
		metrics.ImageNormalizations.WithLabelValues("failed").Inc()
		logger.Warn("Failed to normalize uploaded image",
			zap.String("filename", upload.Filename),
			zap.String("stored_as", name),
			zap.Error(err),
		)
		return "", msgImageNotProcessed
	}

	metrics.ImageNormalizations.WithLabelValues("ok").Inc()
	return name, ""
}

func (s *Service) discardImage(name string) {
	if name == "" {
		return
	}
	if err := s.images.Delete(name); err != nil {
		logger.Warn("Failed to discard image", zap.String("image", name), zap.Error(err))
	}
}

// parseCategoryIDs keeps the numeric ids and reports the rest.
func parseCategoryIDs(raw []string) ([]int64, []string) {
	var ids []int64
	var warnings []string
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			warnings = append(warnings, invalidCategoryWarning(v))
			continue
		}
		ids = append(ids, id)
	}
	return ids, warnings
}

func skippedCategoryWarnings(skipped []int64) []string {
	warnings := make([]string, 0, len(skipped))
	for _, id := range skipped {
		warnings = append(warnings, invalidCategoryWarning(strconv.FormatInt(id, 10)))
	}
	return warnings
}

func invalidCategoryWarning(id string) string {
	return fmt.Sprintf("Invalid category ID '%s' was selected and ignored.", id)
}
