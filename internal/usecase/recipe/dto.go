package recipe

import (
	"io"

	domainRecipe "recipe-manager/internal/domain/recipe"
	appErrors "recipe-manager/pkg/errors"
	"recipe-manager/pkg/utils"
)

// Actor is the authenticated caller of an owner-scoped operation.
type Actor struct {
	UserID   int64
	Username string
}

type IngredientInput struct {
	Name     string
	Quantity string
}

// ImageUpload is an uploaded file as received from the form.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type RecipeInput struct {
	Title        string            `form:"title" validate:"required,max=200"`
	Description  string            `form:"description" validate:"max=5000"`
	Instructions string            `form:"instructions" validate:"required,max=20000"`
	PrepTime     string            `form:"prep_time" validate:"max=100"`
	CookTime     string            `form:"cook_time" validate:"max=100"`
	Ingredients  []IngredientInput `form:"-" validate:"-"`
	CategoryIDs  []string          `form:"categories" validate:"-"`
	Image        *ImageUpload      `form:"-" validate:"-"`
	RemoveImage  bool              `form:"-"`
}

func (in *RecipeInput) hasImage() bool {
	return in.Image != nil && in.Image.Filename != "" && in.Image.Content != nil
}

// normalized returns a trimmed copy; the receiver is left untouched so a
// rejected form can be redisplayed exactly as submitted.
func (in *RecipeInput) normalized() *RecipeInput {
	out := *in
	out.Title = utils.SanitizeString(in.Title)
	out.Description = utils.SanitizeText(in.Description)
	out.Instructions = utils.SanitizeText(in.Instructions)
	out.PrepTime = utils.SanitizeString(in.PrepTime)
	out.CookTime = utils.SanitizeString(in.CookTime)
	return &out
}

var inputMessages = map[string]string{
	"title.required":        msgTitleInstructionsRequired,
	"instructions.required": msgTitleInstructionsRequired,
	"title.max":             "Recipe title must be at most 200 characters.",
	"description.max":       "Description is too long.",
	"instructions.max":      "Instructions are too long.",
	"prep_time.max":         "Prep time must be at most 100 characters.",
	"cook_time.max":         "Cook time must be at most 100 characters.",
}

// Rejection is returned when a write is refused before anything is stored.
// Input is the submission exactly as received.
type Rejection struct {
	Input *RecipeInput
	Err   *appErrors.AppError
}

func (r *Rejection) Error() string {
	return r.Err.Error()
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

type WriteResult struct {
	RecipeID int64
	Warnings []string
}

type DeleteResult struct {
	Title    string
	Warnings []string
}

type ListFilter struct {
	Search     string
	CategoryID string
	Owner      string
}

type ListResult struct {
	Recipes    []*domainRecipe.Recipe
	Categories []domainRecipe.Category
	Search     string
	CategoryID *int64
	Owner      domainRecipe.OwnerScope
	Warnings   []Warning
}

// Warning is a recoverable problem with a user-facing message. Level follows
// the flash categories used by the templates.
type Warning struct {
	Level   string
	Message string
}

type RecipeDetail struct {
	Recipe      *domainRecipe.Recipe
	IsFavorite  bool
	IsOwnedByMe bool
}
