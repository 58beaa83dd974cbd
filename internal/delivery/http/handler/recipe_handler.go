package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	domainRecipe "recipe-manager/internal/domain/recipe"
	"recipe-manager/internal/logger"
	"recipe-manager/internal/session"
	"recipe-manager/internal/usecase/recipe"
	appErrors "recipe-manager/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgRecipeNotFound = "Recipe not found."
	msgInvalidRecipe  = "Invalid recipe."
	msgBadForm        = "The form could not be read. Please try again."
)

var ownerScopeLabels = map[domainRecipe.OwnerScope]string{
	domainRecipe.ScopeMineOrSystem: "My & Default Recipes",
	domainRecipe.ScopeMine:         "My Recipes",
	domainRecipe.ScopeSystem:       "Default Recipes",
	domainRecipe.ScopeAll:          "All Recipes",
}

type ownerOption struct {
	Value string
	Label string
}

type RecipeHandler struct {
	service *recipe.Service
}

func NewRecipeHandler(service *recipe.Service) *RecipeHandler {
	return &RecipeHandler{service: service}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Index)
	router.GET("/my-recipes", h.MyRecipes)
	router.GET("/favorites", h.Favorites)
	router.POST("/favorites/toggle", h.ToggleFavorite)

	recipes := router.Group("/recipes")
	{
		recipes.GET("/new", h.NewForm)
		recipes.POST("/new", h.Create)
		recipes.GET("/:id", h.Detail)
		recipes.GET("/:id/edit", h.EditForm)
		recipes.POST("/:id/edit", h.Update)
		recipes.POST("/:id/delete", h.Delete)
	}
}

func (h *RecipeHandler) Index(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), currentActor(c), recipe.ListFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		Owner:      c.Query("owner_filter"),
	})
	if err != nil {
		render(c, http.StatusInternalServerError, "index.html", gin.H{"Title": "Recipes"}, errorAlert(c, err))
		return
	}

	alerts := make([]session.Flash, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		alerts = append(alerts, session.Flash{Category: w.Level, Message: w.Message})
	}

	var selected int64
	if result.CategoryID != nil {
		selected = *result.CategoryID
	}

	owners := make([]ownerOption, 0, len(ownerScopeLabels))
	for _, scope := range domainRecipe.OwnerScopes() {
		owners = append(owners, ownerOption{Value: string(scope), Label: ownerScopeLabels[scope]})
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"Title":            "Recipes",
		"Recipes":          result.Recipes,
		"Categories":       result.Categories,
		"Search":           result.Search,
		"SelectedCategory": selected,
		"Owner":            string(result.Owner),
		"OwnerOptions":     owners,
		"SystemUserID":     h.service.SystemUserID(),
	}, alerts...)
}

func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	recipes, err := h.service.ListMine(c.Request.Context(), currentActor(c))
	if err != nil {
		render(c, http.StatusInternalServerError, "my_recipes.html", gin.H{"Title": "My Recipes"}, errorAlert(c, err))
		return
	}
	render(c, http.StatusOK, "my_recipes.html", gin.H{
		"Title":        "My Recipes",
		"Recipes":      recipes,
		"SystemUserID": h.service.SystemUserID(),
	})
}

func (h *RecipeHandler) Favorites(c *gin.Context) {
	recipes, err := h.service.ListFavorites(c.Request.Context(), currentActor(c))
	if err != nil {
		render(c, http.StatusInternalServerError, "favorites.html", gin.H{"Title": "My Favorites"}, errorAlert(c, err))
		return
	}
	render(c, http.StatusOK, "favorites.html", gin.H{
		"Title":        "My Favorites",
		"Recipes":      recipes,
		"SystemUserID": h.service.SystemUserID(),
	})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.PostForm("recipe_id"), 10, 64)
	if err != nil || recipeID <= 0 {
		redirectWithFlash(c, backTo(c, "/"), session.FlashDanger, msgInvalidRecipe)
		return
	}

	favorited, err := h.service.ToggleFavorite(c.Request.Context(), currentActor(c), recipeID)
	if err != nil {
		if appErrors.CodeOf(err) == appErrors.CodeNotFoundOrForbidden {
			redirectWithFlash(c, backTo(c, "/"), session.FlashDanger, msgInvalidRecipe)
			return
		}
		alert := errorAlert(c, err)
		redirectWithFlash(c, backTo(c, "/"), alert.Category, alert.Message)
		return
	}

	if favorited {
		redirectWithFlash(c, backTo(c, "/"), session.FlashSuccess, "Recipe added to favorites!")
		return
	}
	redirectWithFlash(c, "/favorites", session.FlashSuccess, "Recipe removed from favorites!")
}

func (h *RecipeHandler) Detail(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		redirectWithFlash(c, "/", session.FlashDanger, msgRecipeNotFound)
		return
	}

	detail, err := h.service.Get(c.Request.Context(), currentActor(c), id)
	if err != nil {
		if appErrors.CodeOf(err) == appErrors.CodeNotFoundOrForbidden {
			redirectWithFlash(c, "/", session.FlashDanger, msgRecipeNotFound)
			return
		}
		alert := errorAlert(c, err)
		redirectWithFlash(c, "/", alert.Category, alert.Message)
		return
	}

	render(c, http.StatusOK, "recipe_detail.html", gin.H{
		"Title":        detail.Recipe.Title,
		"Recipe":       detail.Recipe,
		"IsFavorite":   detail.IsFavorite,
		"IsOwnedByMe":  detail.IsOwnedByMe,
		"SystemUserID": h.service.SystemUserID(),
	})
}

func (h *RecipeHandler) NewForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, newFormView(), nil)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	in, closeUpload, err := bindRecipeInput(c)
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, newFormView(), []session.Flash{danger(msgBadForm)})
		return
	}
	defer closeUpload()

	result, err := h.service.Create(c.Request.Context(), currentActor(c), in)
	if err != nil {
		view := newFormView()
		view.fill(in)
		h.renderForm(c, statusFor(err), view, []session.Flash{errorAlert(c, err)})
		return
	}

	flashWarnings(c, result.Warnings)
	redirectWithFlash(c, recipePath(result.RecipeID), session.FlashSuccess, "Recipe added successfully!")
}

func (h *RecipeHandler) EditForm(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		redirectWithFlash(c, "/", session.FlashDanger, appErrors.MsgNotFoundOrDenied)
		return
	}

	rec, err := h.service.GetForEdit(c.Request.Context(), currentActor(c), id)
	if err != nil {
		alert := errorAlert(c, err)
		redirectWithFlash(c, "/", alert.Category, alert.Message)
		return
	}

	h.renderForm(c, http.StatusOK, editFormView(rec), nil)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		redirectWithFlash(c, "/", session.FlashDanger, appErrors.MsgNotFoundOrDenied)
		return
	}

	actor := currentActor(c)

	in, closeUpload, err := bindRecipeInput(c)
	if err != nil {
		rec, getErr := h.service.GetForEdit(c.Request.Context(), actor, id)
		if getErr != nil {
			alert := errorAlert(c, getErr)
			redirectWithFlash(c, "/", alert.Category, alert.Message)
			return
		}
		h.renderForm(c, http.StatusBadRequest, editFormView(rec), []session.Flash{danger(msgBadForm)})
		return
	}
	defer closeUpload()

	result, err := h.service.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		if appErrors.CodeOf(err) == appErrors.CodeNotFoundOrForbidden {
			redirectWithFlash(c, "/", session.FlashDanger, appErrors.MsgNotFoundOrDenied)
			return
		}
		view := &formView{ID: id, Editing: true}
		if rec, getErr := h.service.GetForEdit(c.Request.Context(), actor, id); getErr == nil {
			view = editFormView(rec)
		}
		view.fill(in)
		h.renderForm(c, statusFor(err), view, []session.Flash{errorAlert(c, err)})
		return
	}

	flashWarnings(c, result.Warnings)
	redirectWithFlash(c, recipePath(id), session.FlashSuccess, "Recipe updated successfully!")
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		redirectWithFlash(c, "/", session.FlashDanger, "Recipe not found or you don't have permission to delete it.")
		return
	}

	result, err := h.service.Delete(c.Request.Context(), currentActor(c), id)
	if err != nil {
		if appErrors.CodeOf(err) == appErrors.CodeNotFoundOrForbidden {
			redirectWithFlash(c, "/", session.FlashDanger, "Recipe not found or you don't have permission to delete it.")
			return
		}
		alert := errorAlert(c, err)
		redirectWithFlash(c, recipePath(id), alert.Category, alert.Message)
		return
	}

	flashWarnings(c, result.Warnings)
	redirectWithFlash(c, "/", session.FlashSuccess, "Recipe deleted successfully!")
}

func (h *RecipeHandler) renderForm(c *gin.Context, status int, view *formView, alerts []session.Flash) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		alerts = append(alerts, errorAlert(c, err))
	}
	if len(view.Ingredients) == 0 {
		view.Ingredients = []recipe.IngredientInput{{}}
	}

	title := "Add New Recipe"
	action := "/recipes/new"
	if view.Editing {
		title = "Edit Recipe"
		action = fmt.Sprintf("/recipes/%d/edit", view.ID)
	}

	render(c, status, "recipe_form.html", gin.H{
		"Title":      title,
		"Action":     action,
		"Form":       view,
		"Categories": categories,
	}, alerts...)
}

// formView is what the add and edit forms display, either loaded from a
// stored recipe or echoed back from a rejected submission.
type formView struct {
	ID            int64
	Editing       bool
	Title         string
	Description   string
	Instructions  string
	PrepTime      string
	CookTime      string
	ImageFilename string
	Ingredients   []recipe.IngredientInput
	Selected      map[string]bool
}

func newFormView() *formView {
	return &formView{Selected: map[string]bool{}}
}

func editFormView(rec *domainRecipe.Recipe) *formView {
	view := &formView{
		ID:            rec.ID,
		Editing:       true,
		Title:         rec.Title,
		Description:   rec.Description,
		Instructions:  rec.Instructions,
		PrepTime:      rec.PrepTime,
		CookTime:      rec.CookTime,
		ImageFilename: rec.ImageFilename,
		Ingredients:   recipe.IngredientInputs(rec.Ingredients),
		Selected:      map[string]bool{},
	}
	for _, id := range rec.CategoryIDs() {
		view.Selected[strconv.FormatInt(id, 10)] = true
	}
	return view
}

// fill copies a submission over the view so nothing typed is lost.
func (v *formView) fill(in *recipe.RecipeInput) {
	v.Title = in.Title
	v.Description = in.Description
	v.Instructions = in.Instructions
	v.PrepTime = in.PrepTime
	v.CookTime = in.CookTime
	v.Ingredients = in.Ingredients
	v.Selected = map[string]bool{}
	for _, id := range in.CategoryIDs {
		v.Selected[id] = true
	}
}

func (v *formView) IsSelected(id int64) bool {
	return v.Selected[strconv.FormatInt(id, 10)]
}

// bindRecipeInput reads the recipe form, its ingredient rows and the
// optional image. The returned func closes the upload.
func bindRecipeInput(c *gin.Context) (*recipe.RecipeInput, func(), error) {
	var in recipe.RecipeInput
	if err := c.ShouldBind(&in); err != nil {
		return nil, nil, err
	}

	in.Ingredients = recipe.ParseIngredientFields(c.Request.PostForm)
	in.RemoveImage = c.PostForm("delete_current_image") != ""

	closeUpload := func() {}
	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return nil, nil, err
	case header.Filename != "":
		file, err := header.Open()
		if err != nil {
			return nil, nil, err
		}
		in.Image = &recipe.ImageUpload{Filename: header.Filename, Content: file}
		closeUpload = closer(file, header.Filename)
	}

	return &in, closeUpload, nil
}

func closer(file multipart.File, name string) func() {
	return func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close upload", zap.String("filename", name), zap.Error(err))
		}
	}
}

func currentActor(c *gin.Context) recipe.Actor {
	userID, username := actorID(c)
	return recipe.Actor{UserID: userID, Username: username}
}

func recipeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func recipePath(id int64) string {
	return fmt.Sprintf("/recipes/%d", id)
}

func statusFor(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.CodeValidation, appErrors.CodeAsset:
		return http.StatusBadRequest
	case appErrors.CodeConflict:
		return http.StatusConflict
	case appErrors.CodeNotFoundOrForbidden:
		return http.StatusNotFound
	case appErrors.CodeInvalidCredentials, appErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
