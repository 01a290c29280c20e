package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/middleware"
	"quickbite-backend/internal/models"
	"quickbite-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const multipartMemoryLimit = 32 << 20

// Uploader stores uploaded image bytes and returns a stable locator
type Uploader interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// RecipeHandler handles recipe-related HTTP requests and orchestrates the
// stores and the realtime hub
type RecipeHandler struct {
	recipeService  *services.RecipeService
	commentService *services.CommentService
	storage        Uploader
	hub            *services.WSHub
	maxFileSize    int64
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(
	recipeService *services.RecipeService,
	commentService *services.CommentService,
	storage Uploader,
	hub *services.WSHub,
	maxFileSize int64,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		commentService: commentService,
		storage:        storage,
		hub:            hub,
		maxFileSize:    maxFileSize,
	}
}

// recipeListItem is a recipe with its computed display image
type recipeListItem struct {
	*models.Recipe
	MainImage *string `json:"mainImage"`
}

// recipeDetail is a recipe with gallery split and embedded comments
type recipeDetail struct {
	*models.Recipe
	MainImage         *string              `json:"mainImage"`
	FinalProductImage *models.RecipeImage  `json:"finalProductImage,omitempty"`
	OtherImages       []models.RecipeImage `json:"otherImages"`
	Comments          []*models.Comment    `json:"comments"`
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	filter := models.RecipeFilter{
		Search:     r.URL.Query().Get("search"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		filter.Tags = splitAndTrim(tags)
	}

	recipes, err := h.recipeService.ListRecipes(r.Context(), filter)
	if err != nil {
		respondAppError(w, err)
		return
	}

	items := make([]recipeListItem, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, recipeListItem{
			Recipe:    recipe,
			MainImage: displayImageURL(recipe.Images),
		})
	}
	respondJSON(w, http.StatusOK, items)
}

// GetRecipe handles GET /api/recipes/{id}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	recipe, err := h.recipeService.GetRecipe(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	comments, err := h.commentService.ListComments(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	final, others := models.SplitGallery(recipe.Images)
	respondJSON(w, http.StatusOK, recipeDetail{
		Recipe:            recipe,
		MainImage:         displayImageURL(recipe.Images),
		FinalProductImage: final,
		OtherImages:       others,
		Comments:          comments,
	})
}

// CreateRecipe handles POST /api/recipes (multipart, up to 5 image parts)
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	images, err := h.uploadImages(ctx, r)
	if err != nil {
		respondAppError(w, err)
		return
	}

	req := services.CreateRecipeRequest{
		Title:             r.FormValue("title"),
		Description:       r.FormValue("description"),
		Ingredients:       formList(r, "ingredients"),
		Instructions:      formList(r, "instructions"),
		PrepTime:          formInt(r, "prepTime"),
		CookTime:          formInt(r, "cookTime"),
		Servings:          formInt(r, "servings"),
		Difficulty:        r.FormValue("difficulty"),
		Tags:              formList(r, "tags"),
		Images:            images,
		FinalProductIndex: formIndex(r, "isFinalProduct"),
	}

	recipe, err := h.recipeService.CreateRecipe(ctx, userID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("recipe_id", recipe.ID).
		Int("images", len(recipe.Images)).
		Msg("Recipe created")

	respondJSON(w, http.StatusCreated, recipeListItem{
		Recipe:    recipe,
		MainImage: displayImageURL(recipe.Images),
	})
}

// AppendImages handles POST /api/recipes/{id}/images (author only)
func (h *RecipeHandler) AppendImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	recipeID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	images, err := h.uploadImages(ctx, r)
	if err != nil {
		respondAppError(w, err)
		return
	}

	updated, err := h.recipeService.AppendImages(ctx, recipeID, userID, images, formIndex(r, "isFinalProduct"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("recipe_id", recipeID).
		Int("images", len(updated)).
		Msg("Images appended")

	respondJSON(w, http.StatusOK, map[string]any{"images": updated})
}

// ToggleLike handles POST /api/recipes/{id}/like
func (h *RecipeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	recipeID := chi.URLParam(r, "id")

	likes, liked, err := h.recipeService.ToggleLike(ctx, recipeID, userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"likes": likes, "liked": liked})
}

// CommentRequest represents a comment creation request
type CommentRequest struct {
	Text string `json:"text"`
}

// CreateComment handles POST /api/recipes/{id}/comments. The created
// comment is returned to the caller right away; fan-out to topic
// subscribers happens in the background and never fails the response.
func (h *RecipeHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	recipeID := chi.URLParam(r, "id")

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.CreateComment(ctx, recipeID, userID, req.Text)
	if err != nil {
		respondAppError(w, err)
		return
	}

	go h.hub.Publish(recipeID, services.WSEvent{
		Type:     "comment_added",
		RecipeID: recipeID,
		Comment:  comment,
	})

	respondJSON(w, http.StatusCreated, comment)
}

// uploadImages reads image parts from the multipart form, enforces the
// per-file size ceiling and uploads each to storage. Captions are matched
// positionally.
func (h *RecipeHandler) uploadImages(ctx context.Context, r *http.Request) ([]models.RecipeImage, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	captions := r.MultipartForm.Value["captions"]
	files := r.MultipartForm.File["images"]

	images := make([]models.RecipeImage, 0, len(files))
	for i, header := range files {
		if header.Size > h.maxFileSize {
			return nil, apperrors.PayloadTooLarge(
				"File too large. Maximum size is %dMB.", h.maxFileSize>>20)
		}

		file, err := header.Open()
		if err != nil {
			return nil, apperrors.Validation("failed to read uploaded file %q", header.Filename)
		}

		url, err := h.storage.UploadImage(ctx, header.Filename, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			return nil, err
		}

		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}
		images = append(images, models.RecipeImage{URL: url, Caption: caption})
	}
	return images, nil
}

// displayImageURL resolves the display image locator for a list of images
func displayImageURL(images []models.RecipeImage) *string {
	if img := models.DisplayImage(images); img != nil {
		return &img.URL
	}
	return nil
}

func formList(r *http.Request, key string) []string {
	values := r.MultipartForm.Value[key]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		return splitAndTrim(values[0])
	}
	return values
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.FormValue(key))
	return n
}

// formIndex parses a positional image index; any non-numeric value means no
// image is flagged
func formIndex(r *http.Request, key string) int {
	value := r.FormValue(key)
	if value == "" {
		return services.NoFinalProductImage
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return services.NoFinalProductImage
	}
	return n
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
