package handlers

import (
	"encoding/json"
	"net/http"

	"quickbite-backend/internal/middleware"
	"quickbite-backend/internal/models"
	"quickbite-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const profileRecipeLimit = 10

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService   *services.UserService
	recipeService *services.RecipeService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, recipeService *services.RecipeService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		recipeService: recipeService,
	}
}

// GetProfile handles GET /api/users/{id}. The contact block is present in
// the response only when the profile owner opted in; who is asking does not
// matter.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.userService.GetPublicProfile(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	recipes, err := h.recipeService.ListByAuthor(r.Context(), id, profileRecipeLimit)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if recipes == nil {
		recipes = []*models.Recipe{}
	}
	profile.Recipes = recipes

	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/users/profile (self only)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, update)
	if err != nil {
		respondAppError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Msg("Profile updated")
	respondJSON(w, http.StatusOK, user)
}

// GetUserRecipes handles GET /api/users/{id}/recipes
func (h *UserHandler) GetUserRecipes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	recipes, err := h.recipeService.ListByAuthor(r.Context(), id, 0)
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
