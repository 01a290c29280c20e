package services

import (
	"context"
	"strings"
	"time"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/models"

	"github.com/google/uuid"
)

const maxRecipeImages = 5

// NoFinalProductImage marks a create or append request where no image
// position was flagged as the final product.
const NoFinalProductImage = -1

// RecipeStore is the persistence interface the recipe service depends on
type RecipeStore interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	List(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Recipe, error)
	AppendImages(ctx context.Context, id string, images []models.RecipeImage) ([]models.RecipeImage, error)
	ToggleLike(ctx context.Context, recipeID, userID string) (int, bool, error)
}

// RecipeService handles recipe-related business logic
type RecipeService struct {
	recipeRepo RecipeStore
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo RecipeStore) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

// CreateRecipeRequest carries the fields of a new recipe. Images arrive with
// their storage locators already resolved; FinalProductIndex names the image
// position flagged as final product, any other value leaves the set
// unflagged.
type CreateRecipeRequest struct {
	Title             string
	Description       string
	Ingredients       []string
	Instructions      []string
	PrepTime          int
	CookTime          int
	Servings          int
	Difficulty        string
	Tags              []string
	Images            []models.RecipeImage
	FinalProductIndex int
}

// CreateRecipe validates and stores a new recipe as a single document write
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID string, req CreateRecipeRequest) (*models.Recipe, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}

	ingredients := cleanList(req.Ingredients)
	if len(ingredients) == 0 {
		return nil, apperrors.Validation("at least one ingredient is required")
	}
	instructions := cleanList(req.Instructions)
	if len(instructions) == 0 {
		return nil, apperrors.Validation("at least one instruction is required")
	}
	if len(req.Images) > maxRecipeImages {
		return nil, apperrors.Validation("a recipe can have at most %d images", maxRecipeImages)
	}
	if !models.ValidDifficulty(req.Difficulty) {
		return nil, apperrors.Validation("difficulty must be Easy, Medium or Hard")
	}
	if req.PrepTime < 0 || req.CookTime < 0 {
		return nil, apperrors.Validation("prep and cook time cannot be negative")
	}
	if req.Servings < 1 {
		return nil, apperrors.Validation("servings must be at least 1")
	}

	recipe := &models.Recipe{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Tags:         cleanList(req.Tags),
		Images:       flagFinalProduct(req.Images, req.FinalProductIndex),
		Likes:        []string{},
		AuthorID:     authorID,
		CreatedAt:    time.Now(),
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// AppendImages adds images to an existing recipe. Only the author may do
// this. The create-path cap of 5 images is deliberately not re-checked
// against the existing count here.
func (s *RecipeService) AppendImages(ctx context.Context, recipeID, requesterID string, images []models.RecipeImage, finalProductIndex int) ([]models.RecipeImage, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != requesterID {
		return nil, apperrors.Authorization("not authorized to edit this recipe")
	}
	return s.recipeRepo.AppendImages(ctx, recipeID, flagFinalProduct(images, finalProductIndex))
}

// ListRecipes retrieves recipes matching the filter, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, filter)
}

// ListByAuthor retrieves an author's recipes, newest first
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Recipe, error) {
	return s.recipeRepo.ListByAuthor(ctx, authorID, limit)
}

// GetRecipe retrieves a single recipe
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

// ToggleLike flips the requester's like on a recipe and returns the new
// count and membership state
func (s *RecipeService) ToggleLike(ctx context.Context, recipeID, userID string) (int, bool, error) {
	return s.recipeRepo.ToggleLike(ctx, recipeID, userID)
}

// cleanList trims entries and drops the empty ones, preserving order
func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// flagFinalProduct sets IsFinalProduct on the image at the given position.
// An out-of-range index leaves every image unflagged.
func flagFinalProduct(images []models.RecipeImage, index int) []models.RecipeImage {
	flagged := make([]models.RecipeImage, len(images))
	for i, img := range images {
		img.IsFinalProduct = i == index
		flagged[i] = img
	}
	return flagged
}
