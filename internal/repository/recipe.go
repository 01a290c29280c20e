package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecipeRepository handles database operations for recipes
type RecipeRepository struct {
	db *pgxpool.Pool
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `r.id, r.title, r.description, r.ingredients, r.instructions,
	r.prep_time, r.cook_time, r.servings, r.difficulty, r.tags, r.images,
	r.likes, r.author_id, COALESCE(u.name, ''), r.created_at`

// Create inserts a new recipe as a single document write
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	imagesJSON, err := json.Marshal(recipe.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		INSERT INTO recipes (id, title, description, ingredients, instructions,
			prep_time, cook_time, servings, difficulty, tags, images, likes,
			author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.Exec(ctx, query,
		recipe.ID, recipe.Title, recipe.Description, recipe.Ingredients,
		recipe.Instructions, recipe.PrepTime, recipe.CookTime, recipe.Servings,
		recipe.Difficulty, recipe.Tags, imagesJSON, recipe.Likes,
		recipe.AuthorID, recipe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetByID retrieves a recipe by ID with the author name resolved
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		LEFT JOIN users u ON u.id = r.author_id
		WHERE r.id = $1
	`, recipeColumns)

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("recipe")
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// List retrieves recipes matching the filter, newest first
func (r *RecipeRepository) List(ctx context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions,
			fmt.Sprintf("(r.title ILIKE $%d OR r.description ILIKE $%d)", len(args), len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		conditions = append(conditions, fmt.Sprintf("r.difficulty = $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("r.tags && $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		LEFT JOIN users u ON u.id = r.author_id
	`, recipeColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows)
}

// ListByAuthor retrieves an author's recipes, newest first. A limit of 0
// means no limit.
func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		LEFT JOIN users u ON u.id = r.author_id
		WHERE r.author_id = $1
		ORDER BY r.created_at DESC
	`, recipeColumns)
	args := []any{authorID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by author: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows)
}

// AppendImages appends images to a recipe's image list and returns the
// updated list
func (r *RecipeRepository) AppendImages(ctx context.Context, id string, images []models.RecipeImage) ([]models.RecipeImage, error) {
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		UPDATE recipes
		SET images = images || $2::jsonb
		WHERE id = $1
		RETURNING images
	`
	var updatedJSON []byte
	err = r.db.QueryRow(ctx, query, id, imagesJSON).Scan(&updatedJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("recipe")
		}
		return nil, fmt.Errorf("failed to append images: %w", err)
	}

	var updated []models.RecipeImage
	if err := json.Unmarshal(updatedJSON, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	return updated, nil
}

// ToggleLike flips userID's membership in the recipe's liker set as a single
// atomic row update and returns the new count and membership state.
func (r *RecipeRepository) ToggleLike(ctx context.Context, recipeID, userID string) (int, bool, error) {
	query := `
		UPDATE recipes
		SET likes = CASE
			WHEN $2 = ANY(likes) THEN array_remove(likes, $2)
			ELSE array_append(likes, $2)
		END
		WHERE id = $1
		RETURNING cardinality(likes), $2 = ANY(likes)
	`
	var count int
	var liked bool
	err := r.db.QueryRow(ctx, query, recipeID, userID).Scan(&count, &liked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, apperrors.NotFound("recipe")
		}
		return 0, false, fmt.Errorf("failed to toggle like: %w", err)
	}
	return count, liked, nil
}

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var recipe models.Recipe
	var imagesJSON []byte
	err := row.Scan(
		&recipe.ID, &recipe.Title, &recipe.Description, &recipe.Ingredients,
		&recipe.Instructions, &recipe.PrepTime, &recipe.CookTime,
		&recipe.Servings, &recipe.Difficulty, &recipe.Tags, &imagesJSON,
		&recipe.Likes, &recipe.AuthorID, &recipe.AuthorName, &recipe.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(imagesJSON, &recipe.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	return &recipe, nil
}

func collectRecipes(rows pgx.Rows) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}
	return recipes, nil
}
