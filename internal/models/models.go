package models

import "time"

// Difficulty levels a recipe can declare.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// RecipeImage represents a single uploaded image attached to a recipe
type RecipeImage struct {
	URL            string `json:"url"`
	Caption        string `json:"caption"`
	IsFinalProduct bool   `json:"isFinalProduct"`
}

// Recipe represents a published recipe document
type Recipe struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	PrepTime     int           `json:"prepTime"`
	CookTime     int           `json:"cookTime"`
	Servings     int           `json:"servings"`
	Difficulty   string        `json:"difficulty"`
	Tags         []string      `json:"tags"`
	Images       []RecipeImage `json:"images"`
	Likes        []string      `json:"likes"`
	AuthorID     string        `json:"authorId"`
	AuthorName   string        `json:"authorName,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// RecipeFilter narrows a recipe listing. Zero values mean no constraint.
type RecipeFilter struct {
	Search     string
	Difficulty string
	Tags       []string
}

// Comment represents a comment on a recipe. Comments are immutable once
// created and are kept even if the parent recipe goes away.
type Comment struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	RecipeID   string    `json:"recipeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SocialMedia holds the fixed set of social handles a user can expose.
type SocialMedia struct {
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
}

// User represents a registered user. Contact fields are always persisted;
// ShowContactInfo only controls whether they appear in public projections.
type User struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	PasswordHash    string      `json:"-"`
	Avatar          string      `json:"avatar"`
	Bio             string      `json:"bio"`
	Phone           string      `json:"phone"`
	ContactEmail    string      `json:"contactEmail"`
	SocialMedia     SocialMedia `json:"socialMedia"`
	ShowContactInfo bool        `json:"showContactInfo"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Name            *string      `json:"name"`
	Bio             *string      `json:"bio"`
	Phone           *string      `json:"phone"`
	ContactEmail    *string      `json:"contactEmail"`
	SocialMedia     *SocialMedia `json:"socialMedia"`
	ShowContactInfo *bool        `json:"showContactInfo"`
}
