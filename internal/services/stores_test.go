package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/models"
)

// memRecipeStore is an in-memory RecipeStore mirroring the per-document
// atomicity of the real store.
type memRecipeStore struct {
	mu      sync.Mutex
	recipes map[string]*models.Recipe
}

func newMemRecipeStore() *memRecipeStore {
	return &memRecipeStore{recipes: make(map[string]*models.Recipe)}
}

func (s *memRecipeStore) Create(_ context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *recipe
	s.recipes[recipe.ID] = &clone
	return nil
}

func (s *memRecipeStore) GetByID(_ context.Context, id string) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipe, ok := s.recipes[id]
	if !ok {
		return nil, apperrors.NotFound("recipe")
	}
	clone := *recipe
	return &clone, nil
}

func (s *memRecipeStore) List(_ context.Context, filter models.RecipeFilter) ([]*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Recipe
	for _, recipe := range s.recipes {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(recipe.Title), needle) &&
				!strings.Contains(strings.ToLower(recipe.Description), needle) {
				continue
			}
		}
		if filter.Difficulty != "" && recipe.Difficulty != filter.Difficulty {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(recipe.Tags, filter.Tags) {
			continue
		}
		clone := *recipe
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memRecipeStore) ListByAuthor(_ context.Context, authorID string, limit int) ([]*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Recipe
	for _, recipe := range s.recipes {
		if recipe.AuthorID == authorID {
			clone := *recipe
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memRecipeStore) AppendImages(_ context.Context, id string, images []models.RecipeImage) ([]models.RecipeImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipe, ok := s.recipes[id]
	if !ok {
		return nil, apperrors.NotFound("recipe")
	}
	recipe.Images = append(recipe.Images, images...)
	return append([]models.RecipeImage(nil), recipe.Images...), nil
}

func (s *memRecipeStore) ToggleLike(_ context.Context, recipeID, userID string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipe, ok := s.recipes[recipeID]
	if !ok {
		return 0, false, apperrors.NotFound("recipe")
	}
	for i, liker := range recipe.Likes {
		if liker == userID {
			recipe.Likes = append(recipe.Likes[:i], recipe.Likes[i+1:]...)
			return len(recipe.Likes), false, nil
		}
	}
	recipe.Likes = append(recipe.Likes, userID)
	return len(recipe.Likes), true, nil
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// memCommentStore is an in-memory CommentStore
type memCommentStore struct {
	mu       sync.Mutex
	comments []*models.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{}
}

func (s *memCommentStore) Create(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *comment
	s.comments = append(s.comments, &clone)
	return nil
}

func (s *memCommentStore) ListByRecipe(_ context.Context, recipeID string) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Comment
	for _, comment := range s.comments {
		if comment.RecipeID == recipeID {
			clone := *comment
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// memUserStore is an in-memory UserStore
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	clone := *user
	return &clone, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (s *memUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *memUserStore) UpdateProfile(_ context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.ContactEmail != nil {
		user.ContactEmail = *update.ContactEmail
	}
	if update.SocialMedia != nil {
		user.SocialMedia = *update.SocialMedia
	}
	if update.ShowContactInfo != nil {
		user.ShowContactInfo = *update.ShowContactInfo
	}
	clone := *user
	return &clone, nil
}
