package handlers

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/middleware"
	"quickbite-backend/internal/models"
	"quickbite-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// stubUploader resolves uploads to deterministic locators without touching S3
type stubUploader struct{}

func (stubUploader) UploadImage(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return "https://cdn.test/" + filename, nil
}

// recordingConn implements services.WSConn and records pushed messages
type recordingConn struct {
	mu       sync.Mutex
	messages [][]byte
}

func (c *recordingConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, data)
	return nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.messages...)
}

// memRecipeStore is an in-memory services.RecipeStore
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

func (s *memRecipeStore) List(_ context.Context, _ models.RecipeFilter) ([]*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Recipe
	for _, recipe := range s.recipes {
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

// memCommentStore is an in-memory services.CommentStore
type memCommentStore struct {
	mu       sync.Mutex
	comments []*models.Comment
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

// memUserStore is an in-memory services.UserStore
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

// testEnv bundles the wired services and router used by handler tests
type testEnv struct {
	router         chi.Router
	hub            *services.WSHub
	userService    *services.UserService
	recipeService  *services.RecipeService
	commentService *services.CommentService
	users          *memUserStore
	recipes        *memRecipeStore
}

const testMaxFileSize = 1 << 20

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUserStore()
	recipes := newMemRecipeStore()

	userService := services.NewUserService(users, "test-secret")
	recipeService := services.NewRecipeService(recipes)
	commentService := services.NewCommentService(&memCommentStore{}, users)
	hub := services.NewWSHub()

	authHandler := NewAuthHandler(userService)
	recipeHandler := NewRecipeHandler(recipeService, commentService, stubUploader{}, hub, testMaxFileSize)
	userHandler := NewUserHandler(userService, recipeService)
	wsHandler := NewWebSocketHandler(hub, userService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/recipes", recipeHandler.ListRecipes)
		r.Get("/recipes/{id}", recipeHandler.GetRecipe)
		r.Get("/users/{id}", userHandler.GetProfile)
		r.Get("/users/{id}/recipes", userHandler.GetUserRecipes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))
			r.Post("/recipes", recipeHandler.CreateRecipe)
			r.Post("/recipes/{id}/images", recipeHandler.AppendImages)
			r.Post("/recipes/{id}/like", recipeHandler.ToggleLike)
			r.Post("/recipes/{id}/comments", recipeHandler.CreateComment)
			r.Put("/users/profile", userHandler.UpdateProfile)
		})
	})
	r.Get("/ws", wsHandler.HandleWebSocket)

	return &testEnv{
		router:         r,
		hub:            hub,
		userService:    userService,
		recipeService:  recipeService,
		commentService: commentService,
		users:          users,
		recipes:        recipes,
	}
}

// registerUser creates a user and returns it with a valid bearer token
func (env *testEnv) registerUser(t *testing.T, name, email string) (*models.User, string) {
	t.Helper()
	user, err := env.userService.Register(context.Background(), name, email, "secret123")
	require.NoError(t, err)
	token, err := env.userService.GenerateJWT(user.ID)
	require.NoError(t, err)
	return user, token
}

// createRecipe stores a recipe directly through the service layer
func (env *testEnv) createRecipe(t *testing.T, authorID string, images []models.RecipeImage, finalIdx int) *models.Recipe {
	t.Helper()
	recipe, err := env.recipeService.CreateRecipe(context.Background(), authorID, services.CreateRecipeRequest{
		Title:             "Pancakes",
		Description:       "Fluffy breakfast pancakes",
		Ingredients:       []string{"flour", "milk"},
		Instructions:      []string{"mix", "fry"},
		PrepTime:          10,
		CookTime:          15,
		Servings:          4,
		Difficulty:        models.DifficultyEasy,
		Images:            images,
		FinalProductIndex: finalIdx,
	})
	require.NoError(t, err)
	return recipe
}
