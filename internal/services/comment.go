package services

import (
	"context"
	"strings"
	"time"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/models"

	"github.com/google/uuid"
)

// CommentStore is the persistence interface the comment service depends on
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByRecipe(ctx context.Context, recipeID string) ([]*models.Comment, error)
}

// CommentService handles comment-related business logic. Comments are
// append-only; there is no update or delete.
type CommentService struct {
	commentRepo CommentStore
	userRepo    UserStore
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo CommentStore, userRepo UserStore) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// CreateComment stores a new comment with the author's display name
// resolved
func (s *CommentService) CreateComment(ctx context.Context, recipeID, authorID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("comment text cannot be empty")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:         uuid.New().String(),
		Text:       text,
		AuthorID:   authorID,
		AuthorName: author.Name,
		RecipeID:   recipeID,
		CreatedAt:  time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments retrieves all comments for a recipe, newest first
func (s *CommentService) ListComments(ctx context.Context, recipeID string) ([]*models.Comment, error) {
	return s.commentRepo.ListByRecipe(ctx, recipeID)
}
