package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quickbite-backend/internal/apperrors"
	"quickbite-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, avatar, bio, phone,
	contact_email, social_media, show_contact_info, created_at`

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	socialJSON, err := json.Marshal(user.SocialMedia)
	if err != nil {
		return fmt.Errorf("failed to marshal social media: %w", err)
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, avatar, bio, phone,
			contact_email, social_media, show_contact_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar,
		user.Bio, user.Phone, user.ContactEmail, socialJSON,
		user.ShowContactInfo, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.getOne(ctx, query, email)
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// user. Nil fields keep their stored values; contact fields are persisted
// regardless of the visibility flag.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	var socialJSON []byte
	if update.SocialMedia != nil {
		var err error
		socialJSON, err = json.Marshal(update.SocialMedia)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal social media: %w", err)
		}
	}

	query := fmt.Sprintf(`
		UPDATE users SET
			name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			phone = COALESCE($4, phone),
			contact_email = COALESCE($5, contact_email),
			social_media = COALESCE($6, social_media),
			show_contact_info = COALESCE($7, show_contact_info)
		WHERE id = $1
		RETURNING %s
	`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id,
		update.Name, update.Bio, update.Phone, update.ContactEmail,
		socialJSON, update.ShowContactInfo,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var socialJSON []byte
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Avatar,
		&user.Bio, &user.Phone, &user.ContactEmail, &socialJSON,
		&user.ShowContactInfo, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(socialJSON, &user.SocialMedia); err != nil {
		return nil, fmt.Errorf("failed to unmarshal social media: %w", err)
	}
	return &user, nil
}
