package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/indievia/indievia-backend/internal/models"
)

// ErrClientNotFound профиль клиента не найден.
var ErrClientNotFound = errors.New("client not found")

// ClientRepository работает с таблицей client_profiles.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository создаёт экземпляр репозитория.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByUserID возвращает профиль клиента.
func (r *ClientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	query := `
		SELECT user_id, full_name, bio, city, profile_picture, created_at, updated_at
		FROM client_profiles
		WHERE user_id = $1
	`
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("client repository: get %w", err)
	}
	return &profile, nil
}

// Update сохраняет редактируемые поля профиля.
func (r *ClientRepository) Update(ctx context.Context, p *models.ClientProfile) error {
	query := `
		UPDATE client_profiles
		SET full_name = $2, bio = $3, city = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, p.UserID, p.FullName, p.Bio, p.City).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClientNotFound
		}
		return fmt.Errorf("client repository: update %w", err)
	}
	return nil
}

// SetProfilePicture сохраняет ссылку на аватар и возвращает предыдущую.
func (r *ClientRepository) SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) (*string, error) {
	return setProfilePicture(ctx, r.db, "client_profiles", userID, url, ErrClientNotFound)
}
