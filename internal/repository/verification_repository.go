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

// ErrVerificationCodeNotFound активный код не найден.
var ErrVerificationCodeNotFound = errors.New("verification code not found")

// VerificationRepository хранит хэши кодов подтверждения.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository создаёт экземпляр репозитория.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create сохраняет новый код, предварительно погасив прежние коды того же канала.
func (r *VerificationRepository) Create(ctx context.Context, code *models.VerificationCode) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE verification_codes SET used_at = NOW()
		WHERE user_id = $1 AND channel = $2 AND used_at IS NULL
	`, code.UserID, code.Channel); err != nil {
		return fmt.Errorf("verification repository: expire previous %w", err)
	}

	query := `
		INSERT INTO verification_codes (user_id, channel, target, code_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, attempts, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, code.UserID, code.Channel, code.Target, code.CodeHash, code.ExpiresAt).
		Scan(&code.ID, &code.Attempts, &code.CreatedAt); err != nil {
		return fmt.Errorf("verification repository: create %w", err)
	}
	return nil
}

// GetActive возвращает последний непогашенный и не истёкший код.
func (r *VerificationRepository) GetActive(ctx context.Context, userID uuid.UUID, channel string) (*models.VerificationCode, error) {
	var code models.VerificationCode
	query := `
		SELECT id, user_id, channel, target, code_hash, attempts, expires_at, used_at, created_at
		FROM verification_codes
		WHERE user_id = $1 AND channel = $2 AND used_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &code, query, userID, channel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerificationCodeNotFound
		}
		return nil, fmt.Errorf("verification repository: get active %w", err)
	}
	return &code, nil
}

// IncrementAttempts увеличивает счётчик неудачных попыток.
func (r *VerificationRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE verification_codes SET attempts = attempts + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("verification repository: increment attempts %w", err)
	}
	return nil
}

// MarkUsed гасит код.
func (r *VerificationRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE verification_codes SET used_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("verification repository: mark used %w", err)
	}
	return nil
}
