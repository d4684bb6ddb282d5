package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/indievia/indievia-backend/internal/models"
)

// AdminRepository агрегирует счётчики для админки.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository создаёт экземпляр репозитория.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Stats возвращает сводные показатели платформы.
func (r *AdminRepository) Stats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'client') AS clients,
			(SELECT COUNT(*) FROM users WHERE role = 'professional') AS professionals,
			(SELECT COUNT(*) FROM reviews) AS reviews,
			(SELECT COUNT(*) FROM reviews WHERE is_blocked) AS blocked_reviews,
			(SELECT COUNT(*) FROM moderation_reports WHERE status = 'open') AS open_reports,
			(SELECT COUNT(*) FROM inbox_messages WHERE status = 'open') AS open_inbox
	`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("admin repository: stats %w", err)
	}
	return &stats, nil
}
