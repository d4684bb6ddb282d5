package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/repository/common"
)

var (
	// ErrReportNotFound жалоба не найдена.
	ErrReportNotFound = errors.New("report not found")
	// ErrReportAlreadyResolved жалоба уже рассмотрена.
	ErrReportAlreadyResolved = errors.New("report already resolved")
	// ErrAlreadyReported у пользователя уже есть открытая жалоба на этот отзыв.
	ErrAlreadyReported = errors.New("review already reported by user")
)

// ReportRepository работает с таблицей moderation_reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository создаёт экземпляр репозитория.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create сохраняет жалобу и помечает отзыв как обжалованный.
func (r *ReportRepository) Create(ctx context.Context, report *models.ModerationReport) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO moderation_reports (review_id, reporter_id, reason, details)
			VALUES ($1, $2, $3, $4)
			RETURNING id, status, created_at
		`
		if err := tx.QueryRowxContext(ctx, query, report.ReviewID, report.ReporterID, report.Reason, report.Details).
			Scan(&report.ID, &report.Status, &report.CreatedAt); err != nil {
			if common.IsUniqueViolation(err) {
				return ErrAlreadyReported
			}
			return fmt.Errorf("report repository: create %w", err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE reviews SET is_reported = TRUE, updated_at = NOW() WHERE id = $1`, report.ReviewID); err != nil {
			return fmt.Errorf("report repository: flag review %w", err)
		}
		return nil
	})
}

// GetByID возвращает жалобу.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ModerationReport, error) {
	return common.GetByID[models.ModerationReport](ctx, r.db, "moderation_reports", id, ErrReportNotFound)
}

// List возвращает жалобы со снимком отзыва. Пустой status означает все жалобы.
func (r *ReportRepository) List(ctx context.Context, status string, limit, offset int) ([]models.ModerationItem, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE m.status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM moderation_reports m`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("report repository: count %w", err)
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.review_id, m.reporter_id, m.reason, m.details, m.status, m.resolved_by, m.resolved_at, m.created_at,
			r.rating AS review_rating, r.body AS review_body, r.client_id AS review_client_id, r.is_blocked AS review_is_blocked
		FROM moderation_reports m
		JOIN reviews r ON r.id = m.review_id
		%s
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	items := make([]models.ModerationItem, 0, limit)
	if err := r.db.SelectContext(ctx, &items, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("report repository: list %w", err)
	}
	return items, total, nil
}

// Resolve применяет решение модератора к открытой жалобе. Все изменения
// (статус жалобы, блокировка отзыва, бан автора, пересчёт рейтинга)
// выполняются в одной транзакции.
func (r *ReportRepository) Resolve(ctx context.Context, reportID, adminID uuid.UUID, action string) (*models.ModerationResolution, error) {
	status, ok := models.StatusForAction(action)
	if !ok {
		return nil, fmt.Errorf("report repository: unknown action %q", action)
	}

	res := &models.ModerationResolution{Action: action}
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var current string
		if err := tx.GetContext(ctx, &current, `SELECT status FROM moderation_reports WHERE id = $1 FOR UPDATE`, reportID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReportNotFound
			}
			return fmt.Errorf("report repository: lock %w", err)
		}
		if current != models.ReportStatusOpen {
			return ErrReportAlreadyResolved
		}

		if err := tx.GetContext(ctx, &res.Report, `
			UPDATE moderation_reports
			SET status = $2, resolved_by = $3, resolved_at = NOW()
			WHERE id = $1
			RETURNING *
		`, reportID, status, adminID); err != nil {
			return fmt.Errorf("report repository: update status %w", err)
		}

		if err := tx.QueryRowxContext(ctx, `SELECT client_id, professional_id FROM reviews WHERE id = $1`, res.Report.ReviewID).
			Scan(&res.ReviewClientID, &res.ProfessionalID); err != nil {
			return fmt.Errorf("report repository: load review %w", err)
		}

		switch action {
		case models.ModerationActionIgnore:
			if _, err := tx.ExecContext(ctx, `
				UPDATE reviews
				SET is_reported = EXISTS (SELECT 1 FROM moderation_reports WHERE review_id = $1 AND status = 'open'),
					updated_at = NOW()
				WHERE id = $1
			`, res.Report.ReviewID); err != nil {
				return fmt.Errorf("report repository: clear flag %w", err)
			}
			return nil
		case models.ModerationActionBlockAndBan:
			if _, err := tx.ExecContext(ctx, `UPDATE users SET is_banned = TRUE, updated_at = NOW() WHERE id = $1`, res.ReviewClientID); err != nil {
				return fmt.Errorf("report repository: ban author %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM user_sessions WHERE user_id = $1`, res.ReviewClientID); err != nil {
				return fmt.Errorf("report repository: drop sessions %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE reviews SET is_blocked = TRUE, is_reported = FALSE, updated_at = NOW() WHERE id = $1
		`, res.Report.ReviewID); err != nil {
			return fmt.Errorf("report repository: block review %w", err)
		}
		return recomputeRating(ctx, tx, res.ProfessionalID)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
