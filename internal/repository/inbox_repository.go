package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/indievia/indievia-backend/internal/models"
)

// ErrInboxMessageNotFound обращение не найдено.
var ErrInboxMessageNotFound = errors.New("inbox message not found")

// InboxRepository работает с таблицей inbox_messages.
type InboxRepository struct {
	db *sqlx.DB
}

// NewInboxRepository создаёт экземпляр репозитория.
func NewInboxRepository(db *sqlx.DB) *InboxRepository {
	return &InboxRepository{db: db}
}

// Create сохраняет обращение.
func (r *InboxRepository) Create(ctx context.Context, m *models.InboxMessage) error {
	query := `
		INSERT INTO inbox_messages (kind, user_id, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, m.Kind, m.UserID, m.Name, m.Email, m.Subject, m.Body).
		Scan(&m.ID, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return fmt.Errorf("inbox repository: create %w", err)
	}
	return nil
}

// List возвращает обращения с фильтрами по статусу и типу.
func (r *InboxRepository) List(ctx context.Context, status, kind string, limit, offset int) ([]models.InboxMessage, int, error) {
	conds := []string{}
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if kind != "" {
		args = append(args, kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM inbox_messages`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("inbox repository: count %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, kind, user_id, name, email, subject, body, status, created_at, updated_at
		FROM inbox_messages%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	items := make([]models.InboxMessage, 0, limit)
	if err := r.db.SelectContext(ctx, &items, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("inbox repository: list %w", err)
	}
	return items, total, nil
}

// UpdateStatus меняет статус обращения.
func (r *InboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InboxMessage, error) {
	var m models.InboxMessage
	query := `
		UPDATE inbox_messages SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, kind, user_id, name, email, subject, body, status, created_at, updated_at
	`
	if err := r.db.GetContext(ctx, &m, query, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInboxMessageNotFound
		}
		return nil, fmt.Errorf("inbox repository: update status %w", err)
	}
	return &m, nil
}
