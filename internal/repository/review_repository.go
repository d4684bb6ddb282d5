package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/repository/common"
)

var (
	// ErrReviewNotFound отзыв не найден.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReplyNotFound у отзыва нет ответа.
	ErrReplyNotFound = errors.New("reply not found")
	// ErrReplyExists у отзыва уже есть ответ.
	ErrReplyExists = errors.New("reply already exists")
)

const reviewSelect = `
	SELECT r.id, r.client_id, r.professional_id, r.rating, r.body, r.media, r.is_blocked, r.is_reported,
		r.created_at, r.updated_at,
		rr.id AS reply_id, rr.body AS reply_body, rr.created_at AS reply_created_at, rr.updated_at AS reply_updated_at,
		c.full_name AS client_name, c.profile_picture AS client_picture
	FROM reviews r
	LEFT JOIN review_replies rr ON rr.review_id = r.id
	LEFT JOIN client_profiles c ON c.user_id = r.client_id
`

// ReviewRepository работает с таблицами reviews и review_replies.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository создаёт экземпляр репозитория.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create создаёт отзыв и пересчитывает рейтинг мастера в одной транзакции.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO reviews (client_id, professional_id, rating, body, media)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, is_blocked, is_reported, created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, query,
			review.ClientID, review.ProfessionalID, review.Rating, review.Body, pq.Array([]string(review.Media)),
		).Scan(&review.ID, &review.IsBlocked, &review.IsReported, &review.CreatedAt, &review.UpdatedAt); err != nil {
			return fmt.Errorf("review repository: create %w", err)
		}
		return recomputeRating(ctx, tx, review.ProfessionalID)
	})
}

// GetByID возвращает отзыв вместе с ответом.
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.GetContext(ctx, &review, reviewSelect+` WHERE r.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("review repository: get by id %w", err)
	}
	review.FillReply()
	return &review, nil
}

// List возвращает страницу отзывов и общее количество по фильтру.
func (r *ReviewRepository) List(ctx context.Context, filter models.ReviewFilter, limit, offset int) ([]models.Review, int, error) {
	conds := []string{}
	args := []interface{}{}

	if filter.ProfessionalID != nil {
		args = append(args, *filter.ProfessionalID)
		conds = append(conds, fmt.Sprintf("r.professional_id = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("r.client_id = $%d", len(args)))
	}
	if !filter.IncludeBlocked {
		conds = append(conds, "r.is_blocked = FALSE")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews r`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("review repository: count %w", err)
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		reviewSelect, where, reviewOrder(filter.Sort), len(args)+1, len(args)+2)

	reviews := make([]models.Review, 0, limit)
	if err := r.db.SelectContext(ctx, &reviews, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("review repository: list %w", err)
	}
	for i := range reviews {
		reviews[i].FillReply()
	}
	return reviews, total, nil
}

func reviewOrder(sort string) string {
	switch sort {
	case models.ReviewSortHighest:
		return "r.rating DESC, r.created_at DESC, r.id DESC"
	case models.ReviewSortLowest:
		return "r.rating ASC, r.created_at DESC, r.id DESC"
	default:
		return "r.created_at DESC, r.id DESC"
	}
}

// CreateReply добавляет единственный ответ мастера.
func (r *ReviewRepository) CreateReply(ctx context.Context, reviewID, professionalID uuid.UUID, body string) (*models.ReviewReply, error) {
	var reply models.ReviewReply
	query := `
		INSERT INTO review_replies (review_id, professional_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, body, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, reviewID, professionalID, body).
		Scan(&reply.ID, &reply.Body, &reply.CreatedAt, &reply.UpdatedAt); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, ErrReplyExists
		}
		return nil, fmt.Errorf("review repository: create reply %w", err)
	}
	return &reply, nil
}

// UpdateReply меняет текст ответа.
func (r *ReviewRepository) UpdateReply(ctx context.Context, reviewID uuid.UUID, body string) (*models.ReviewReply, error) {
	var reply models.ReviewReply
	query := `
		UPDATE review_replies SET body = $2, updated_at = NOW()
		WHERE review_id = $1
		RETURNING id, body, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, reviewID, body).
		Scan(&reply.ID, &reply.Body, &reply.CreatedAt, &reply.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReplyNotFound
		}
		return nil, fmt.Errorf("review repository: update reply %w", err)
	}
	return &reply, nil
}

// DeleteReply удаляет ответ.
func (r *ReviewRepository) DeleteReply(ctx context.Context, reviewID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM review_replies WHERE review_id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("review repository: delete reply %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReplyNotFound
	}
	return nil
}
