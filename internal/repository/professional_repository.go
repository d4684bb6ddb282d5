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
	// ErrProfessionalNotFound профиль мастера не найден.
	ErrProfessionalNotFound = errors.New("professional not found")
	// ErrSlugTaken slug уже занят другим мастером.
	ErrSlugTaken = errors.New("slug already taken")
)

const professionalColumns = `user_id, full_name, bio, position, address, city, instagram, facebook, tiktok, website,
	gallery, profile_picture, slug, referral_code, referral_count, badge_tier, avg_rating, review_count, created_at, updated_at`

// ProfessionalRepository работает с таблицей professional_profiles.
type ProfessionalRepository struct {
	db *sqlx.DB
}

// NewProfessionalRepository создаёт экземпляр репозитория.
func NewProfessionalRepository(db *sqlx.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

func (r *ProfessionalRepository) getBy(ctx context.Context, field string, value interface{}) (*models.ProfessionalProfile, error) {
	var profile models.ProfessionalProfile
	query := `SELECT ` + professionalColumns + ` FROM professional_profiles WHERE ` + field + ` = $1`
	if err := r.db.GetContext(ctx, &profile, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("professional repository: get by %s %w", field, err)
	}
	return &profile, nil
}

// GetByUserID возвращает профиль мастера по идентификатору пользователя.
func (r *ProfessionalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error) {
	return r.getBy(ctx, "user_id", userID)
}

// GetBySlug возвращает профиль по публичному slug.
func (r *ProfessionalRepository) GetBySlug(ctx context.Context, slug string) (*models.ProfessionalProfile, error) {
	return r.getBy(ctx, "slug", slug)
}

// GetByReferralCode возвращает профиль по реферальному коду.
func (r *ProfessionalRepository) GetByReferralCode(ctx context.Context, code string) (*models.ProfessionalProfile, error) {
	return r.getBy(ctx, "referral_code", strings.ToUpper(code))
}

// Search ищет мастеров с публичной страницей. Сортировка детерминирована.
func (r *ProfessionalRepository) Search(ctx context.Context, filter models.ProfessionalFilter, limit, offset int) ([]models.ProfessionalProfile, int, error) {
	conds := []string{"p.slug IS NOT NULL", "u.is_banned = FALSE", "u.is_active = TRUE"}
	args := []interface{}{}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, common.LikePattern(q))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.full_name ILIKE $%d OR p.position ILIKE $%d OR p.bio ILIKE $%d)", n, n, n))
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		args = append(args, city)
		conds = append(conds, fmt.Sprintf("LOWER(p.city) = LOWER($%d)", len(args)))
	}

	from := ` FROM professional_profiles p JOIN users u ON u.id = p.user_id WHERE ` + strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from, args...); err != nil {
		return nil, 0, fmt.Errorf("professional repository: count %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY p.avg_rating DESC, p.review_count DESC, p.created_at DESC, p.user_id DESC LIMIT $%d OFFSET $%d`,
		prefixColumns("p", professionalColumns), from, len(args)+1, len(args)+2)

	items := make([]models.ProfessionalProfile, 0, limit)
	if err := r.db.SelectContext(ctx, &items, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("professional repository: search %w", err)
	}
	return items, total, nil
}

// Update сохраняет редактируемые поля профиля.
func (r *ProfessionalRepository) Update(ctx context.Context, p *models.ProfessionalProfile) error {
	query := `
		UPDATE professional_profiles
		SET full_name = $2, bio = $3, position = $4, address = $5, city = $6,
			instagram = $7, facebook = $8, tiktok = $9, website = $10, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		p.UserID, p.FullName, p.Bio, p.Position, p.Address, p.City,
		p.Instagram, p.Facebook, p.TikTok, p.Website,
	).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfessionalNotFound
		}
		return fmt.Errorf("professional repository: update %w", err)
	}
	return nil
}

// SetSlug устанавливает slug и возвращает предыдущее значение.
func (r *ProfessionalRepository) SetSlug(ctx context.Context, userID uuid.UUID, slug string) (*string, error) {
	var previous *string
	query := `
		UPDATE professional_profiles p
		SET slug = $2, updated_at = NOW()
		FROM (SELECT user_id, slug FROM professional_profiles WHERE user_id = $1 FOR UPDATE) old
		WHERE p.user_id = old.user_id
		RETURNING old.slug
	`
	if err := r.db.QueryRowxContext(ctx, query, userID, slug).Scan(&previous); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		if common.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("professional repository: set slug %w", err)
	}
	return previous, nil
}

// AppendGallery добавляет ссылки в конец галереи.
func (r *ProfessionalRepository) AppendGallery(ctx context.Context, userID uuid.UUID, urls []string) ([]string, error) {
	var gallery pq.StringArray
	query := `
		UPDATE professional_profiles
		SET gallery = gallery || $2::text[], updated_at = NOW()
		WHERE user_id = $1
		RETURNING gallery
	`
	if err := r.db.QueryRowxContext(ctx, query, userID, pq.Array(urls)).Scan(&gallery); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("professional repository: append gallery %w", err)
	}
	return []string(gallery), nil
}

// RemoveGalleryItem удаляет ссылку из галереи. Возвращает false, если ссылки не было.
func (r *ProfessionalRepository) RemoveGalleryItem(ctx context.Context, userID uuid.UUID, url string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE professional_profiles
		SET gallery = array_remove(gallery, $2), updated_at = NOW()
		WHERE user_id = $1 AND $2 = ANY(gallery)
	`, userID, url)
	if err != nil {
		return false, fmt.Errorf("professional repository: remove gallery item %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetProfilePicture сохраняет ссылку на аватар и возвращает предыдущую.
func (r *ProfessionalRepository) SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) (*string, error) {
	return setProfilePicture(ctx, r.db, "professional_profiles", userID, url, ErrProfessionalNotFound)
}

// SetBadgeTier обновляет уровень реферального бейджа.
func (r *ProfessionalRepository) SetBadgeTier(ctx context.Context, userID uuid.UUID, tier string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE professional_profiles SET badge_tier = $2, updated_at = NOW() WHERE user_id = $1 AND badge_tier <> $2
	`, userID, tier); err != nil {
		return fmt.Errorf("professional repository: set badge tier %w", err)
	}
	return nil
}

// listSlugsQuery все профили с заданным slug, без фильтра по статусу владельца.
const listSlugsQuery = `
	SELECT slug, updated_at
	FROM professional_profiles
	WHERE slug IS NOT NULL
	ORDER BY slug
`

// ListSlugs возвращает все опубликованные slug для sitemap.
func (r *ProfessionalRepository) ListSlugs(ctx context.Context) ([]models.ProfessionalSlug, error) {
	slugs := []models.ProfessionalSlug{}
	if err := r.db.SelectContext(ctx, &slugs, listSlugsQuery); err != nil {
		return nil, fmt.Errorf("professional repository: list slugs %w", err)
	}
	return slugs, nil
}

// RecomputeRating пересчитывает средний рейтинг по незаблокированным отзывам.
func (r *ProfessionalRepository) RecomputeRating(ctx context.Context, professionalID uuid.UUID) error {
	return recomputeRating(ctx, r.db, professionalID)
}

func recomputeRating(ctx context.Context, db sqlx.ExecerContext, professionalID uuid.UUID) error {
	query := `
		UPDATE professional_profiles p
		SET avg_rating = s.avg_rating, review_count = s.review_count, updated_at = NOW()
		FROM (
			SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0) AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE professional_id = $1 AND is_blocked = FALSE
		) s
		WHERE p.user_id = $1
	`
	if _, err := db.ExecContext(ctx, query, professionalID); err != nil {
		return fmt.Errorf("professional repository: recompute rating %w", err)
	}
	return nil
}

func setProfilePicture(ctx context.Context, db *sqlx.DB, table string, userID uuid.UUID, url string, notFound error) (*string, error) {
	var previous *string
	query := fmt.Sprintf(`
		UPDATE %[1]s t
		SET profile_picture = $2, updated_at = NOW()
		FROM (SELECT user_id, profile_picture FROM %[1]s WHERE user_id = $1 FOR UPDATE) old
		WHERE t.user_id = old.user_id
		RETURNING old.profile_picture
	`, table)
	if err := db.QueryRowxContext(ctx, query, userID, url).Scan(&previous); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%s: set profile picture %w", table, err)
	}
	return previous, nil
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
