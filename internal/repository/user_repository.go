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
	"github.com/indievia/indievia-backend/internal/repository/common"
)

var (
	// ErrUserNotFound возвращается, когда запись пользователя не найдена.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSessionNotFound сессия не найдена или истекла.
	ErrSessionNotFound = errors.New("session not found")
)

const userColumns = `id, email, password_hash, role, is_active, is_banned, email_confirmed, phone, phone_verified, last_login_at, created_at, updated_at`

// UserRepository отвечает за работу с таблицами users и user_sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateClient создаёт пользователя с ролью client и его профиль в одной транзакции.
func (r *UserRepository) CreateClient(ctx context.Context, user *models.User, profile *models.ClientProfile) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		query := `
			INSERT INTO client_profiles (user_id, full_name, city)
			VALUES ($1, $2, $3)
			RETURNING created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, query, profile.UserID, profile.FullName, profile.City).
			Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return fmt.Errorf("user repository: create client profile %w", err)
		}
		return nil
	})
}

// CreateProfessional создаёт мастера. Если referrerID задан, счётчик рефералов
// пригласившего увеличивается в той же транзакции.
func (r *UserRepository) CreateProfessional(ctx context.Context, user *models.User, profile *models.ProfessionalProfile, referrerID *uuid.UUID) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		query := `
			INSERT INTO professional_profiles (user_id, full_name, city, referral_code, referred_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING badge_tier, created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, query, profile.UserID, profile.FullName, profile.City, profile.ReferralCode, referrerID).
			Scan(&profile.BadgeTier, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return fmt.Errorf("user repository: create professional profile %w", err)
		}

		if referrerID != nil {
			if _, err := tx.ExecContext(ctx, `
				UPDATE professional_profiles
				SET referral_count = referral_count + 1, updated_at = NOW()
				WHERE user_id = $1
			`, *referrerID); err != nil {
				return fmt.Errorf("user repository: credit referral %w", err)
			}
		}
		return nil
	})
}

// CreateAdmin создаёт администратора. Профиль для роли admin не заводится.
func (r *UserRepository) CreateAdmin(ctx context.Context, user *models.User) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE users SET email_confirmed = TRUE WHERE id = $1`, user.ID)
		if err != nil {
			return fmt.Errorf("user repository: confirm admin %w", err)
		}
		user.EmailConfirmed = true
		return nil
	})
}

func insertUser(ctx context.Context, tx *sqlx.Tx, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, is_active, phone)
		VALUES ($1, $2, $3, TRUE, $4)
		RETURNING id, is_active, created_at, updated_at
	`
	if err := tx.QueryRowxContext(ctx, query, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.Phone).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if common.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("user repository: create %w", err)
	}
	return nil
}

// GetByEmail возвращает пользователя по email без учёта регистра.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}
	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}
	return &user, nil
}

// List возвращает пользователей (опционально по роли) и общее количество.
func (r *UserRepository) List(ctx context.Context, role string, limit, offset int) ([]models.User, int, error) {
	where := ""
	args := []interface{}{}
	if role != "" {
		where = " WHERE role = $1"
		args = append(args, role)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("user repository: count %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)
	users := make([]models.User, 0, limit)
	if err := r.db.SelectContext(ctx, &users, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("user repository: list %w", err)
	}
	return users, total, nil
}

// UpdateLastLogin фиксирует время последнего входа.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("user repository: update last login %w", err)
	}
	return nil
}

// SetBanned меняет флаг блокировки. При бане все сессии пользователя удаляются.
func (r *UserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE users SET is_banned = $2, updated_at = NOW() WHERE id = $1`, id, banned)
		if err != nil {
			return fmt.Errorf("user repository: set banned %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrUserNotFound
		}
		if banned {
			if _, err := tx.ExecContext(ctx, `DELETE FROM user_sessions WHERE user_id = $1`, id); err != nil {
				return fmt.Errorf("user repository: drop sessions %w", err)
			}
		}
		return nil
	})
}

// ConfirmEmail помечает email подтверждённым.
func (r *UserRepository) ConfirmEmail(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET email_confirmed = TRUE, updated_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("user repository: confirm email %w", err)
	}
	return nil
}

// SetPhoneVerified сохраняет подтверждённый номер телефона.
func (r *UserRepository) SetPhoneVerified(ctx context.Context, id uuid.UUID, phone string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE users SET phone = $2, phone_verified = TRUE, updated_at = NOW() WHERE id = $1
	`, id, phone); err != nil {
		return fmt.Errorf("user repository: set phone verified %w", err)
	}
	return nil
}

// CreateSession сохраняет новую сессию пользователя.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		session.UserID, session.RefreshToken, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}
	return nil
}

// GetSessionByToken возвращает активную сессию по refresh токену.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	query := `
		SELECT id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at
		FROM user_sessions
		WHERE refresh_token = $1 AND expires_at > NOW()
	`
	if err := r.db.GetContext(ctx, &session, query, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("user repository: get session %w", err)
	}
	return &session, nil
}

// ListSessions возвращает активные сессии пользователя.
func (r *UserRepository) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	sessions := []models.Session{}
	query := `
		SELECT id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at
		FROM user_sessions
		WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("user repository: list sessions %w", err)
	}
	return sessions, nil
}

// DeleteSession удаляет сессию пользователя по идентификатору.
func (r *UserRepository) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSessionByToken удаляет сессию по refresh токену (logout и ротация).
func (r *UserRepository) DeleteSessionByToken(ctx context.Context, refreshToken string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE refresh_token = $1`, refreshToken); err != nil {
		return fmt.Errorf("user repository: delete session by token %w", err)
	}
	return nil
}
