package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей платформы.
const (
	RoleClient       = "client"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// ValidSignUpRoles роли, доступные при самостоятельной регистрации.
var ValidSignUpRoles = map[string]struct{}{
	RoleClient:       {},
	RoleProfessional: {},
}

// User описывает учётную запись платформы.
type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	Role           string     `db:"role" json:"role"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	IsBanned       bool       `db:"is_banned" json:"is_banned"`
	EmailConfirmed bool       `db:"email_confirmed" json:"email_confirmed"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	PhoneVerified  bool       `db:"phone_verified" json:"phone_verified"`
	LastLoginAt    *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// CanSignIn сообщает, может ли пользователь войти.
func (u *User) CanSignIn() bool {
	return u.IsActive && !u.IsBanned
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"-"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// HomePath возвращает путь SPA, на который отправляется пользователь после входа.
func HomePath(role string) string {
	switch role {
	case RoleProfessional:
		return "/professional/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleClient:
		return "/client/profile"
	default:
		return "/sign-in"
	}
}
