package indievia

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Роли пользователей.
const (
	RoleClient       = "client"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// Порядок сортировки отзывов мастера.
const (
	SortNewest  = "newest"
	SortHighest = "highest"
	SortLowest  = "lowest"
)

// User учётная запись, как её отдаёт API.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	IsBanned       bool       `json:"is_banned"`
	EmailConfirmed bool       `json:"email_confirmed"`
	Phone          *string    `json:"phone,omitempty"`
	PhoneVerified  bool       `json:"phone_verified"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TokenPair пара JWT. ExpiresIn в наносекундах, как time.Duration.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

// AuthResult ответ входа и регистрации.
type AuthResult struct {
	User       *User      `json:"user"`
	Tokens     *TokenPair `json:"tokens"`
	RedirectTo string     `json:"redirect_to"`
}

// SessionInfo текущая сессия. Profile зависит от роли, поэтому остаётся сырым JSON.
type SessionInfo struct {
	User       *User           `json:"user"`
	Profile    json.RawMessage `json:"profile,omitempty"`
	RedirectTo string          `json:"redirect_to"`
}

// Professional публичный профиль мастера.
type Professional struct {
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	Bio            *string   `json:"bio,omitempty"`
	Position       *string   `json:"position,omitempty"`
	Address        *string   `json:"address,omitempty"`
	City           *string   `json:"city,omitempty"`
	Instagram      *string   `json:"instagram,omitempty"`
	Facebook       *string   `json:"facebook,omitempty"`
	TikTok         *string   `json:"tiktok,omitempty"`
	Website        *string   `json:"website,omitempty"`
	Gallery        []string  `json:"gallery"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Slug           *string   `json:"slug,omitempty"`
	ReferralCode   string    `json:"referral_code"`
	ReferralCount  int       `json:"referral_count"`
	BadgeTier      string    `json:"badge_tier"`
	AvgRating      float64   `json:"avg_rating"`
	ReviewCount    int       `json:"review_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReferralProgress прогресс по реферальной программе.
type ReferralProgress struct {
	Code        string  `json:"referral_code"`
	Count       int     `json:"referral_count"`
	CurrentTier string  `json:"current_tier"`
	NextTier    *string `json:"next_tier,omitempty"`
	Remaining   int     `json:"remaining"`
	Percent     int     `json:"percent"`
}

// Review отзыв клиента о мастере.
type Review struct {
	ID             uuid.UUID    `json:"id"`
	ClientID       uuid.UUID    `json:"client_id"`
	ProfessionalID uuid.UUID    `json:"professional_id"`
	Rating         int          `json:"rating"`
	Body           string       `json:"body"`
	Media          []string     `json:"media"`
	IsBlocked      bool         `json:"is_blocked"`
	IsReported     bool         `json:"is_reported"`
	Reply          *ReviewReply `json:"reply"`
	ClientName     *string      `json:"client_name,omitempty"`
	ClientPicture  *string      `json:"client_picture,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ReviewReply ответ мастера на отзыв.
type ReviewReply struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReviewInput новый отзыв. Rating от 1 до 5.
type CreateReviewInput struct {
	ProfessionalID uuid.UUID `json:"professional_id"`
	Rating         int       `json:"rating"`
	Body           string    `json:"body"`
}

// ReportInput жалоба на отзыв.
type ReportInput struct {
	Reason  string  `json:"reason"`
	Details *string `json:"details,omitempty"`
}

// Report созданная жалоба.
type Report struct {
	ID         uuid.UUID `json:"id"`
	ReviewID   uuid.UUID `json:"review_id"`
	ReporterID uuid.UUID `json:"reporter_id"`
	Reason     string    `json:"reason"`
	Details    *string   `json:"details,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification уведомление. Metadata зависит от Kind.
type Notification struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Kind      string          `json:"kind"`
	Metadata  json.RawMessage `json:"metadata"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

type replyBody struct {
	Body string `json:"body"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type countBody struct {
	Count int64 `json:"count"`
}

type urlBody struct {
	URL string `json:"url"`
}

type urlsBody struct {
	URLs []string `json:"urls"`
}
