package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProfessionalProfile публичный профиль мастера.
type ProfessionalProfile struct {
	UserID         uuid.UUID      `db:"user_id" json:"user_id"`
	FullName       string         `db:"full_name" json:"full_name"`
	Bio            *string        `db:"bio" json:"bio,omitempty"`
	Position       *string        `db:"position" json:"position,omitempty"`
	Address        *string        `db:"address" json:"address,omitempty"`
	City           *string        `db:"city" json:"city,omitempty"`
	Instagram      *string        `db:"instagram" json:"instagram,omitempty"`
	Facebook       *string        `db:"facebook" json:"facebook,omitempty"`
	TikTok         *string        `db:"tiktok" json:"tiktok,omitempty"`
	Website        *string        `db:"website" json:"website,omitempty"`
	Gallery        pq.StringArray `db:"gallery" json:"gallery"`
	ProfilePicture *string        `db:"profile_picture" json:"profile_picture,omitempty"`
	Slug           *string        `db:"slug" json:"slug,omitempty"`
	ReferralCode   string         `db:"referral_code" json:"referral_code"`
	ReferralCount  int            `db:"referral_count" json:"referral_count"`
	BadgeTier      string         `db:"badge_tier" json:"badge_tier"`
	AvgRating      float64        `db:"avg_rating" json:"avg_rating"`
	ReviewCount    int            `db:"review_count" json:"review_count"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// ProfessionalSlug строка для генерации sitemap.
type ProfessionalSlug struct {
	Slug      string    `db:"slug"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProfessionalFilter параметры поиска мастеров.
type ProfessionalFilter struct {
	Query string
	City  string
}

// ReferralProgress прогресс мастера по реферальной программе.
type ReferralProgress struct {
	Code        string  `json:"referral_code"`
	Count       int     `json:"referral_count"`
	CurrentTier string  `json:"current_tier"`
	NextTier    *string `json:"next_tier,omitempty"`
	Remaining   int     `json:"remaining"`
	Percent     int     `json:"percent"`
}
