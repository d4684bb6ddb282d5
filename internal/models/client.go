package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientProfile профиль клиента, оставляющего отзывы.
type ClientProfile struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	City           *string   `db:"city" json:"city,omitempty"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
