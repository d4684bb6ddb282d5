package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationEmail = "email"
	VerificationPhone = "phone"
)

// VerificationCode код подтверждения email или телефона. Хранится только хэш.
type VerificationCode struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Channel   string     `db:"channel" json:"channel"`
	Target    string     `db:"target" json:"target"`
	CodeHash  string     `db:"code_hash" json:"-"`
	Attempts  int        `db:"attempts" json:"attempts"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	UsedAt    *time.Time `db:"used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
