package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы жалоб. Набор открыт: в БД хранится произвольная строка.
const (
	ReportStatusOpen             = "open"
	ReportStatusIgnored          = "ignored"
	ReportStatusBlocked          = "blocked"
	ReportStatusBlockedAndBanned = "blocked_and_banned"
)

// Действия модератора.
const (
	ModerationActionIgnore      = "ignore"
	ModerationActionBlock       = "block"
	ModerationActionBlockAndBan = "block_and_ban"
)

// ModerationReport жалоба на отзыв.
type ModerationReport struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	ReviewID   uuid.UUID  `db:"review_id" json:"review_id"`
	ReporterID uuid.UUID  `db:"reporter_id" json:"reporter_id"`
	Reason     string     `db:"reason" json:"reason"`
	Details    *string    `db:"details" json:"details,omitempty"`
	Status     string     `db:"status" json:"status"`
	ResolvedBy *uuid.UUID `db:"resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// ModerationItem жалоба вместе со снимком отзыва для админки.
type ModerationItem struct {
	ModerationReport
	ReviewRating    int       `db:"review_rating" json:"review_rating"`
	ReviewBody      string    `db:"review_body" json:"review_body"`
	ReviewClientID  uuid.UUID `db:"review_client_id" json:"review_client_id"`
	ReviewIsBlocked bool      `db:"review_is_blocked" json:"review_is_blocked"`
}

// StatusForAction возвращает статус жалобы после действия модератора.
func StatusForAction(action string) (string, bool) {
	switch action {
	case ModerationActionIgnore:
		return ReportStatusIgnored, true
	case ModerationActionBlock:
		return ReportStatusBlocked, true
	case ModerationActionBlockAndBan:
		return ReportStatusBlockedAndBanned, true
	default:
		return "", false
	}
}

// ModerationResolution итог рассмотрения жалобы.
type ModerationResolution struct {
	Report         ModerationReport `json:"report"`
	Action         string           `json:"action"`
	ReviewClientID uuid.UUID        `json:"review_client_id"`
	ProfessionalID uuid.UUID        `json:"professional_id"`
}
