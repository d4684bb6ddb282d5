package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationKind тип события уведомления.
type NotificationKind string

const (
	NotificationNewReview     NotificationKind = "new_review"
	NotificationReviewReply   NotificationKind = "review_reply"
	NotificationReportOutcome NotificationKind = "report_outcome"
	NotificationBanOutcome    NotificationKind = "ban_outcome"
)

// Notification уведомление пользователя. Metadata зависит от Kind.
type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	UserID    uuid.UUID        `db:"user_id" json:"user_id"`
	Kind      NotificationKind `db:"kind" json:"kind"`
	Metadata  json.RawMessage  `db:"metadata" json:"metadata"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// NewReviewMetadata payload для new_review.
type NewReviewMetadata struct {
	ReviewID   uuid.UUID `json:"review_id"`
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	Rating     int       `json:"rating"`
}

// ReviewReplyMetadata payload для review_reply.
type ReviewReplyMetadata struct {
	ReviewID         uuid.UUID `json:"review_id"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	ProfessionalSlug *string   `json:"professional_slug,omitempty"`
}

// ReportOutcomeMetadata payload для report_outcome.
type ReportOutcomeMetadata struct {
	ReportID uuid.UUID `json:"report_id"`
	ReviewID uuid.UUID `json:"review_id"`
	Status   string    `json:"status"`
}

// BanOutcomeMetadata payload для ban_outcome.
type BanOutcomeMetadata struct {
	ReviewID uuid.UUID `json:"review_id"`
	Reason   string    `json:"reason"`
}
