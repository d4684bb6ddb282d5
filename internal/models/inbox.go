package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InboxKindBugReport = "bug_report"
	InboxKindSupport   = "support"
	InboxKindContact   = "contact"

	InboxStatusOpen   = "open"
	InboxStatusClosed = "closed"
)

// ValidInboxKinds допустимые типы обращений.
var ValidInboxKinds = map[string]struct{}{
	InboxKindBugReport: {},
	InboxKindSupport:   {},
	InboxKindContact:   {},
}

// InboxMessage обращение в поддержку.
type InboxMessage struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Kind      string     `db:"kind" json:"kind"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Subject   string     `db:"subject" json:"subject"`
	Body      string     `db:"body" json:"body"`
	Status    string     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
