package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Порядок сортировки отзывов.
const (
	ReviewSortNewest  = "newest"
	ReviewSortHighest = "highest"
	ReviewSortLowest  = "lowest"
)

// Review отзыв клиента о мастере.
type Review struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	ClientID       uuid.UUID      `db:"client_id" json:"client_id"`
	ProfessionalID uuid.UUID      `db:"professional_id" json:"professional_id"`
	Rating         int            `db:"rating" json:"rating"`
	Body           string         `db:"body" json:"body"`
	Media          pq.StringArray `db:"media" json:"media"`
	IsBlocked      bool           `db:"is_blocked" json:"is_blocked"`
	IsReported     bool           `db:"is_reported" json:"is_reported"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`

	ReplyID        *uuid.UUID `db:"reply_id" json:"-"`
	ReplyBody      *string    `db:"reply_body" json:"-"`
	ReplyCreatedAt *time.Time `db:"reply_created_at" json:"-"`
	ReplyUpdatedAt *time.Time `db:"reply_updated_at" json:"-"`

	Reply *ReviewReply `db:"-" json:"reply"`

	ClientName    *string `db:"client_name" json:"client_name,omitempty"`
	ClientPicture *string `db:"client_picture" json:"client_picture,omitempty"`
}

// ReviewReply единственный ответ мастера на отзыв.
type ReviewReply struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FillReply собирает Reply из плоских колонок.
func (r *Review) FillReply() {
	if r.ReplyID == nil || r.ReplyBody == nil {
		r.Reply = nil
		return
	}
	reply := &ReviewReply{ID: *r.ReplyID, Body: *r.ReplyBody}
	if r.ReplyCreatedAt != nil {
		reply.CreatedAt = *r.ReplyCreatedAt
	}
	if r.ReplyUpdatedAt != nil {
		reply.UpdatedAt = *r.ReplyUpdatedAt
	}
	r.Reply = reply
}

// ReviewFilter фильтр выборки отзывов.
type ReviewFilter struct {
	ProfessionalID *uuid.UUID
	ClientID       *uuid.UUID
	IncludeBlocked bool
	Sort           string
}
