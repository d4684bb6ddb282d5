package dto

// RegisterRequest тело POST /auth/register.
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required"`
	Password     string  `json:"password" binding:"required"`
	Role         string  `json:"role" binding:"required,oneof=client professional"`
	FullName     string  `json:"full_name" binding:"required"`
	City         *string `json:"city"`
	Phone        *string `json:"phone"`
	ReferralCode string  `json:"referral_code"`
}

// LoginRequest тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest тело POST /auth/refresh и /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CodeRequest код подтверждения email или телефона.
type CodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// PhoneRequest номер для SMS-подтверждения.
type PhoneRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// SlugRequest желаемый адрес публичной страницы. Нормализуется на сервере.
type SlugRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// SlugURI параметр :slug публичных маршрутов.
type SlugURI struct {
	Slug string `uri:"slug" binding:"required,slug"`
}

// GalleryRemoveRequest тело DELETE /professional/gallery.
type GalleryRemoveRequest struct {
	URL string `json:"url" binding:"required"`
}

// ReviewForm multipart-вариант POST /review, файлы идут в поле media.
type ReviewForm struct {
	ProfessionalID string `form:"professional_id" binding:"required,uuid"`
	Rating         int    `form:"rating" binding:"required"`
	Body           string `form:"body" binding:"required"`
}

// ReplyRequest текст ответа мастера.
type ReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

// ModerationActionRequest решение по жалобе.
type ModerationActionRequest struct {
	Action string `json:"action" binding:"required,oneof=ignore block block_and_ban"`
}

// BanRequest блокировка или разблокировка пользователя.
type BanRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}

// InboxStatusRequest смена статуса обращения.
type InboxStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open closed"`
}
