package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/service"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) Create(ctx context.Context, clientID uuid.UUID, in service.CreateReviewInput, files []service.UploadFile) (*models.Review, error) {
	args := m.Called(ctx, clientID, in, files)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewService) Get(ctx context.Context, id, viewerID uuid.UUID, viewerRole string) (*models.Review, error) {
	args := m.Called(ctx, id, viewerID, viewerRole)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewService) ListForProfessional(ctx context.Context, slug, sort string, params pagination.Params) (*pagination.Page[models.Review], error) {
	args := m.Called(ctx, slug, sort, params)
	p, _ := args.Get(0).(*pagination.Page[models.Review])
	return p, args.Error(1)
}

func (m *mockReviewService) ListForOwner(ctx context.Context, professionalID uuid.UUID, sort string, params pagination.Params) (*pagination.Page[models.Review], error) {
	args := m.Called(ctx, professionalID, sort, params)
	p, _ := args.Get(0).(*pagination.Page[models.Review])
	return p, args.Error(1)
}

func (m *mockReviewService) ListByClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*pagination.Page[models.Review], error) {
	args := m.Called(ctx, clientID, params)
	p, _ := args.Get(0).(*pagination.Page[models.Review])
	return p, args.Error(1)
}

func (m *mockReviewService) PostReply(ctx context.Context, professionalID, reviewID uuid.UUID, body string) (*models.ReviewReply, error) {
	args := m.Called(ctx, professionalID, reviewID, body)
	r, _ := args.Get(0).(*models.ReviewReply)
	return r, args.Error(1)
}

func (m *mockReviewService) EditReply(ctx context.Context, professionalID, reviewID uuid.UUID, body string) (*models.ReviewReply, error) {
	args := m.Called(ctx, professionalID, reviewID, body)
	r, _ := args.Get(0).(*models.ReviewReply)
	return r, args.Error(1)
}

func (m *mockReviewService) DeleteReply(ctx context.Context, professionalID, reviewID uuid.UUID) error {
	return m.Called(ctx, professionalID, reviewID).Error(0)
}

func (m *mockReviewService) Report(ctx context.Context, reporterID uuid.UUID, reporterRole string, reviewID uuid.UUID, in service.ReportInput) (*models.ModerationReport, error) {
	args := m.Called(ctx, reporterID, reporterRole, reviewID, in)
	r, _ := args.Get(0).(*models.ModerationReport)
	return r, args.Error(1)
}

type mockProfessionalService struct{ mock.Mock }

func (m *mockProfessionalService) PublicProfile(ctx context.Context, slug string) (*models.ProfessionalProfile, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*models.ProfessionalProfile)
	return p, args.Error(1)
}

func (m *mockProfessionalService) Search(ctx context.Context, filter models.ProfessionalFilter, params pagination.Params) (*pagination.Page[models.ProfessionalProfile], error) {
	args := m.Called(ctx, filter, params)
	p, _ := args.Get(0).(*pagination.Page[models.ProfessionalProfile])
	return p, args.Error(1)
}

func (m *mockProfessionalService) MyProfile(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.ProfessionalProfile)
	return p, args.Error(1)
}

func (m *mockProfessionalService) UpdateProfile(ctx context.Context, userID uuid.UUID, in service.UpdateProfessionalInput) (*models.ProfessionalProfile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*models.ProfessionalProfile)
	return p, args.Error(1)
}

func (m *mockProfessionalService) SetSlug(ctx context.Context, userID uuid.UUID, raw string) (string, error) {
	args := m.Called(ctx, userID, raw)
	return args.String(0), args.Error(1)
}

func (m *mockProfessionalService) AddGalleryItems(ctx context.Context, userID uuid.UUID, files []service.UploadFile) ([]string, error) {
	args := m.Called(ctx, userID, files)
	urls, _ := args.Get(0).([]string)
	return urls, args.Error(1)
}

func (m *mockProfessionalService) RemoveGalleryItem(ctx context.Context, userID uuid.UUID, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

func (m *mockProfessionalService) SetProfilePicture(ctx context.Context, userID uuid.UUID, file service.UploadFile) (string, error) {
	args := m.Called(ctx, userID, file)
	return args.String(0), args.Error(1)
}

func (m *mockProfessionalService) Referrals(ctx context.Context, userID uuid.UUID) (*models.ReferralProgress, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.ReferralProgress)
	return p, args.Error(1)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params pagination.Params) (*pagination.Page[models.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	p, _ := args.Get(0).(*pagination.Page[models.Notification])
	return p, args.Error(1)
}

func (m *mockNotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockModerationService struct{ mock.Mock }

func (m *mockModerationService) List(ctx context.Context, status string, params pagination.Params) (*pagination.Page[models.ModerationItem], error) {
	args := m.Called(ctx, status, params)
	p, _ := args.Get(0).(*pagination.Page[models.ModerationItem])
	return p, args.Error(1)
}

func (m *mockModerationService) Resolve(ctx context.Context, adminID, reportID uuid.UUID, action string) (*models.ModerationResolution, error) {
	args := m.Called(ctx, adminID, reportID, action)
	r, _ := args.Get(0).(*models.ModerationResolution)
	return r, args.Error(1)
}

type mockInboxService struct{ mock.Mock }

func (m *mockInboxService) Submit(ctx context.Context, userID *uuid.UUID, in service.InboxInput) (*models.InboxMessage, error) {
	args := m.Called(ctx, userID, in)
	msg, _ := args.Get(0).(*models.InboxMessage)
	return msg, args.Error(1)
}

func (m *mockInboxService) List(ctx context.Context, status, kind string, params pagination.Params) (*pagination.Page[models.InboxMessage], error) {
	args := m.Called(ctx, status, kind, params)
	p, _ := args.Get(0).(*pagination.Page[models.InboxMessage])
	return p, args.Error(1)
}

func (m *mockInboxService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InboxMessage, error) {
	args := m.Called(ctx, id, status)
	msg, _ := args.Get(0).(*models.InboxMessage)
	return msg, args.Error(1)
}

type stubSitemap struct {
	body []byte
	err  error
}

func (s stubSitemap) XML(context.Context) ([]byte, error) { return s.body, s.err }
