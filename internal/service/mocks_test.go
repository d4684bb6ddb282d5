package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/storage"
	"github.com/indievia/indievia-backend/pkg/upload"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) CreateClient(ctx context.Context, user *models.User, profile *models.ClientProfile) error {
	args := m.Called(ctx, user, profile)
	if args.Error(0) == nil {
		user.ID = uuid.New()
		user.IsActive = true
		profile.UserID = user.ID
	}
	return args.Error(0)
}

func (m *mockAuthRepo) CreateProfessional(ctx context.Context, user *models.User, profile *models.ProfessionalProfile, referrerID *uuid.UUID) error {
	args := m.Called(ctx, user, profile, referrerID)
	if args.Error(0) == nil {
		user.ID = uuid.New()
		user.IsActive = true
		profile.UserID = user.ID
	}
	return args.Error(0)
}

func (m *mockAuthRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthRepo) CreateSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockAuthRepo) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockAuthRepo) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *mockAuthRepo) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *mockAuthRepo) DeleteSessionByToken(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

type mockReferrals struct {
	mock.Mock
}

func (m *mockReferrals) GetByReferralCode(ctx context.Context, code string) (*models.ProfessionalProfile, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionalProfile), args.Error(1)
}

func (m *mockReferrals) SetBadgeTier(ctx context.Context, userID uuid.UUID, tier string) error {
	return m.Called(ctx, userID, tier).Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) List(ctx context.Context, filter models.ReviewFilter, limit, offset int) ([]models.Review, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]models.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) CreateReply(ctx context.Context, reviewID, professionalID uuid.UUID, body string) (*models.ReviewReply, error) {
	args := m.Called(ctx, reviewID, professionalID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewReply), args.Error(1)
}

func (m *mockReviewRepo) UpdateReply(ctx context.Context, reviewID uuid.UUID, body string) (*models.ReviewReply, error) {
	args := m.Called(ctx, reviewID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewReply), args.Error(1)
}

func (m *mockReviewRepo) DeleteReply(ctx context.Context, reviewID uuid.UUID) error {
	return m.Called(ctx, reviewID).Error(0)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.ModerationReport) error {
	args := m.Called(ctx, report)
	if args.Error(0) == nil {
		report.ID = uuid.New()
		report.Status = models.ReportStatusOpen
	}
	return args.Error(0)
}

func (m *mockReportRepo) List(ctx context.Context, status string, limit, offset int) ([]models.ModerationItem, int, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.ModerationItem), args.Int(1), args.Error(2)
}

func (m *mockReportRepo) Resolve(ctx context.Context, reportID, adminID uuid.UUID, action string) (*models.ModerationResolution, error) {
	args := m.Called(ctx, reportID, adminID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationResolution), args.Error(1)
}

type mockProfessionals struct {
	mock.Mock
}

func (m *mockProfessionals) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionalProfile), args.Error(1)
}

func (m *mockProfessionals) GetBySlug(ctx context.Context, slug string) (*models.ProfessionalProfile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionalProfile), args.Error(1)
}

func (m *mockProfessionals) Search(ctx context.Context, filter models.ProfessionalFilter, limit, offset int) ([]models.ProfessionalProfile, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]models.ProfessionalProfile), args.Int(1), args.Error(2)
}

func (m *mockProfessionals) Update(ctx context.Context, p *models.ProfessionalProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfessionals) SetSlug(ctx context.Context, userID uuid.UUID, slug string) (*string, error) {
	args := m.Called(ctx, userID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *mockProfessionals) AppendGallery(ctx context.Context, userID uuid.UUID, urls []string) ([]string, error) {
	args := m.Called(ctx, userID, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProfessionals) RemoveGalleryItem(ctx context.Context, userID uuid.UUID, url string) (bool, error) {
	args := m.Called(ctx, userID, url)
	return args.Bool(0), args.Error(1)
}

func (m *mockProfessionals) SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) (*string, error) {
	args := m.Called(ctx, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type mockClients struct {
	mock.Mock
}

func (m *mockClients) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientProfile), args.Error(1)
}

func (m *mockClients) Update(ctx context.Context, p *models.ClientProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockClients) SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) (*string, error) {
	args := m.Called(ctx, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, userID uuid.UUID, kind upload.Kind, files []UploadFile) ([]string, error) {
	args := m.Called(ctx, userID, kind, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockUploader) Remove(ctx context.Context, url string) {
	m.Called(ctx, url)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID uuid.UUID, kind models.NotificationKind, metadata interface{}) (*models.Notification, error) {
	args := m.Called(ctx, userID, kind, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil {
		n.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, int, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	return args.Get(0).([]models.Notification), args.Int(1), args.Error(2)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) BroadcastToUser(userID uuid.UUID, event string, data interface{}) {
	m.Called(userID, event, data)
}

type mockMediaStore struct {
	mock.Mock
}

func (m *mockMediaStore) Save(ctx context.Context, userID uuid.UUID, purpose, originalName string, r io.Reader, maxBytes int64) (storage.SavedFile, error) {
	args := m.Called(ctx, userID, purpose, originalName, r, maxBytes)
	return args.Get(0).(storage.SavedFile), args.Error(1)
}

func (m *mockMediaStore) Delete(ctx context.Context, relativePath string) error {
	return m.Called(ctx, relativePath).Error(0)
}

func (m *mockMediaStore) RelativeFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

type mockMediaRecords struct {
	mock.Mock
}

func (m *mockMediaRecords) CreateBatch(ctx context.Context, files []models.MediaFile) error {
	return m.Called(ctx, files).Error(0)
}

func (m *mockMediaRecords) DeleteByURL(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type mockVerificationRepo struct {
	mock.Mock
}

func (m *mockVerificationRepo) Create(ctx context.Context, code *models.VerificationCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *mockVerificationRepo) GetActive(ctx context.Context, userID uuid.UUID, channel string) (*models.VerificationCode, error) {
	args := m.Called(ctx, userID, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationCode), args.Error(1)
}

func (m *mockVerificationRepo) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVerificationRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockVerificationUsers struct {
	mock.Mock
}

func (m *mockVerificationUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockVerificationUsers) ConfirmEmail(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVerificationUsers) SetPhoneVerified(ctx context.Context, id uuid.UUID, phone string) error {
	return m.Called(ctx, id, phone).Error(0)
}

type mockCodeSender struct {
	mock.Mock
	last string
}

func (m *mockCodeSender) Send(ctx context.Context, channel, target, code string) error {
	m.last = code
	return m.Called(ctx, channel, target, code).Error(0)
}

type stubSlugs struct {
	slugs []models.ProfessionalSlug
	err   error
	calls int
}

func (s *stubSlugs) ListSlugs(context.Context) ([]models.ProfessionalSlug, error) {
	s.calls++
	return s.slugs, s.err
}

type mockAdminUsers struct {
	mock.Mock
}

func (m *mockAdminUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAdminUsers) List(ctx context.Context, role string, limit, offset int) ([]models.User, int, error) {
	args := m.Called(ctx, role, limit, offset)
	return args.Get(0).([]models.User), args.Int(1), args.Error(2)
}

func (m *mockAdminUsers) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	return m.Called(ctx, id, banned).Error(0)
}

type mockInboxRepo struct {
	mock.Mock
}

func (m *mockInboxRepo) Create(ctx context.Context, msg *models.InboxMessage) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = uuid.New()
		msg.Status = models.InboxStatusOpen
	}
	return args.Error(0)
}

func (m *mockInboxRepo) List(ctx context.Context, status, kind string, limit, offset int) ([]models.InboxMessage, int, error) {
	args := m.Called(ctx, status, kind, limit, offset)
	return args.Get(0).([]models.InboxMessage), args.Int(1), args.Error(2)
}

func (m *mockInboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InboxMessage, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InboxMessage), args.Error(1)
}
