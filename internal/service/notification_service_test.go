package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

func newTestNotificationService(t *testing.T) (*NotificationService, *mockNotificationRepo, *mockPublisher) {
	t.Helper()
	schemas, err := CompileNotificationSchemas()
	require.NoError(t, err)
	repo := new(mockNotificationRepo)
	pub := new(mockPublisher)
	return NewNotificationService(repo, pub, schemas), repo, pub
}

func TestNotificationService_Notify_PersistsThenPublishes(t *testing.T) {
	svc, repo, pub := newTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)
	pub.On("BroadcastToUser", userID, NotificationEvent, mock.AnythingOfType("*models.Notification")).Return()

	n, err := svc.Notify(ctx, userID, models.NotificationNewReview, models.NewReviewMetadata{
		ReviewID:   uuid.New(),
		ClientID:   uuid.New(),
		ClientName: "Anna",
		Rating:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationNewReview, n.Kind)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(n.Metadata, &meta))
	assert.Equal(t, "Anna", meta["client_name"])
	pub.AssertExpectations(t)
}

func TestNotificationService_Notify_RejectsInvalidMetadata(t *testing.T) {
	svc, repo, pub := newTestNotificationService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		kind     models.NotificationKind
		metadata interface{}
	}{
		{"rating out of range", models.NotificationNewReview, models.NewReviewMetadata{ReviewID: uuid.New(), ClientID: uuid.New(), ClientName: "A", Rating: 9}},
		{"missing fields", models.NotificationBanOutcome, map[string]string{"review_id": uuid.NewString()}},
		{"not a uuid", models.NotificationReportOutcome, map[string]string{"report_id": "42", "review_id": uuid.NewString(), "status": "ignored"}},
		{"unknown kind", models.NotificationKind("promo"), map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Notify(ctx, uuid.New(), tt.kind, tt.metadata)
			assert.Error(t, err)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "BroadcastToUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_List(t *testing.T) {
	svc, repo, _ := newTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("List", ctx, userID, true, 20, 0).Return([]models.Notification{{ID: uuid.New()}}, 21, nil)

	page, err := svc.List(ctx, userID, true, pagination.New(1, 20))
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasMore)
}
