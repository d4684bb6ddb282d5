package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/storage"
	"github.com/indievia/indievia-backend/pkg/upload"
)

var pngHead = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}

func pngUpload(name string, size int64) UploadFile {
	return UploadFile{Name: name, Size: size, Head: pngHead, Reader: bytes.NewReader(pngHead)}
}

func TestMediaService_Upload_RejectsBeforeStoring(t *testing.T) {
	ctx := context.Background()
	store := new(mockMediaStore)
	records := new(mockMediaRecords)
	svc := NewMediaService(store, records)

	tests := []struct {
		name  string
		kind  upload.Kind
		files []UploadFile
	}{
		{"gallery file over 2MB", upload.Gallery, []UploadFile{pngUpload("a.png", upload.MaxMediaFileBytes+1)}},
		{"picture over 3MB", upload.ProfilePicture, []UploadFile{pngUpload("a.png", upload.MaxProfilePictureBytes+1)}},
		{"too many files", upload.Gallery, func() []UploadFile {
			files := make([]UploadFile, upload.MaxFilesPerBatch+1)
			for i := range files {
				files[i] = pngUpload("a.png", 100)
			}
			return files
		}()},
		{"extension mismatch", upload.Gallery, []UploadFile{pngUpload("a.jpg", 100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, uuid.New(), tt.kind, tt.files)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	records.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestMediaService_Upload_RollsBackOnRecordFailure(t *testing.T) {
	ctx := context.Background()
	store := new(mockMediaStore)
	records := new(mockMediaRecords)
	svc := NewMediaService(store, records)
	userID := uuid.New()

	files := []UploadFile{pngUpload("one.png", 100), pngUpload("two.png", 100)}
	store.On("Save", ctx, userID, "gallery", "one.png", mock.Anything, int64(upload.MaxMediaFileBytes)).
		Return(storage.SavedFile{RelativePath: "gallery/1.png", URL: "/media/gallery/1.png", Size: 100}, nil)
	store.On("Save", ctx, userID, "gallery", "two.png", mock.Anything, int64(upload.MaxMediaFileBytes)).
		Return(storage.SavedFile{RelativePath: "gallery/2.png", URL: "/media/gallery/2.png", Size: 100}, nil)
	records.On("CreateBatch", ctx, mock.Anything).Return(assert.AnError)
	store.On("Delete", ctx, mock.Anything).Return(nil)

	_, err := svc.Upload(ctx, userID, upload.Gallery, files)
	require.ErrorIs(t, err, assert.AnError)
	store.AssertCalled(t, "Delete", ctx, "gallery/1.png")
	store.AssertCalled(t, "Delete", ctx, "gallery/2.png")
}

func TestMediaService_Upload_Success(t *testing.T) {
	ctx := context.Background()
	store := new(mockMediaStore)
	records := new(mockMediaRecords)
	svc := NewMediaService(store, records)
	userID := uuid.New()

	store.On("Save", ctx, userID, "profile_picture", "me.png", mock.Anything, int64(upload.MaxProfilePictureBytes)).
		Return(storage.SavedFile{RelativePath: "profile_picture/me.png", URL: "/media/profile_picture/me.png", Size: 100}, nil)
	records.On("CreateBatch", ctx, mock.Anything).Return(nil)

	urls, err := svc.Upload(ctx, userID, upload.ProfilePicture, []UploadFile{pngUpload("me.png", 100)})
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/profile_picture/me.png"}, urls)
}
