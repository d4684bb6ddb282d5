package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/metrics"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/storage"
	"github.com/indievia/indievia-backend/pkg/upload"
)

// UploadFile файл из multipart-запроса. Head содержит первые байты для
// определения типа, Reader отдаёт файл целиком, начиная с Head.
type UploadFile struct {
	Name   string
	Size   int64
	Head   []byte
	Reader io.Reader
}

// MediaStore файловое хранилище.
type MediaStore interface {
	Save(ctx context.Context, userID uuid.UUID, purpose, originalName string, r io.Reader, maxBytes int64) (storage.SavedFile, error)
	Delete(ctx context.Context, relativePath string) error
	RelativeFromURL(url string) (string, bool)
}

// MediaRecords учёт загруженных файлов в БД.
type MediaRecords interface {
	CreateBatch(ctx context.Context, files []models.MediaFile) error
	DeleteByURL(ctx context.Context, url string) error
}

// MediaService проверяет и сохраняет загрузки.
type MediaService struct {
	store   MediaStore
	records MediaRecords
	log     *logrus.Entry
}

// NewMediaService создаёт сервис загрузок.
func NewMediaService(store MediaStore, records MediaRecords) *MediaService {
	return &MediaService{store: store, records: records, log: logger.WithComponent("media")}
}

// Upload проверяет пачку файлов до записи на диск и сохраняет её целиком.
// Если хотя бы один файл не сохранился, уже записанные удаляются.
func (s *MediaService) Upload(ctx context.Context, userID uuid.UUID, kind upload.Kind, files []UploadFile) ([]string, error) {
	checks := make([]upload.File, len(files))
	for i, f := range files {
		checks[i] = upload.File{Name: f.Name, Size: f.Size, Head: f.Head}
	}

	mimes, err := upload.Validate(kind, checks)
	if err != nil {
		metrics.RecordUploadRejected(string(kind))
		var uploadErr *upload.Error
		if errors.As(err, &uploadErr) {
			return nil, apperror.Validation(uploadErr)
		}
		return nil, err
	}

	maxBytes := int64(upload.MaxMediaFileBytes)
	if kind == upload.ProfilePicture {
		maxBytes = upload.MaxProfilePictureBytes
	}

	saved := make([]storage.SavedFile, 0, len(files))
	records := make([]models.MediaFile, 0, len(files))
	for i, f := range files {
		sf, err := s.store.Save(ctx, userID, string(kind), f.Name, f.Reader, maxBytes)
		if err != nil {
			s.rollback(ctx, saved)
			return nil, err
		}
		saved = append(saved, sf)

		uid := userID
		records = append(records, models.MediaFile{
			UserID:   &uid,
			Purpose:  string(kind),
			FilePath: sf.RelativePath,
			URL:      sf.URL,
			FileType: mimes[i],
			FileSize: sf.Size,
		})
	}

	if err := s.records.CreateBatch(ctx, records); err != nil {
		s.rollback(ctx, saved)
		return nil, err
	}

	urls := make([]string, len(saved))
	for i, sf := range saved {
		urls[i] = sf.URL
	}
	return urls, nil
}

// Remove удаляет файл, если он принадлежит локальному хранилищу.
func (s *MediaService) Remove(ctx context.Context, url string) {
	rel, ok := s.store.RelativeFromURL(url)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, rel); err != nil {
		s.log.WithError(err).WithField("url", url).Warn("failed to delete media file")
	}
	if err := s.records.DeleteByURL(ctx, url); err != nil {
		s.log.WithError(err).WithField("url", url).Warn("failed to delete media record")
	}
}

func (s *MediaService) rollback(ctx context.Context, saved []storage.SavedFile) {
	for _, sf := range saved {
		if err := s.store.Delete(ctx, sf.RelativePath); err != nil {
			s.log.WithError(err).WithField("path", sf.RelativePath).Warn("rollback: failed to delete media file")
		}
	}
}
