package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/validation"
	"github.com/indievia/indievia-backend/pkg/upload"
)

// ClientRepository хранилище профилей клиентов.
type ClientRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error)
	Update(ctx context.Context, p *models.ClientProfile) error
	SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) (*string, error)
}

// UpdateClientInput редактируемые поля профиля клиента.
type UpdateClientInput struct {
	FullName string  `json:"full_name" binding:"required"`
	Bio      *string `json:"bio"`
	City     *string `json:"city"`
}

// ClientService профили клиентов.
type ClientService struct {
	repo  ClientRepository
	media Uploader
}

// NewClientService создаёт сервис.
func NewClientService(repo ClientRepository, media Uploader) *ClientService {
	return &ClientService{repo: repo, media: media}
}

// Profile возвращает профиль клиента по идентификатору пользователя.
func (s *ClientService) Profile(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	return p, translate(err)
}

// UpdateProfile сохраняет изменения профиля.
func (s *ClientService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateClientInput) (*models.ClientProfile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateOptional("bio", in.Bio, validation.MaxBioLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateOptional("city", in.City, validation.MaxCityLength); err != nil {
		return nil, apperror.Validation(err)
	}

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	profile.FullName = in.FullName
	profile.Bio = in.Bio
	profile.City = in.City
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, translate(err)
	}
	return profile, nil
}

// SetProfilePicture загружает аватар клиента.
func (s *ClientService) SetProfilePicture(ctx context.Context, userID uuid.UUID, file UploadFile) (string, error) {
	urls, err := s.media.Upload(ctx, userID, upload.ProfilePicture, []UploadFile{file})
	if err != nil {
		return "", err
	}
	previous, err := s.repo.SetProfilePicture(ctx, userID, urls[0])
	if err != nil {
		s.media.Remove(ctx, urls[0])
		return "", translate(err)
	}
	if previous != nil && *previous != "" {
		s.media.Remove(ctx, *previous)
	}
	return urls[0], nil
}
