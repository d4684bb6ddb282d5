package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/cache"
	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/validation"
	"github.com/indievia/indievia-backend/pkg/pagination"
	"github.com/indievia/indievia-backend/pkg/upload"
)

// ProfessionalRepository хранилище профилей мастеров.
type ProfessionalRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error)
	GetBySlug(ctx context.Context, slug string) (*models.ProfessionalProfile, error)
	Search(ctx context.Context, filter models.ProfessionalFilter, limit, offset int) ([]models.ProfessionalProfile, int, error)
	Update(ctx context.Context, p *models.ProfessionalProfile) error
	SetSlug(ctx context.Context, userID uuid.UUID, slug string) (*string, error)
	AppendGallery(ctx context.Context, userID uuid.UUID, urls []string) ([]string, error)
	RemoveGalleryItem(ctx context.Context, userID uuid.UUID, url string) (bool, error)
	SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) (*string, error)
}

// Uploader сохраняет и удаляет медиа.
type Uploader interface {
	Upload(ctx context.Context, userID uuid.UUID, kind upload.Kind, files []UploadFile) ([]string, error)
	Remove(ctx context.Context, url string)
}

// UpdateProfessionalInput редактируемые поля профиля мастера.
type UpdateProfessionalInput struct {
	FullName  string  `json:"full_name" binding:"required"`
	Bio       *string `json:"bio"`
	Position  *string `json:"position"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	TikTok    *string `json:"tiktok"`
	Website   *string `json:"website"`
}

// Validate проверяет поля профиля.
func (in *UpdateProfessionalInput) Validate() error {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return err
	}
	checks := []struct {
		field string
		value *string
		max   int
	}{
		{"bio", in.Bio, validation.MaxBioLength},
		{"position", in.Position, validation.MaxPositionLength},
		{"address", in.Address, validation.MaxAddressLength},
		{"city", in.City, validation.MaxCityLength},
	}
	for _, c := range checks {
		if err := validation.ValidateOptional(c.field, c.value, c.max); err != nil {
			return err
		}
	}
	for field, link := range map[string]*string{
		"instagram": in.Instagram, "facebook": in.Facebook, "tiktok": in.TikTok, "website": in.Website,
	} {
		if err := validation.ValidateURL(field, link); err != nil {
			return err
		}
	}
	return nil
}

// ProfessionalService профили мастеров, slug, галерея и реферальная программа.
type ProfessionalService struct {
	repo       ProfessionalRepository
	media      Uploader
	cache      *cache.Cache
	profileTTL time.Duration
	log        *logrus.Entry
}

// NewProfessionalService создаёт сервис.
func NewProfessionalService(repo ProfessionalRepository, media Uploader, c *cache.Cache, profileTTL time.Duration) *ProfessionalService {
	return &ProfessionalService{
		repo:       repo,
		media:      media,
		cache:      c,
		profileTTL: profileTTL,
		log:        logger.WithComponent("professionals"),
	}
}

// PublicProfile возвращает публичный профиль по slug. Ответ кэшируется.
func (s *ProfessionalService) PublicProfile(ctx context.Context, slug string) (*models.ProfessionalProfile, error) {
	if !validation.IsSlug(slug) {
		return nil, apperror.ErrProfessionalNotFound
	}
	profile, err := cache.GetOrSet(ctx, s.cache, cache.ProfessionalKey(slug), s.profileTTL,
		func(ctx context.Context) (*models.ProfessionalProfile, error) {
			return s.repo.GetBySlug(ctx, slug)
		})
	if err != nil {
		return nil, translate(err)
	}
	return profile, nil
}

// Search ищет мастеров по тексту и городу. Страницы кэшируются и
// сбрасываются целиком при любом изменении профилей.
func (s *ProfessionalService) Search(ctx context.Context, filter models.ProfessionalFilter, params pagination.Params) (*pagination.Page[models.ProfessionalProfile], error) {
	key := cache.SearchKey(filter.Query, filter.City, params.Page, params.PerPage)
	return cache.GetOrSet(ctx, s.cache, key, s.profileTTL,
		func(ctx context.Context) (*pagination.Page[models.ProfessionalProfile], error) {
			items, total, err := s.repo.Search(ctx, filter, params.Limit(), params.Offset())
			if err != nil {
				return nil, err
			}
			page := pagination.NewPage(items, params, total)
			return &page, nil
		})
}

// MyProfile возвращает профиль текущего мастера.
func (s *ProfessionalService) MyProfile(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	return p, translate(err)
}

// UpdateProfile сохраняет изменения профиля.
func (s *ProfessionalService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfessionalInput) (*models.ProfessionalProfile, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	profile.FullName = in.FullName
	profile.Bio = in.Bio
	profile.Position = in.Position
	profile.Address = in.Address
	profile.City = in.City
	profile.Instagram = in.Instagram
	profile.Facebook = in.Facebook
	profile.TikTok = in.TikTok
	profile.Website = in.Website

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, translate(err)
	}
	s.invalidate(ctx, profile.Slug)
	return profile, nil
}

// SetSlug нормализует и сохраняет адрес публичной страницы.
func (s *ProfessionalService) SetSlug(ctx context.Context, userID uuid.UUID, raw string) (string, error) {
	slug := validation.Slugify(raw)
	if err := validation.ValidateSlug(slug); err != nil {
		return "", apperror.Validation(err)
	}

	previous, err := s.repo.SetSlug(ctx, userID, slug)
	if err != nil {
		return "", translate(err)
	}

	s.invalidate(ctx, previous)
	s.cache.Delete(ctx, cache.ProfessionalKey(slug))
	s.cache.Delete(ctx, cache.SitemapKey)
	s.log.WithFields(logrus.Fields{"user_id": userID, "slug": slug}).Info("professional slug updated")
	return slug, nil
}

// AddGalleryItems загружает пачку файлов и добавляет их в галерею.
func (s *ProfessionalService) AddGalleryItems(ctx context.Context, userID uuid.UUID, files []UploadFile) ([]string, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	urls, err := s.media.Upload(ctx, userID, upload.Gallery, files)
	if err != nil {
		return nil, err
	}

	gallery, err := s.repo.AppendGallery(ctx, userID, urls)
	if err != nil {
		for _, u := range urls {
			s.media.Remove(ctx, u)
		}
		return nil, translate(err)
	}
	s.invalidate(ctx, profile.Slug)
	return gallery, nil
}

// RemoveGalleryItem удаляет ссылку из галереи и сам файл.
func (s *ProfessionalService) RemoveGalleryItem(ctx context.Context, userID uuid.UUID, url string) error {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return translate(err)
	}
	removed, err := s.repo.RemoveGalleryItem(ctx, userID, url)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.New(apperror.ErrCodeNotFound, "файл не найден в галерее")
	}
	s.media.Remove(ctx, url)
	s.invalidate(ctx, profile.Slug)
	return nil
}

// SetProfilePicture загружает аватар (до 3 МБ) и удаляет прежний.
func (s *ProfessionalService) SetProfilePicture(ctx context.Context, userID uuid.UUID, file UploadFile) (string, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", translate(err)
	}

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
	s.invalidate(ctx, profile.Slug)
	return urls[0], nil
}

// Referrals возвращает прогресс реферальной программы мастера.
func (s *ProfessionalService) Referrals(ctx context.Context, userID uuid.UUID) (*models.ReferralProgress, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	progress := ReferralProgressFor(profile.ReferralCode, profile.ReferralCount)
	return &progress, nil
}

// InvalidateProfile сбрасывает кэш публичной страницы мастера и поиска.
// Для пользователя без профиля мастера сбрасывается только поиск.
func (s *ProfessionalService) InvalidateProfile(ctx context.Context, userID uuid.UUID) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.cache.InvalidateByPrefix(ctx, cache.SearchPrefix)
		return
	}
	s.invalidate(ctx, profile.Slug)
}

func (s *ProfessionalService) invalidate(ctx context.Context, slug *string) {
	if slug != nil && *slug != "" {
		s.cache.Delete(ctx, cache.ProfessionalKey(*slug))
	}
	s.cache.InvalidateByPrefix(ctx, cache.SearchPrefix)
}
