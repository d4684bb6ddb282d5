package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/models"
)

type professionalGetter interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error)
}

type clientGetter interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error)
}

type profileReader struct {
	professionals professionalGetter
	clients       clientGetter
}

// NewProfileReader объединяет репозитории профилей в ProfileReader.
func NewProfileReader(professionals professionalGetter, clients clientGetter) ProfileReader {
	return &profileReader{professionals: professionals, clients: clients}
}

func (r *profileReader) ProfessionalProfile(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error) {
	p, err := r.professionals.GetByUserID(ctx, userID)
	return p, translate(err)
}

func (r *profileReader) ClientProfile(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error) {
	p, err := r.clients.GetByUserID(ctx, userID)
	return p, translate(err)
}
