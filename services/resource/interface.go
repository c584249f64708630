package resource

import (
	"context"

	resourceRepo "reservo/database/repository/resource"
	"reservo/models"
)

// ResourceService manages marketplace listings.
type ResourceService interface {
	Register(ctx context.Context, ownerID string, input models.Resource) (*models.Resource, error)
	Get(ctx context.Context, id string) (*models.Resource, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Resource, error)
	Update(ctx context.Context, ownerID string, res models.Resource) (*models.Resource, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DefaultResourceService implements ResourceService.
type DefaultResourceService struct {
	Repo resourceRepo.ResourceRepository
}
