package resourceRepo

import "reservo/models"

// ResourceRepository defines the interface for resource data access.
type ResourceRepository interface {
	GetByID(id string) (*models.Resource, error)
	ListByOwner(ownerID string) ([]models.Resource, error)
	Create(res *models.Resource) error
	Update(res *models.Resource) error
	Delete(id string) error
}
