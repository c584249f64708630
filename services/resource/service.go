package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"reservo/models"
)

// Register lists a new resource for the owner. The version counter
// starts at zero; the booking layer bumps it on every commit.
func (s *DefaultResourceService) Register(ctx context.Context, ownerID string, input models.Resource) (*models.Resource, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("resource name is required")
	}
	if input.Kind != models.ResourceKindSpace && input.Kind != models.ResourceKindEvent {
		return nil, fmt.Errorf("unknown resource kind %q", input.Kind)
	}

	now := time.Now()
	res := input
	res.ID = uuid.New().String()
	res.OwnerID = ownerID
	res.Version = 0
	res.CreatedAt = now
	res.UpdatedAt = now

	if err := s.Repo.Create(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DefaultResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultResourceService) ListByOwner(ctx context.Context, ownerID string) ([]models.Resource, error) {
	return s.Repo.ListByOwner(ownerID)
}

// Update replaces the mutable listing fields. The version counter and
// ownership are never overwritten from client input.
func (s *DefaultResourceService) Update(ctx context.Context, ownerID string, input models.Resource) (*models.Resource, error) {
	current, err := s.Repo.GetByID(input.ID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != ownerID {
		return nil, fmt.Errorf("resource %s belongs to another owner", input.ID)
	}

	current.Name = input.Name
	current.Description = input.Description
	current.Capacity = input.Capacity
	current.Location = input.Location

	if err := s.Repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *DefaultResourceService) Delete(ctx context.Context, ownerID, id string) error {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if current.OwnerID != ownerID {
		return fmt.Errorf("resource %s belongs to another owner", id)
	}
	return s.Repo.Delete(id)
}
