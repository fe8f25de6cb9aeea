package availabilityRepo

import (
	"context"
	"errors"

	"telecare/models"
)

// ErrNotFound is returned when a provider has no availability document yet.
var ErrNotFound = errors.New("availability not found")

// AvailabilityRepository persists one WeeklyAvailability document per provider.
type AvailabilityRepository interface {
	Get(ctx context.Context, providerID string) (*models.WeeklyAvailability, error)
	Upsert(ctx context.Context, avail *models.WeeklyAvailability) error
}
