package scheduling

import (
	"context"
	"fmt"

	availabilityRepo "telecare/database/repository/availability"
	"telecare/models"
)

// GetAvailability returns the provider's weekly availability document.
func (se *DefaultSchedulingEngine) GetAvailability(ctx context.Context, providerID string) (*models.WeeklyAvailability, error) {
	cfg, err := se.Availability.Get(ctx, providerID)
	if err != nil {
		if err == availabilityRepo.ErrNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("provider %s has no availability configured", providerID))
		}
		return nil, err
	}
	return cfg, nil
}

// SetAvailability validates and overwrites the provider's weekly schedule.
// Invalid windows are rejected here so the slot generator never sees them.
func (se *DefaultSchedulingEngine) SetAvailability(ctx context.Context, cfg models.WeeklyAvailability) error {
	if cfg.ProviderID == "" {
		return NewInvalidConfigurationError("provider id is required")
	}
	if err := ValidateAvailability(cfg); err != nil {
		return err
	}
	return se.Availability.Upsert(ctx, &cfg)
}
