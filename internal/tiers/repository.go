package tiers

import (
	"context"
	"errors"
	"fmt"

	"venuelayout/internal/shared/constants"
	"venuelayout/pkg/cache"
	"venuelayout/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines tier boundary data access methods
type Repository interface {
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*EventTierBoundaries, error)
	Upsert(ctx context.Context, boundaries *EventTierBoundaries) error
}

type repository struct {
	db    *gorm.DB
	cache cache.Service
}

func NewRepository(db *gorm.DB, cacheService cache.Service) Repository {
	return &repository{db: db, cache: cacheService}
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*EventTierBoundaries, error) {
	var boundaries EventTierBoundaries
	err := r.cache.GetOrSet(ctx, constants.BuildTierBoundariesKey(eventID.String()), constants.TTL_TIER_BOUNDARIES, &boundaries,
		func() (interface{}, error) {
			var found EventTierBoundaries
			if err := r.db.WithContext(ctx).First(&found, "event_id = ?", eventID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrBoundariesNotFound
				}
				return nil, fmt.Errorf("failed to get tier boundaries: %w", err)
			}
			return &found, nil
		})
	if err != nil {
		return nil, err
	}
	return &boundaries, nil
}

// Upsert stores the boundaries of an event, keeping the id of an existing row.
func (r *repository) Upsert(ctx context.Context, boundaries *EventTierBoundaries) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing EventTierBoundaries
		err := tx.Select("id", "created_at").First(&existing, "event_id = ?", boundaries.EventID).Error
		switch {
		case err == nil:
			boundaries.ID = existing.ID
			boundaries.CreatedAt = existing.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			if boundaries.ID == uuid.Nil {
				boundaries.ID = uuid.New()
			}
		default:
			return err
		}
		return tx.Save(boundaries).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save tier boundaries: %w", err)
	}

	eventID := boundaries.EventID.String()
	if err := r.cache.Delete(ctx, constants.BuildTierBoundariesKey(eventID)); err != nil {
		logger.GetDefault().WithEvent(eventID).WithError(err).Warn("failed to invalidate tier boundaries cache")
	}
	if err := r.cache.DeletePattern(ctx, constants.BuildClassifyPattern(eventID)); err != nil {
		logger.GetDefault().WithEvent(eventID).WithError(err).Warn("failed to invalidate classification cache")
	}
	return nil
}
