package tiers

import (
	"time"

	"github.com/google/uuid"
)

// EventTierBoundaries stores the tier cutoffs of one event. Curves, when set,
// replaces the flat thresholds with full boundary curves.
type EventTierBoundaries struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"event_id"`
	PremiumY  float64      `gorm:"not null" json:"premium_y"`
	GoldY     float64      `gorm:"not null" json:"gold_y"`
	SilverY   float64      `gorm:"not null" json:"silver_y"`
	BronzeY   float64      `gorm:"not null" json:"bronze_y"`
	Curves    *BoundarySet `gorm:"type:jsonb;serializer:json" json:"curves,omitempty"`
	UpdatedBy string       `json:"updated_by,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (EventTierBoundaries) TableName() string {
	return "event_tier_boundaries"
}

func NewEventTierBoundaries(eventID uuid.UUID, t Thresholds) *EventTierBoundaries {
	b := &EventTierBoundaries{ID: uuid.New(), EventID: eventID}
	b.SetThresholds(t)
	return b
}

func (b *EventTierBoundaries) Thresholds() Thresholds {
	return Thresholds{PremiumY: b.PremiumY, GoldY: b.GoldY, SilverY: b.SilverY, BronzeY: b.BronzeY}
}

func (b *EventTierBoundaries) SetThresholds(t Thresholds) {
	b.PremiumY, b.GoldY, b.SilverY, b.BronzeY = t.PremiumY, t.GoldY, t.SilverY, t.BronzeY
}

// BoundarySet returns the curves used for classification.
func (b *EventTierBoundaries) BoundarySet() BoundarySet {
	if b.Curves != nil {
		return *b.Curves
	}
	return b.Thresholds().BoundarySet()
}

func (b *EventTierBoundaries) Validate(minGap float64) error {
	if err := b.Thresholds().Validate(minGap); err != nil {
		return err
	}
	if b.Curves != nil {
		return b.Curves.Validate(minGap)
	}
	return nil
}
